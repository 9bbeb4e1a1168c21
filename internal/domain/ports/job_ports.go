package ports

import (
	"context"
	"time"

	"github.com/michaelvbend/ajax-scraper/internal/domain/models"
)

type CredentialSource interface {
	Load() (models.Credential, error)
}

type Authenticator interface {
	Login(ctx context.Context, page Page, cred models.Credential) error
}

type CardExtractor interface {
	Extract(ctx context.Context, page Page) ([]models.MatchRecord, []models.ItemError, error)
}

type PayloadBuilder interface {
	Build(records []models.MatchRecord) (models.NotificationPayload, error)
}

type MatchNotifier interface {
	Notify(ctx context.Context, payload models.NotificationPayload) error
}

// JobLock is a lease that keeps two runners from scraping at the same time.
type JobLock interface {
	Acquire(ctx context.Context, ttl time.Duration) (release func(context.Context) error, err error)
}
