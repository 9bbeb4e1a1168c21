package ports

import (
	"context"

	"github.com/michaelvbend/ajax-scraper/internal/domain/models"
)

// Finder looks up elements. FindOne returns derr.ErrElementNotFound when
// nothing matches; FindAll returns an empty slice.
type Finder interface {
	FindOne(ctx context.Context, loc models.Locator) (Element, error)
	FindAll(ctx context.Context, loc models.Locator) ([]Element, error)
}

type Element interface {
	Finder
	Text(ctx context.Context) (string, error)
	Attribute(ctx context.Context, name string) (string, bool, error)
	Clear(ctx context.Context) error
	SendKeys(ctx context.Context, text string) error
	Click(ctx context.Context) error
}

type Page interface {
	Finder
	Navigate(ctx context.Context, url string) error
}

type Session interface {
	Page
	Close() error
}

type SessionProvider interface {
	Launch(ctx context.Context) (Session, error)
}
