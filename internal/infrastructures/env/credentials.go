package env

import (
	"fmt"
	"os"

	"github.com/michaelvbend/ajax-scraper/internal/domain/models"
)

// CredentialSource reads the login credentials from the named environment
// variables on every Load, so a retried job picks up corrected values.
type CredentialSource struct {
	UsernameVar string
	PasswordVar string
}

func (s CredentialSource) Load() (models.Credential, error) {
	cred := models.Credential{
		Username: os.Getenv(s.UsernameVar),
		Password: os.Getenv(s.PasswordVar),
	}
	if err := cred.Validate(); err != nil {
		return models.Credential{}, fmt.Errorf("%w: set %s and %s", err, s.UsernameVar, s.PasswordVar)
	}
	return cred, nil
}
