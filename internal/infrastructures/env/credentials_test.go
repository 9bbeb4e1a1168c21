package env

import (
	"errors"
	"testing"

	derr "github.com/michaelvbend/ajax-scraper/internal/domain/errors"
)

func TestCredentialSource_Load(t *testing.T) {
	t.Setenv("AJAX_USER", "fan@example.com")
	t.Setenv("AJAX_PASS", "s3cret")

	cred, err := CredentialSource{UsernameVar: "AJAX_USER", PasswordVar: "AJAX_PASS"}.Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cred.Username != "fan@example.com" || cred.Password != "s3cret" {
		t.Fatalf("unexpected credential: %+v", cred)
	}
}

func TestCredentialSource_MissingPassword(t *testing.T) {
	t.Setenv("AJAX_USER", "fan@example.com")
	t.Setenv("AJAX_PASS", "")

	_, err := CredentialSource{UsernameVar: "AJAX_USER", PasswordVar: "AJAX_PASS"}.Load()
	if !errors.Is(err, derr.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}
