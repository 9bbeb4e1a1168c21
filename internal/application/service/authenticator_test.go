package service

import (
	"context"
	"errors"
	"testing"
	"time"

	derr "github.com/michaelvbend/ajax-scraper/internal/domain/errors"
	"github.com/michaelvbend/ajax-scraper/internal/domain/models"
	"go.uber.org/zap"
)

var testLoginForm = LoginForm{
	Username: models.ByID("signInName"),
	Password: models.ByID("password"),
	Submit:   models.ByID("next"),
}

func TestLogin_FillsAndSubmitsForm(t *testing.T) {
	doc := mustDocument(t, `<form>
		<input id="signInName" value="previous@example.com">
		<input id="password" type="password" value="old">
		<button id="next">Sign in</button>
	</form>`)

	auth := NewAuthenticator(zap.NewNop(), NewWaiter(time.Second, time.Millisecond), testLoginForm)
	err := auth.Login(context.Background(), doc, models.Credential{Username: "fan@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	ctx := context.Background()
	for id, want := range map[string]string{"signInName": "fan@example.com", "password": "s3cret"} {
		field, err := doc.FindOne(ctx, models.ByID(id))
		if err != nil {
			t.Fatalf("find %s: %v", id, err)
		}
		got, _, _ := field.Attribute(ctx, "value")
		if got != want {
			t.Fatalf("expected %s value %q, got %q", id, want, got)
		}
	}

	clicks := doc.Clicks()
	if len(clicks) != 1 || clicks[0] != "#next" {
		t.Fatalf("expected one click on #next, got %v", clicks)
	}
}

func TestLogin_MissingSubmitFails(t *testing.T) {
	doc := mustDocument(t, `<form>
		<input id="signInName">
		<input id="password" type="password">
	</form>`)

	auth := NewAuthenticator(nil, NewWaiter(20*time.Millisecond, time.Millisecond), testLoginForm)
	err := auth.Login(context.Background(), doc, models.Credential{Username: "fan", Password: "pw"})
	if !errors.Is(err, derr.ErrWaitTimeout) {
		t.Fatalf("expected ErrWaitTimeout, got %v", err)
	}
	if len(doc.Clicks()) != 0 {
		t.Fatalf("expected no clicks, got %v", doc.Clicks())
	}
}

func TestLogin_MissingUsernameStopsBeforePassword(t *testing.T) {
	doc := mustDocument(t, `<form>
		<input id="password" type="password" value="untouched">
		<button id="next">Sign in</button>
	</form>`)

	auth := NewAuthenticator(nil, NewWaiter(20*time.Millisecond, time.Millisecond), testLoginForm)
	err := auth.Login(context.Background(), doc, models.Credential{Username: "fan", Password: "pw"})
	if !errors.Is(err, derr.ErrWaitTimeout) {
		t.Fatalf("expected ErrWaitTimeout, got %v", err)
	}

	field, _ := doc.FindOne(context.Background(), models.ByID("password"))
	got, _, _ := field.Attribute(context.Background(), "value")
	if got != "untouched" {
		t.Fatalf("expected password field untouched, got %q", got)
	}
}
