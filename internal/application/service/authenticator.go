package service

import (
	"context"
	"fmt"

	"github.com/michaelvbend/ajax-scraper/internal/domain/models"
	"github.com/michaelvbend/ajax-scraper/internal/domain/ports"
	"go.uber.org/zap"
)

type LoginForm struct {
	Username models.Locator
	Password models.Locator
	Submit   models.Locator
}

type Authenticator struct {
	log    *zap.Logger
	waiter Waiter
	form   LoginForm
}

func NewAuthenticator(log *zap.Logger, waiter Waiter, form LoginForm) *Authenticator {
	if log == nil {
		log = zap.NewNop()
	}

	return &Authenticator{
		log:    log,
		waiter: waiter,
		form:   form,
	}
}

// Login fills in and submits the sign-in form. Failures are not retried here.
func (a *Authenticator) Login(ctx context.Context, page ports.Page, cred models.Credential) error {
	const op = "service.Login"

	logger := a.log.With(zap.String("op", op))

	if err := a.fill(ctx, page, a.form.Username, cred.Username); err != nil {
		return fmt.Errorf("%s: username: %w", op, err)
	}
	if err := a.fill(ctx, page, a.form.Password, cred.Password); err != nil {
		return fmt.Errorf("%s: password: %w", op, err)
	}

	submit, err := a.waiter.WaitFor(ctx, page, a.form.Submit)
	if err != nil {
		return fmt.Errorf("%s: locate submit: %w", op, err)
	}
	if err := submit.Click(ctx); err != nil {
		return fmt.Errorf("%s: submit: %w", op, err)
	}

	logger.Info("login form submitted")
	return nil
}

func (a *Authenticator) fill(ctx context.Context, page ports.Page, loc models.Locator, value string) error {
	field, err := a.waiter.WaitFor(ctx, page, loc)
	if err != nil {
		return fmt.Errorf("locate field: %w", err)
	}
	if err := field.Clear(ctx); err != nil {
		return err
	}
	return field.SendKeys(ctx, value)
}
