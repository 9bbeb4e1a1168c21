package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/michaelvbend/ajax-scraper/internal/application/job"
	"github.com/michaelvbend/ajax-scraper/internal/application/service"
	"github.com/michaelvbend/ajax-scraper/internal/config"
	"github.com/michaelvbend/ajax-scraper/internal/domain/models"
	"github.com/michaelvbend/ajax-scraper/internal/infrastructures/browser/chrome"
	jobredis "github.com/michaelvbend/ajax-scraper/internal/infrastructures/db/redis"
	"github.com/michaelvbend/ajax-scraper/internal/infrastructures/env"
	"github.com/michaelvbend/ajax-scraper/internal/infrastructures/matchapi/http/client"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func loginForm(cfg *config.Config) service.LoginForm {
	return service.LoginForm{
		Username: models.ByID(cfg.Login.UsernameField),
		Password: models.ByID(cfg.Login.PasswordField),
		Submit:   models.ByID(cfg.Login.SubmitButton),
	}
}

func cardSelectors(cfg *config.Config) service.CardSelectors {
	return service.CardSelectors{
		Container:       models.ByCSS(cfg.Selectors.Container),
		Item:            models.ByCSS(cfg.Selectors.Item),
		Heading:         models.ByCSS(cfg.Selectors.Heading),
		ActionContainer: models.ByCSS(cfg.Selectors.ActionContainer),
		StatusLabel:     models.ByCSS(cfg.Selectors.StatusLabel),
		Link:            models.ByCSS(cfg.Selectors.Link),
		SoldOutText:     cfg.Selectors.SoldOutText,
	}
}

func retryPolicy(cfg *config.Config) job.RetryPolicy {
	return job.RetryPolicy{
		Strategy:   strings.ToLower(strings.TrimSpace(cfg.Retry.Strategy)),
		Delay:      cfg.Retry.Delay,
		MaxDelay:   cfg.Retry.MaxDelay,
		MaxRetries: cfg.Retry.MaxRetries,
	}
}

// newRunner wires the scheduled job. The returned func closes the redis
// client when a lease is configured.
func newRunner(ctx context.Context, cfg *config.Config, log *zap.Logger) (*job.Runner, func(), error) {
	waiter := service.NewWaiter(cfg.Site.WaitTimeout, cfg.Site.PollInterval)

	deps := job.Deps{
		Credentials: env.CredentialSource{
			UsernameVar: cfg.Credentials.UsernameEnv,
			PasswordVar: cfg.Credentials.PasswordEnv,
		},
		Browser: chrome.NewProvider(log, chrome.Options{
			ShowWindow:   cfg.Browser.ShowWindow,
			ExecPath:     cfg.Browser.ExecPath,
			ProfileRoot:  cfg.Browser.ProfileRoot,
			UserAgent:    cfg.Browser.UserAgent,
			WindowWidth:  cfg.Browser.WindowWidth,
			WindowHeight: cfg.Browser.WindowHeight,

			ActionTimeout:   cfg.Browser.ActionTimeout,
			NavigateTimeout: cfg.Browser.NavigateTimeout,
		}),
		Auth:      service.NewAuthenticator(log, waiter, loginForm(cfg)),
		Extractor: service.NewCardExtractor(log, waiter, cardSelectors(cfg), cfg.Site.BaseURL),
		Builder:   service.NewPayloadBuilder(cfg.Overrides),
		Notifier:  client.NewClient(log, cfg.API.Endpoint, cfg.API.Token, cfg.API.Timeout),
	}

	cleanup := func() {}
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			_ = redisClient.Close()
			return nil, nil, fmt.Errorf("ping redis %s: %w", cfg.Redis.Addr, err)
		}
		deps.Lock = jobredis.NewJobLock(redisClient, cfg.Redis.LockKey)
		deps.LockTTL = cfg.Redis.LockTTL
		cleanup = func() {
			if err := redisClient.Close(); err != nil {
				log.Warn("failed to close redis client", zap.Error(err))
			}
		}
	}

	return job.NewRunner(log, deps, cfg.Site.BaseURL, retryPolicy(cfg)), cleanup, nil
}
