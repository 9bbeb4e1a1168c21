package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	derr "github.com/michaelvbend/ajax-scraper/internal/domain/errors"
	"github.com/michaelvbend/ajax-scraper/internal/domain/models"
	"github.com/michaelvbend/ajax-scraper/internal/domain/ports"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type CardSelectors struct {
	Container       models.Locator
	Item            models.Locator
	Heading         models.Locator
	ActionContainer models.Locator
	StatusLabel     models.Locator
	Link            models.Locator
	SoldOutText     string
}

type CardExtractor struct {
	log     *zap.Logger
	waiter  Waiter
	sel     CardSelectors
	baseURL *url.URL
}

// NewCardExtractor builds an extractor. Relative match links are resolved
// against baseURL when it is a valid absolute URL.
func NewCardExtractor(log *zap.Logger, waiter Waiter, sel CardSelectors, baseURL string) *CardExtractor {
	if log == nil {
		log = zap.NewNop()
	}

	var base *url.URL
	if u, err := url.Parse(baseURL); err == nil && u.IsAbs() {
		base = u
	}

	return &CardExtractor{
		log:     log,
		waiter:  NewWaiter(waiter.Timeout, waiter.Interval),
		sel:     sel,
		baseURL: base,
	}
}

// Extract reads every card in the list container. A card that cannot be read
// becomes an ItemError and does not stop the others; only a missing container
// fails the whole extraction.
func (e *CardExtractor) Extract(ctx context.Context, page ports.Page) ([]models.MatchRecord, []models.ItemError, error) {
	const op = "service.Extract"
	ctx, span := otel.Tracer("ajax-scraper/service").Start(ctx, op)
	defer span.End()

	container, err := e.waiter.WaitFor(ctx, page, e.sel.Container)
	if err != nil {
		span.RecordError(err)
		return nil, nil, fmt.Errorf("%s: %w: %w", op, derr.ErrContainerNotFound, err)
	}

	items, err := container.FindAll(ctx, e.sel.Item)
	if err != nil {
		span.RecordError(err)
		return nil, nil, fmt.Errorf("%s: list items: %w", op, err)
	}

	records := make([]models.MatchRecord, 0, len(items))
	var itemErrs []models.ItemError
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}

		record, err := e.extractItemWithin(ctx, item)
		if err != nil {
			itemErrs = append(itemErrs, models.ItemError{Index: i + 1, Err: err})
			continue
		}
		records = append(records, record)
	}

	span.SetAttributes(
		attribute.Int("cards.total", len(items)),
		attribute.Int("cards.extracted", len(records)),
		attribute.Int("cards.failed", len(itemErrs)),
	)
	e.log.Debug("cards extracted",
		zap.String("op", op),
		zap.Int("total", len(items)),
		zap.Int("extracted", len(records)),
	)

	return records, itemErrs, nil
}

// extractItemWithin gives one card the waiter timeout, so a card that never
// answers fails alone.
func (e *CardExtractor) extractItemWithin(ctx context.Context, item ports.Element) (models.MatchRecord, error) {
	itemCtx, cancel := context.WithTimeout(ctx, e.waiter.Timeout)
	defer cancel()

	record, err := e.extractItem(itemCtx, item)
	if err != nil && ctx.Err() == nil && errors.Is(itemCtx.Err(), context.DeadlineExceeded) {
		return models.MatchRecord{}, fmt.Errorf("%w: card not read within %s: %w", derr.ErrWaitTimeout, e.waiter.Timeout, err)
	}
	return record, err
}

func (e *CardExtractor) extractItem(ctx context.Context, item ports.Element) (models.MatchRecord, error) {
	heading, err := item.FindOne(ctx, e.sel.Heading)
	if err != nil {
		return models.MatchRecord{}, fmt.Errorf("heading: %w", err)
	}
	fixture, err := heading.Text(ctx)
	if err != nil {
		return models.MatchRecord{}, fmt.Errorf("heading text: %w", err)
	}

	action, err := item.FindOne(ctx, e.sel.ActionContainer)
	if err != nil {
		return models.MatchRecord{}, fmt.Errorf("status container: %w", err)
	}
	label, err := action.FindOne(ctx, e.sel.StatusLabel)
	if err != nil {
		return models.MatchRecord{}, fmt.Errorf("status label: %w", err)
	}
	status, err := label.Text(ctx)
	if err != nil {
		return models.MatchRecord{}, fmt.Errorf("status text: %w", err)
	}

	link, err := e.matchLink(ctx, action)
	if err != nil {
		return models.MatchRecord{}, err
	}

	return models.MatchRecord{
		Fixture:   strings.TrimSpace(fixture),
		SoldOut:   strings.TrimSpace(status) == e.sel.SoldOutText,
		MatchLink: link,
	}, nil
}

func (e *CardExtractor) matchLink(ctx context.Context, action ports.Element) (*string, error) {
	anchors, err := action.FindAll(ctx, e.sel.Link)
	if err != nil {
		return nil, fmt.Errorf("link: %w", err)
	}
	if len(anchors) == 0 {
		return nil, nil
	}

	href, ok, err := anchors[0].Attribute(ctx, "href")
	if err != nil {
		return nil, fmt.Errorf("link href: %w", err)
	}
	if !ok {
		return nil, nil
	}

	href = e.resolve(strings.TrimSpace(href))
	return &href, nil
}

func (e *CardExtractor) resolve(href string) string {
	if e.baseURL == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil || ref.IsAbs() {
		return href
	}
	return e.baseURL.ResolveReference(ref).String()
}
