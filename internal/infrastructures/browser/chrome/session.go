package chrome

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	derr "github.com/michaelvbend/ajax-scraper/internal/domain/errors"
	"github.com/michaelvbend/ajax-scraper/internal/domain/models"
	"github.com/michaelvbend/ajax-scraper/internal/domain/ports"
	"go.uber.org/zap"
)

type Session struct {
	log        *zap.Logger
	ctx        context.Context
	cancel     func()
	profileDir string

	actionTimeout   time.Duration
	navigateTimeout time.Duration
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	if err := s.runWithin(ctx, s.navigateTimeout, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

func (s *Session) FindOne(ctx context.Context, loc models.Locator) (ports.Element, error) {
	return s.findOne(ctx, loc, nil)
}

func (s *Session) FindAll(ctx context.Context, loc models.Locator) ([]ports.Element, error) {
	return s.findAll(ctx, loc, nil)
}

func (s *Session) Close() error {
	if err := chromedp.Cancel(s.ctx); err != nil {
		s.log.Warn("failed to close browser gracefully", zap.Error(err))
	}
	s.cancel()

	if err := os.RemoveAll(s.profileDir); err != nil {
		return fmt.Errorf("remove profile dir: %w", err)
	}
	return nil
}

func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	return s.runWithin(ctx, s.actionTimeout, actions...)
}

// runWithin executes actions on the browser tab until ctx is cancelled or
// timeout elapses, whichever comes first.
func (s *Session) runWithin(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	runCtx, cancel := context.WithDeadline(s.ctx, actionDeadline(ctx, timeout, time.Now()))
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}

// actionDeadline is now+timeout, or the caller's deadline when that is earlier.
func actionDeadline(ctx context.Context, timeout time.Duration, now time.Time) time.Time {
	deadline := now.Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		return d
	}
	return deadline
}

func (s *Session) query(ctx context.Context, loc models.Locator, parent *cdp.Node) ([]*cdp.Node, error) {
	opts := []chromedp.QueryOption{chromedp.ByQueryAll, chromedp.AtLeast(0)}
	if parent != nil {
		opts = append(opts, chromedp.FromNode(parent))
	}

	var nodes []*cdp.Node
	if err := s.run(ctx, chromedp.Nodes(loc.Selector(), &nodes, opts...)); err != nil {
		return nil, fmt.Errorf("query %s: %w", loc, err)
	}
	return nodes, nil
}

func (s *Session) findOne(ctx context.Context, loc models.Locator, parent *cdp.Node) (ports.Element, error) {
	nodes, err := s.query(ctx, loc, parent)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %s", derr.ErrElementNotFound, loc)
	}
	return &element{s: s, node: nodes[0]}, nil
}

func (s *Session) findAll(ctx context.Context, loc models.Locator, parent *cdp.Node) ([]ports.Element, error) {
	nodes, err := s.query(ctx, loc, parent)
	if err != nil {
		return nil, err
	}

	elements := make([]ports.Element, 0, len(nodes))
	for _, n := range nodes {
		elements = append(elements, &element{s: s, node: n})
	}
	return elements, nil
}

type element struct {
	s    *Session
	node *cdp.Node
}

func (e *element) ids() []cdp.NodeID {
	return []cdp.NodeID{e.node.NodeID}
}

func (e *element) FindOne(ctx context.Context, loc models.Locator) (ports.Element, error) {
	return e.s.findOne(ctx, loc, e.node)
}

func (e *element) FindAll(ctx context.Context, loc models.Locator) ([]ports.Element, error) {
	return e.s.findAll(ctx, loc, e.node)
}

// Text reads textContent, so hidden nodes report their text too, with
// whitespace runs collapsed the way innerText renders them.
func (e *element) Text(ctx context.Context) (string, error) {
	var text string
	if err := e.s.run(ctx, chromedp.TextContent(e.ids(), &text, chromedp.ByNodeID)); err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	return collapseSpace(text), nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (e *element) Attribute(ctx context.Context, name string) (string, bool, error) {
	var (
		value string
		ok    bool
	)
	if err := e.s.run(ctx, chromedp.AttributeValue(e.ids(), name, &value, &ok, chromedp.ByNodeID)); err != nil {
		return "", false, fmt.Errorf("read attribute %s: %w", name, err)
	}
	return value, ok, nil
}

func (e *element) Clear(ctx context.Context) error {
	if err := e.s.run(ctx, chromedp.Clear(e.ids(), chromedp.ByNodeID)); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	return nil
}

func (e *element) SendKeys(ctx context.Context, text string) error {
	if err := e.s.run(ctx, chromedp.SendKeys(e.ids(), text, chromedp.ByNodeID)); err != nil {
		return fmt.Errorf("send keys: %w", err)
	}
	return nil
}

func (e *element) Click(ctx context.Context) error {
	if err := e.s.run(ctx, chromedp.Click(e.ids(), chromedp.ByNodeID)); err != nil {
		return fmt.Errorf("click: %w", err)
	}
	return nil
}
