// Package htmldoc serves the DOM ports from a parsed, static HTML document.
package htmldoc

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	derr "github.com/michaelvbend/ajax-scraper/internal/domain/errors"
	"github.com/michaelvbend/ajax-scraper/internal/domain/models"
	"github.com/michaelvbend/ajax-scraper/internal/domain/ports"
)

type Document struct {
	doc *goquery.Document

	mu      sync.Mutex
	visited []string
	clicks  []string
	closed  bool
}

func NewFromReader(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{doc: doc}, nil
}

func NewFromString(html string) (*Document, error) {
	return NewFromReader(strings.NewReader(html))
}

func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open html snapshot: %w", err)
	}
	defer f.Close()

	return NewFromReader(f)
}

func (d *Document) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.visited = append(d.visited, url)
	return nil
}

func (d *Document) FindOne(ctx context.Context, loc models.Locator) (ports.Element, error) {
	return findOne(ctx, d, d.doc.Selection, loc)
}

func (d *Document) FindAll(ctx context.Context, loc models.Locator) ([]ports.Element, error) {
	return findAll(ctx, d, d.doc.Selection, loc)
}

func (d *Document) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// Visited returns the URLs passed to Navigate, in order.
func (d *Document) Visited() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.visited...)
}

// Clicks returns a description of every clicked element, in order.
func (d *Document) Clicks() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.clicks...)
}

func (d *Document) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

type element struct {
	doc *Document
	sel *goquery.Selection
}

func (e *element) FindOne(ctx context.Context, loc models.Locator) (ports.Element, error) {
	return findOne(ctx, e.doc, e.sel, loc)
}

func (e *element) FindAll(ctx context.Context, loc models.Locator) ([]ports.Element, error) {
	return findAll(ctx, e.doc, e.sel, loc)
}

func (e *element) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return strings.TrimSpace(e.sel.Text()), nil
}

func (e *element) Attribute(ctx context.Context, name string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	value, ok := e.sel.Attr(name)
	return value, ok, nil
}

func (e *element) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.sel.SetAttr("value", "")
	return nil
}

func (e *element) SendKeys(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	current, _ := e.sel.Attr("value")
	e.sel.SetAttr("value", current+text)
	return nil
}

func (e *element) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.doc.clicks = append(e.doc.clicks, describe(e.sel))
	return nil
}

func findOne(ctx context.Context, doc *Document, root *goquery.Selection, loc models.Locator) (ports.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	found := root.Find(loc.Selector()).First()
	if found.Length() == 0 {
		return nil, fmt.Errorf("%w: %s", derr.ErrElementNotFound, loc)
	}
	return &element{doc: doc, sel: found}, nil
}

func findAll(ctx context.Context, doc *Document, root *goquery.Selection, loc models.Locator) ([]ports.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	found := root.Find(loc.Selector())
	elements := make([]ports.Element, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, &element{doc: doc, sel: s})
	})
	return elements, nil
}

func describe(sel *goquery.Selection) string {
	if id, ok := sel.Attr("id"); ok && id != "" {
		return "#" + id
	}
	name := goquery.NodeName(sel)
	if class, ok := sel.Attr("class"); ok && class != "" {
		return name + "." + strings.Join(strings.Fields(class), ".")
	}
	return name
}
