// Package screen implements the navigable views: lists, details, forms and the
// dashboard, rendered as text through the active message catalog.
package screen

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ganot/unolims/internal/export"
	"github.com/ganot/unolims/internal/i18n"
)

// View is one screen of the application.
type View interface {
	// Route is the name the view is registered under.
	Route() string
	// Load fetches whatever the view displays. Failures are kept and rendered;
	// the error is also returned so callers can report it.
	Load(ctx context.Context) error
	Render(w io.Writer) error
}

// Tabular views can be exported to a spreadsheet.
type Tabular interface {
	Table() export.Sheet
}

// Redirector views ask to continue at another route after loading.
type Redirector interface {
	Redirect() (route string, params Params, ok bool)
}

// Params are the route arguments, such as the id of a detail view.
type Params map[string]string

// Get returns the named parameter trimmed of spaces.
func (p Params) Get(name string) string {
	return strings.TrimSpace(p[name])
}

// Field is one labelled value. Label is an i18n key.
type Field struct {
	Label string
	Value string
}

// Link points at the route that shows more about a record.
type Link struct {
	Route  string
	Params Params
}

// Record is the display form of one entity.
type Record struct {
	Fields []Field
	Link   *Link
}

func field(label, value string) Field { return Field{Label: label, Value: value} }

func linkTo(route, id string) *Link {
	return &Link{Route: route, Params: Params{"id": id}}
}

// page writes a screen in the catalog's language.
type page struct {
	w   io.Writer
	cat i18n.Catalog
	err error
}

func newPage(w io.Writer, cat i18n.Catalog) *page {
	return &page{w: w, cat: cat}
}

func (p *page) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *page) title(key string) {
	p.printf("== %s ==\n", p.cat.T(key))
}

func (p *page) section(key string) {
	p.printf("\n-- %s --\n", p.cat.T(key))
}

func (p *page) line(key string) {
	p.printf("%s\n", p.cat.T(key))
}

func (p *page) text(s string) {
	p.printf("%s\n", s)
}

// record writes aligned label/value rows followed by the navigation hint.
func (p *page) record(r Record) {
	if p.err != nil {
		return
	}
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	for _, f := range r.Fields {
		if _, err := fmt.Fprintf(tw, "%s:\t%s\n", p.cat.T(f.Label), f.Value); err != nil {
			p.err = err
			return
		}
	}
	if err := tw.Flush(); err != nil {
		p.err = err
		return
	}
	if r.Link != nil {
		p.printf("  -> %s %s\n", p.cat.T("nav.open"), formatLink(*r.Link))
	}
}

func (p *page) records(list []Record) {
	for i, r := range list {
		if i > 0 {
			p.printf("\n")
		}
		p.record(r)
	}
}

func formatLink(l Link) string {
	if id := l.Params.Get("id"); id != "" {
		return l.Route + " " + id
	}
	return l.Route
}
