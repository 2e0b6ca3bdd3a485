package screen

import (
	"context"
	"errors"
	"io"

	"github.com/ganot/unolims/internal/domain/batch"
	"github.com/ganot/unolims/internal/domain/item"
	"github.com/ganot/unolims/internal/domain/request"
	"github.com/ganot/unolims/internal/domain/requester"
	"github.com/ganot/unolims/internal/domain/stock"
	"github.com/ganot/unolims/internal/i18n"
	"github.com/ganot/unolims/internal/repository"
	"github.com/ganot/unolims/internal/resource"
)

// Section is a related list shown under a detail record.
type Section struct {
	title string
	empty string
	fetch func(context.Context) ([]Record, error)
	res   resource.Resource[[]Record]
}

// SectionOf builds a section from a typed fetch.
func SectionOf[C any](title, empty string, fetch func(context.Context) ([]C, error), render func(C) Record) *Section {
	return &Section{
		title: title,
		empty: empty,
		fetch: func(ctx context.Context) ([]Record, error) {
			list, err := fetch(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]Record, 0, len(list))
			for _, c := range list {
				out = append(out, render(c))
			}
			return out, nil
		},
		res: resource.NewIdle[[]Record](),
	}
}

// Detail shows one record and, once it is loaded, its related sections.
type Detail[T any] struct {
	route    string
	title    string
	cat      i18n.Catalog
	fetch    func(context.Context) (T, error)
	render   func(T) Record
	sections func(T) []*Section
	cell     *resource.Cell[T]
	loaded   []*Section
}

// NewDetail creates a detail view. sections may be nil.
func NewDetail[T any](route, title string, cat i18n.Catalog, fetch func(context.Context) (T, error), render func(T) Record, sections func(T) []*Section) *Detail[T] {
	return &Detail[T]{
		route:    route,
		title:    title,
		cat:      cat,
		fetch:    fetch,
		render:   render,
		sections: sections,
		cell:     resource.NewCell[T](nil),
	}
}

func (d *Detail[T]) Route() string { return d.route }

// State exposes the current load state of the main record.
func (d *Detail[T]) State() resource.Resource[T] { return d.cell.Get() }

// Load reads the record, then each section in turn. Section failures are
// rendered in place and do not fail the view.
func (d *Detail[T]) Load(ctx context.Context) error {
	res := d.cell.Run(ctx, d.fetch)
	v, ok := res.Value()
	if !ok {
		return res.Err()
	}
	if d.sections == nil {
		return nil
	}
	d.loaded = d.sections(v)
	for _, s := range d.loaded {
		s.res = resource.Load(ctx, s.fetch)
	}
	return nil
}

func (d *Detail[T]) Render(w io.Writer) error {
	p := newPage(w, d.cat)
	p.title(d.title)

	res := d.cell.Get()
	switch res.State() {
	case resource.Idle, resource.Loading:
		p.line("common.loading")
	case resource.Failed:
		if isNotFound(res.Err()) {
			p.line("detail.notFound")
		} else {
			p.line("error.load")
		}
	case resource.Loaded:
		v, _ := res.Value()
		p.record(d.render(v))
		for _, s := range d.loaded {
			p.section(s.title)
			switch s.res.State() {
			case resource.Failed:
				p.line("error.load")
			case resource.Loaded:
				list, _ := s.res.Value()
				if len(list) == 0 {
					p.line(s.empty)
				}
				p.records(list)
			default:
				p.line("common.loading")
			}
		}
	}
	return p.err
}

func isNotFound(err error) bool {
	for _, target := range []error{
		repository.ErrNotFound,
		requester.ErrNotFound,
		request.ErrNotFound,
		item.ErrNotFound,
		batch.ErrNotFound,
		stock.ErrNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// staticSection shows records that came embedded in the main read.
func staticSection[C any](title, empty string, list []C, render func(C) Record) *Section {
	return SectionOf(title, empty, func(context.Context) ([]C, error) { return list, nil }, render)
}
