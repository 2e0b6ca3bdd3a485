package screen

import (
	"context"
	"io"

	"github.com/ganot/unolims/internal/export"
	"github.com/ganot/unolims/internal/i18n"
	"github.com/ganot/unolims/internal/resource"
)

// Page is a list result. Failed counts the dependent reads that were dropped.
type Page[T any] struct {
	Items  []T
	Failed int
}

// List shows every record of one kind.
type List[T any] struct {
	route  string
	title  string
	empty  string
	cat    i18n.Catalog
	fetch  func(context.Context) (Page[T], error)
	render func(T) Record
	cell   *resource.Cell[Page[T]]
}

// NewList creates a list over a plain fetch.
func NewList[T any](route, title, empty string, cat i18n.Catalog, fetch func(context.Context) ([]T, error), render func(T) Record) *List[T] {
	return NewPagedList(route, title, empty, cat, func(ctx context.Context) (Page[T], error) {
		items, err := fetch(ctx)
		return Page[T]{Items: items}, err
	}, render)
}

// NewPagedList creates a list over a fetch that can report dropped reads.
func NewPagedList[T any](route, title, empty string, cat i18n.Catalog, fetch func(context.Context) (Page[T], error), render func(T) Record) *List[T] {
	return &List[T]{
		route:  route,
		title:  title,
		empty:  empty,
		cat:    cat,
		fetch:  fetch,
		render: render,
		cell:   resource.NewCell[Page[T]](nil),
	}
}

func (l *List[T]) Route() string { return l.route }

// State exposes the current load state.
func (l *List[T]) State() resource.Resource[Page[T]] { return l.cell.Get() }

func (l *List[T]) Load(ctx context.Context) error {
	return l.cell.Run(ctx, l.fetch).Err()
}

func (l *List[T]) Render(w io.Writer) error {
	p := newPage(w, l.cat)
	p.title(l.title)

	res := l.cell.Get()
	switch res.State() {
	case resource.Idle, resource.Loading:
		p.line("common.loading")
	case resource.Failed:
		p.line("error.load")
	case resource.Loaded:
		pg, _ := res.Value()
		if len(pg.Items) == 0 {
			p.line(l.empty)
		}
		records := make([]Record, 0, len(pg.Items))
		for _, it := range pg.Items {
			records = append(records, l.render(it))
		}
		p.records(records)
		if pg.Failed > 0 {
			p.printf("\n")
			p.text(l.cat.Count("list.partial", pg.Failed))
		}
	}
	return p.err
}

// Table returns the loaded records as a sheet. Before a successful load the
// sheet has headers only.
func (l *List[T]) Table() export.Sheet {
	var zero T
	sheet := export.Sheet{Name: l.cat.T(l.title)}
	for _, f := range l.render(zero).Fields {
		sheet.Headers = append(sheet.Headers, l.cat.T(f.Label))
	}
	pg, ok := l.cell.Get().Value()
	if !ok {
		return sheet
	}
	for _, it := range pg.Items {
		fields := l.render(it).Fields
		row := make([]string, len(fields))
		for i, f := range fields {
			row[i] = f.Value
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}
