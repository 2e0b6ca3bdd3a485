package screen

import (
	"context"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ganot/unolims/internal/domain/dashboard"
	"github.com/ganot/unolims/internal/i18n"
	"github.com/ganot/unolims/internal/resource"
)

const barWidth = 30

// Dashboard is the main view: laboratory counters and the assay chart.
type Dashboard struct {
	cat   i18n.Catalog
	fetch func(context.Context) (*dashboard.Summary, error)
	cell  *resource.Cell[*dashboard.Summary]
}

// NewDashboard creates the main view.
func NewDashboard(cat i18n.Catalog, fetch func(context.Context) (*dashboard.Summary, error)) *Dashboard {
	return &Dashboard{cat: cat, fetch: fetch, cell: resource.NewCell[*dashboard.Summary](nil)}
}

func (d *Dashboard) Route() string { return RouteMain }

func (d *Dashboard) Load(ctx context.Context) error {
	return d.cell.Run(ctx, d.fetch).Err()
}

func (d *Dashboard) Render(w io.Writer) error {
	p := newPage(w, d.cat)
	p.title("title.main")

	res := d.cell.Get()
	switch res.State() {
	case resource.Failed:
		p.line("error.load")
		return p.err
	case resource.Loaded:
	default:
		p.line("common.loading")
		return p.err
	}
	sum, _ := res.Value()

	p.record(Record{Fields: []Field{
		field("dashboard.requests", strconv.Itoa(sum.Requests)),
		field("dashboard.requesters", strconv.Itoa(sum.Requesters)),
		field("dashboard.itemsAvailable", formatNumber(sum.Items.Sum.Available)),
	}})
	p.printf("\n")
	if p.err != nil {
		return p.err
	}

	bars := sum.Bars()
	peak := 0
	for _, b := range bars {
		peak = max(peak, b.Value)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, b := range bars {
		n := 0
		if peak > 0 {
			n = b.Value * barWidth / peak
		}
		if _, err := io.WriteString(tw, d.cat.T(b.Label)+"\t|"+strings.Repeat("#", n)+" "+strconv.Itoa(b.Value)+"\n"); err != nil {
			return err
		}
	}
	return tw.Flush()
}
