package screen

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/ganot/unolims/internal/domain/item"
	"github.com/ganot/unolims/internal/i18n"
	"github.com/ganot/unolims/internal/qrcode"
	"github.com/ganot/unolims/internal/resource"
)

// ItemQR writes the QR label of an analysis item to a PNG file.
// The code holds the item id, which the scan view turns back into a route.
type ItemQR struct {
	cat   i18n.Catalog
	id    string
	path  string
	fetch func(context.Context, string) (*item.Item, error)
	res   resource.Resource[string]
}

// NewItemQR creates the QR view. An empty path defaults to item-<id>.png.
func NewItemQR(cat i18n.Catalog, id, path string, fetch func(context.Context, string) (*item.Item, error)) *ItemQR {
	if path == "" {
		path = "item-" + id + ".png"
	}
	return &ItemQR{cat: cat, id: id, path: path, fetch: fetch, res: resource.NewIdle[string]()}
}

func (v *ItemQR) Route() string { return RouteItemQR }

// Load checks the item exists and writes its code.
func (v *ItemQR) Load(ctx context.Context) error {
	v.res = resource.Load(ctx, func(ctx context.Context) (string, error) {
		it, err := v.fetch(ctx, v.id)
		if err != nil {
			return "", err
		}
		if err := qrcode.WriteFile(v.path, it.ID.String(), qrcode.DefaultSize); err != nil {
			return "", err
		}
		return v.path, nil
	})
	return v.res.Err()
}

func (v *ItemQR) Render(w io.Writer) error {
	p := newPage(w, v.cat)
	p.title("title.itemQR")
	switch v.res.State() {
	case resource.Loaded:
		path, _ := v.res.Value()
		p.text(v.cat.Format("qr.content", map[string]string{"id": v.id}))
		p.text(v.cat.Format("qr.saved", map[string]string{"path": path}))
	case resource.Failed:
		if isNotFound(v.res.Err()) {
			p.line("detail.notFound")
		} else {
			p.line("error.load")
		}
	default:
		p.line("common.loading")
	}
	return p.err
}

// Scan reads an item QR code from an image and redirects to the item.
type Scan struct {
	cat  i18n.Catalog
	path string
	res  resource.Resource[string]
}

// NewScan creates the scan view for the image at path.
func NewScan(cat i18n.Catalog, path string) *Scan {
	return &Scan{cat: cat, path: path, res: resource.NewIdle[string]()}
}

func (v *Scan) Route() string { return RouteScan }

func (v *Scan) Load(ctx context.Context) error {
	v.res = resource.Load(ctx, func(context.Context) (string, error) {
		f, err := os.Open(v.path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		return qrcode.Decode(f)
	})
	return v.res.Err()
}

// Redirect points at the item whose id was read.
func (v *Scan) Redirect() (string, Params, bool) {
	id, ok := v.res.Value()
	if !ok || id == "" {
		return "", nil, false
	}
	return RouteItem, Params{"id": id}, true
}

func (v *Scan) Render(w io.Writer) error {
	p := newPage(w, v.cat)
	p.title("title.scan")
	switch v.res.State() {
	case resource.Loaded:
		id, _ := v.res.Value()
		p.text(v.cat.Format("qr.content", map[string]string{"id": id}))
	case resource.Failed:
		if errors.Is(v.res.Err(), qrcode.ErrNoCode) {
			p.line("scan.none")
		} else {
			p.line("error.load")
		}
	default:
		p.line("common.loading")
	}
	return p.err
}
