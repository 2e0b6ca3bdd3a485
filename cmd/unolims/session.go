package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ganot/unolims/internal/app"
	"github.com/ganot/unolims/internal/export"
	"github.com/ganot/unolims/internal/i18n"
	"github.com/ganot/unolims/internal/screen"
)

var (
	errNotForm        = errors.New("current screen is not a form")
	errNotTable       = errors.New("current screen cannot be exported")
	errSubmitRejected = errors.New("submit rejected")
)

// session drives the navigator and writes every screen to out.
type session struct {
	app *app.App
	nav *screen.Navigator
	out io.Writer
}

func newSession(a *app.App, out io.Writer) *session {
	return &session{app: a, nav: screen.NewNavigator(a.Router), out: out}
}

func (s *session) cat() i18n.Catalog { return s.app.Router.Catalog() }

func (s *session) println(text string) {
	_, _ = fmt.Fprintln(s.out, text)
}

// open loads route. A view is returned even when loading failed, so the
// failure can be rendered.
func (s *session) open(ctx context.Context, route string, params screen.Params) (screen.View, error) {
	v, err := s.nav.Open(ctx, route, params)
	if v == nil && errors.Is(err, screen.ErrUnknownRoute) {
		s.println(s.cat().Format("nav.unknown", map[string]string{"route": route}))
	}
	return v, err
}

func (s *session) show() error {
	v, ok := s.nav.Current()
	if !ok {
		s.println(s.cat().T("nav.help"))
		return nil
	}
	return v.Render(s.out)
}

func (s *session) back() error {
	v, err := s.nav.Back()
	if errors.Is(err, screen.ErrNoHistory) {
		s.println(s.cat().T("nav.back"))
		return nil
	}
	if err != nil {
		return err
	}
	return v.Render(s.out)
}

func (s *session) form() (*screen.Form, error) {
	v, ok := s.nav.Current()
	if !ok {
		return nil, errNotForm
	}
	f, ok := v.(*screen.Form)
	if !ok {
		return nil, errNotForm
	}
	return f, nil
}

func (s *session) set(name, value string) error {
	f, err := s.form()
	if err != nil {
		s.println(s.cat().T("nav.notForm"))
		return err
	}
	return f.Set(name, value)
}

// submit sends the current form and renders it with the outcome.
// A blocked or failed submit is reported as errSubmitRejected.
func (s *session) submit(ctx context.Context) error {
	f, err := s.form()
	if err != nil {
		s.println(s.cat().T("nav.notForm"))
		return err
	}
	outcome := f.Submit(ctx)
	if err := f.Render(s.out); err != nil {
		return err
	}
	if outcome.Blocked || (outcome.Notification != nil && outcome.Notification.Kind == screen.NotifyFailure) {
		return errSubmitRejected
	}
	return nil
}

// export writes the current list to an XLSX file.
func (s *session) export(path string) error {
	v, ok := s.nav.Current()
	if !ok {
		s.println(s.cat().T("nav.notTable"))
		return errNotTable
	}
	tab, ok := v.(screen.Tabular)
	if !ok {
		s.println(s.cat().T("nav.notTable"))
		return errNotTable
	}
	sheet := tab.Table()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteXLSX(f, sheet); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	s.println(s.cat().Format("export.saved", map[string]string{
		"count": strconv.Itoa(len(sheet.Rows)),
		"path":  path,
	}))
	return nil
}
