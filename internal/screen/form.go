package screen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ganot/unolims/internal/form"
	"github.com/ganot/unolims/internal/i18n"
	"github.com/ganot/unolims/internal/repository"
	"github.com/ganot/unolims/internal/resource"
)

// FieldSpec describes one input. Name is the payload field name and also the
// key of its inline error.
type FieldSpec struct {
	Name    string
	Label   string
	Default string
	Choices []string
	Secret  bool
}

// NotificationKind tells success and failure toasts apart.
type NotificationKind int

const (
	NotifySuccess NotificationKind = iota
	NotifyFailure
)

func (k NotificationKind) String() string {
	if k == NotifySuccess {
		return "success"
	}
	return "failure"
}

// Notification is the transient message shown after a submit.
type Notification struct {
	Kind    NotificationKind
	Message string
}

// Outcome is the result of one submit attempt.
type Outcome struct {
	// Blocked is set when local validation failed and nothing was sent.
	Blocked bool
	// Errors maps field names to translated messages.
	Errors       map[string]string
	Notification *Notification
}

// SubmitFunc sends the values. It returns an optional success message that
// replaces the form's default one.
type SubmitFunc func(ctx context.Context, values map[string]string) (string, error)

// Form collects values, validates them through the domain services and submits.
type Form struct {
	route   string
	title   string
	cat     i18n.Catalog
	specs   []FieldSpec
	values  map[string]string
	submit  SubmitFunc
	failure string
	choices map[string]func(context.Context) ([]string, error)
	loadErr map[string]error
	notify  func(Notification)
	last    Outcome
}

// NewForm creates a form. Params whose names match a field prefill it and
// become that field's default.
func NewForm(route, title string, cat i18n.Catalog, specs []FieldSpec, params Params, submit SubmitFunc) *Form {
	f := &Form{
		route:   route,
		title:   title,
		cat:     cat,
		specs:   append([]FieldSpec(nil), specs...),
		submit:  submit,
		failure: "form.failure",
		choices: map[string]func(context.Context) ([]string, error){},
		loadErr: map[string]error{},
	}
	for i, s := range f.specs {
		if v := params.Get(s.Name); v != "" {
			f.specs[i].Default = v
		}
	}
	f.reset()
	return f
}

// WithChoices loads the options of field from the API when the form loads.
func (f *Form) WithChoices(field string, fetch func(context.Context) ([]string, error)) *Form {
	f.choices[field] = fetch
	return f
}

// WithFailureMessage sets the fallback failure message key.
func (f *Form) WithFailureMessage(key string) *Form {
	f.failure = key
	return f
}

// OnNotify registers a hook called with every notification.
func (f *Form) OnNotify(fn func(Notification)) *Form {
	f.notify = fn
	return f
}

func (f *Form) Route() string { return f.route }

// Load fetches option lists. A failed list leaves the field free-form.
func (f *Form) Load(ctx context.Context) error {
	var first error
	for i, s := range f.specs {
		fetch, ok := f.choices[s.Name]
		if !ok {
			continue
		}
		res := resource.Load(ctx, fetch)
		if opts, ok := res.Value(); ok {
			f.specs[i].Choices = opts
			delete(f.loadErr, s.Name)
			continue
		}
		f.loadErr[s.Name] = res.Err()
		if first == nil {
			first = res.Err()
		}
	}
	return first
}

// Fields returns the field specs in display order.
func (f *Form) Fields() []FieldSpec {
	return append([]FieldSpec(nil), f.specs...)
}

// Set changes one value. Unknown fields are rejected.
func (f *Form) Set(name, value string) error {
	if _, ok := f.values[name]; !ok {
		return fmt.Errorf("unknown field %q", name)
	}
	f.values[name] = value
	return nil
}

// Value returns the current value of a field.
func (f *Form) Value(name string) string { return f.values[name] }

// Values returns a copy of the current values.
func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Last returns the outcome of the latest submit.
func (f *Form) Last() Outcome { return f.last }

// Submit validates and sends the form. Invalid input blocks the submit with
// inline errors. On success the fields return to their defaults.
func (f *Form) Submit(ctx context.Context) Outcome {
	msg, err := f.submit(ctx, f.Values())

	var fieldErrs *form.Errors
	switch {
	case err == nil:
		if msg == "" {
			msg = f.cat.T("form.success")
		}
		f.reset()
		f.last = Outcome{Notification: &Notification{Kind: NotifySuccess, Message: msg}}
	case errors.As(err, &fieldErrs):
		translated := make(map[string]string, fieldErrs.Len())
		for name, key := range fieldErrs.Map() {
			translated[name] = f.cat.T(key)
		}
		f.last = Outcome{Blocked: true, Errors: translated}
	default:
		text, ok := repository.ServerMessage(err)
		if !ok {
			text = f.cat.T(f.failure)
		}
		f.last = Outcome{Notification: &Notification{Kind: NotifyFailure, Message: text}}
	}

	if f.notify != nil && f.last.Notification != nil {
		f.notify(*f.last.Notification)
	}
	return f.last
}

func (f *Form) reset() {
	f.values = make(map[string]string, len(f.specs))
	for _, s := range f.specs {
		f.values[s.Name] = s.Default
	}
}

func (f *Form) Render(w io.Writer) error {
	p := newPage(w, f.cat)
	p.title(f.title)

	for _, s := range f.specs {
		value := f.values[s.Name]
		if s.Secret && value != "" {
			value = strings.Repeat("*", len(value))
		}
		p.printf("%s: %s\n", f.cat.T(s.Label), value)
		if _, failed := f.loadErr[s.Name]; failed {
			p.printf("  %s\n", f.cat.T("error.load"))
		} else if len(s.Choices) > 0 {
			p.printf("  [%s]\n", strings.Join(s.Choices, ", "))
		}
		if msg, ok := f.last.Errors[s.Name]; ok {
			p.printf("  ! %s\n", msg)
		}
	}

	if f.last.Blocked {
		p.printf("\n")
		p.line("form.invalid")
	}
	if n := f.last.Notification; n != nil {
		mark := "ok"
		if n.Kind == NotifyFailure {
			mark = "!!"
		}
		p.printf("\n[%s] %s\n", mark, n.Message)
	}
	return p.err
}
