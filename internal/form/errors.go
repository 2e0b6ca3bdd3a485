// Package form validates user-entered field values before anything is sent.
package form

import (
	"sort"
	"strings"
)

// Message keys reported for invalid fields. Views translate them through i18n.
const (
	MsgRequired         = "validation.required"
	MsgDigits           = "validation.digits"
	MsgCNPJ             = "validation.cnpj"
	MsgCEP              = "validation.cep"
	MsgEmail            = "validation.email"
	MsgPhone            = "validation.phone"
	MsgDate             = "validation.date"
	MsgInteger          = "validation.integer"
	MsgNumber           = "validation.number"
	MsgChoice           = "validation.choice"
	MsgPasswordMismatch = "validation.passwordMismatch"
	MsgRequestCode      = "validation.requestCode"
)

// Errors maps field names to message keys, keeping the order fields were reported.
type Errors struct {
	order []string
	msgs  map[string]string
}

// Add records msg for field unless the field already has an error.
func (e *Errors) Add(field, msg string) {
	if e.msgs == nil {
		e.msgs = make(map[string]string)
	}
	if _, ok := e.msgs[field]; ok {
		return
	}
	e.msgs[field] = msg
	e.order = append(e.order, field)
}

// Has reports whether field has an error.
func (e *Errors) Has(field string) bool {
	if e == nil {
		return false
	}
	_, ok := e.msgs[field]
	return ok
}

// Field returns the message key for field.
func (e *Errors) Field(field string) string {
	if e == nil {
		return ""
	}
	return e.msgs[field]
}

// Fields returns invalid field names in report order.
func (e *Errors) Fields() []string {
	if e == nil {
		return nil
	}
	return append([]string(nil), e.order...)
}

// Map returns a copy of the field to message mapping.
func (e *Errors) Map() map[string]string {
	out := make(map[string]string, len(e.order))
	for _, f := range e.order {
		out[f] = e.msgs[f]
	}
	return out
}

// Len returns the number of invalid fields.
func (e *Errors) Len() int {
	if e == nil {
		return 0
	}
	return len(e.order)
}

// OrNil returns nil when no field is invalid, so callers can return it as error.
func (e *Errors) OrNil() error {
	if e.Len() == 0 {
		return nil
	}
	return e
}

func (e *Errors) Error() string {
	parts := make([]string, 0, len(e.order))
	for _, f := range e.order {
		parts = append(parts, f+": "+e.msgs[f])
	}
	sort.Strings(parts)
	return "invalid fields: " + strings.Join(parts, ", ")
}
