package stock

import (
	"github.com/ganot/unolims/internal/domain/requester"
	"github.com/ganot/unolims/internal/jsonx"
)

// Stock is a named reagent store owned by a requester.
type Stock struct {
	ID        jsonx.ID             `json:"id"`
	Name      string               `json:"nome"`
	Requester *requester.Requester `json:"solicitante,omitempty"`
}

// Ref is the placeholder stock nested in reagent payloads.
func Ref(name string) *Stock {
	return &Stock{Name: name, Requester: &requester.Requester{}}
}
