package item

import (
	"strings"

	"github.com/ganot/unolims/internal/form"
)

// CreateRequest holds the item registration form values.
type CreateRequest struct {
	Quantity     string
	Unit         string
	MaterialType string
	Lot          string
	Invoice      string
	Condition    string
	Note         string
	RequestID    string
}

// Validate checks required fields and coerces the quantity.
func (r CreateRequest) Validate() (quantity int, err error) {
	var v form.Validator
	quantity, _ = v.Integer("quantidade", r.Quantity, 1)
	v.Required("unidade", r.Unit)
	v.Required("tipoMaterial", r.MaterialType)
	v.Required("solicitacaoDeAnaliseId", r.RequestID)
	return quantity, v.Err()
}

func (r CreateRequest) trimmed() CreateRequest {
	return CreateRequest{
		Quantity:     strings.TrimSpace(r.Quantity),
		Unit:         strings.TrimSpace(r.Unit),
		MaterialType: strings.TrimSpace(r.MaterialType),
		Lot:          strings.TrimSpace(r.Lot),
		Invoice:      strings.TrimSpace(r.Invoice),
		Condition:    strings.TrimSpace(r.Condition),
		Note:         strings.TrimSpace(r.Note),
		RequestID:    strings.TrimSpace(r.RequestID),
	}
}
