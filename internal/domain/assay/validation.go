package assay

import (
	"strings"

	"github.com/ganot/unolims/internal/form"
)

// CreateRequest holds the assay form values.
type CreateRequest struct {
	Name          string
	Specification string
	ItemID        string
}

// Validate checks that every field is filled in.
func (r CreateRequest) Validate() error {
	var v form.Validator
	v.Required("nomeEnsaio", r.Name)
	v.Required("especificacao", r.Specification)
	v.Required("itemDeAnaliseId", r.ItemID)
	return v.Err()
}

func (r CreateRequest) trimmed() CreateRequest {
	return CreateRequest{
		Name:          strings.TrimSpace(r.Name),
		Specification: strings.TrimSpace(r.Specification),
		ItemID:        strings.TrimSpace(r.ItemID),
	}
}
