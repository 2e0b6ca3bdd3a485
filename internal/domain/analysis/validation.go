package analysis

import (
	"strings"

	"github.com/ganot/unolims/internal/form"
)

// CreateRequest holds the analysis result form values.
type CreateRequest struct {
	BatchID       string
	Specification string
	Result        string
	Unit          string
	Note          string
	Assay         string
}

type parsed struct {
	specification float64
	result        float64
}

func (r CreateRequest) validate() (parsed, error) {
	var v form.Validator
	var p parsed
	v.Required("lote", r.BatchID)
	p.specification, _ = v.Decimal("especificacao", r.Specification)
	p.result, _ = v.Decimal("resultado", r.Result)
	v.Required("unidade", r.Unit)
	v.Required("ensaio", r.Assay)
	return p, v.Err()
}

// Validate checks required fields and that both measurements are numbers.
func (r CreateRequest) Validate() error {
	_, err := r.validate()
	return err
}

func (r CreateRequest) trimmed() CreateRequest {
	return CreateRequest{
		BatchID:       strings.TrimSpace(r.BatchID),
		Specification: strings.TrimSpace(r.Specification),
		Result:        strings.TrimSpace(r.Result),
		Unit:          strings.TrimSpace(r.Unit),
		Note:          strings.TrimSpace(r.Note),
		Assay:         strings.TrimSpace(r.Assay),
	}
}
