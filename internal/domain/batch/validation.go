package batch

import (
	"strings"

	"github.com/ganot/unolims/internal/domain/request"
	"github.com/ganot/unolims/internal/form"
)

// CreateRequest holds the batch registration form values.
type CreateRequest struct {
	Sample      string
	Invoice     string
	EntryDate   string
	ExpiryDate  string
	Description string
	Quantity    string
	RequestCode string
}

// Validate checks required fields, both dates, the quantity and the request code.
func (r CreateRequest) Validate() (quantity int, code string, err error) {
	var v form.Validator
	v.Required("amostra", r.Sample)
	v.Required("notaFiscal", r.Invoice)
	v.Date("dataEntrada", r.EntryDate)
	v.Date("dataValidade", r.ExpiryDate)
	quantity, _ = v.Integer("quantidade", r.Quantity, 0)
	if v.Required("solicitacaoAnalise", r.RequestCode) {
		c, cerr := request.NormalizeCode(r.RequestCode)
		if cerr != nil {
			v.Fail("solicitacaoAnalise", form.MsgRequestCode)
		}
		code = c
	}
	return quantity, code, v.Err()
}

func (r CreateRequest) trimmed() CreateRequest {
	return CreateRequest{
		Sample:      strings.TrimSpace(r.Sample),
		Invoice:     strings.TrimSpace(r.Invoice),
		EntryDate:   strings.TrimSpace(r.EntryDate),
		ExpiryDate:  strings.TrimSpace(r.ExpiryDate),
		Description: strings.TrimSpace(r.Description),
		Quantity:    strings.TrimSpace(r.Quantity),
		RequestCode: strings.TrimSpace(r.RequestCode),
	}
}
