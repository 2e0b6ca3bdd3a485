package requester

import (
	"strings"

	"github.com/ganot/unolims/internal/form"
)

// CreateRequest holds the registration form values.
type CreateRequest struct {
	CNPJ       string
	Name       string
	PostalCode string
	Street     string
	Number     string
	City       string
	State      string
	Contact    string
	Phone      string
	Email      string
}

// Validate checks the identifier formats. Contact fields are only checked when filled in.
func (r CreateRequest) Validate() error {
	var v form.Validator
	v.CNPJ("cnpj", r.CNPJ)
	if v.Required("cep", r.PostalCode) {
		v.Digits("cep", r.PostalCode, 8, form.MsgCEP)
	}
	v.Phone("telefone", r.Phone)
	v.Email("email", r.Email)
	return v.Err()
}

func (r CreateRequest) trimmed() CreateRequest {
	return CreateRequest{
		CNPJ:       strings.TrimSpace(r.CNPJ),
		Name:       strings.TrimSpace(r.Name),
		PostalCode: strings.TrimSpace(r.PostalCode),
		Street:     strings.TrimSpace(r.Street),
		Number:     strings.TrimSpace(r.Number),
		City:       strings.TrimSpace(r.City),
		State:      strings.TrimSpace(r.State),
		Contact:    strings.TrimSpace(r.Contact),
		Phone:      strings.TrimSpace(r.Phone),
		Email:      strings.TrimSpace(r.Email),
	}
}
