package requester

import "github.com/ganot/unolims/internal/jsonx"

// Requester is a client company that submits samples for analysis.
// CNPJ is the natural key used by every other entity that references it.
type Requester struct {
	ID         jsonx.ID `json:"id"`
	CNPJ       string   `json:"cnpj"`
	Name       string   `json:"nome"`
	PostalCode string   `json:"cep"`
	Street     string   `json:"endereco"`
	Number     string   `json:"numero"`
	City       string   `json:"cidade"`
	State      string   `json:"estado"`
	Contact    string   `json:"responsavel"`
	Phone      string   `json:"telefone"`
	Email      string   `json:"email"`
}

// Ref is the placeholder sub-object nested payloads carry: only the CNPJ is
// meaningful, every other field is sent empty.
func Ref(cnpj string) *Requester {
	return &Requester{CNPJ: cnpj}
}
