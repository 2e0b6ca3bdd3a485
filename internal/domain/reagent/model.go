package reagent

import (
	"github.com/ganot/unolims/internal/domain/stock"
	"github.com/ganot/unolims/internal/jsonx"
)

// Reagent is a consumable kept in a stock.
type Reagent struct {
	ID          jsonx.ID     `json:"id"`
	Name        string       `json:"nome"`
	ExpiryDate  string       `json:"dataValidade"`
	Supplier    string       `json:"fornecedor"`
	Description string       `json:"descricao"`
	Unit        string       `json:"unidade"`
	Quantity    float64      `json:"quantidade"`
	Stock       *stock.Stock `json:"estoque,omitempty"`
}
