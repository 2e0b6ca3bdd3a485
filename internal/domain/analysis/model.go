package analysis

import (
	"github.com/ganot/unolims/internal/domain/batch"
	"github.com/ganot/unolims/internal/jsonx"
)

// Analysis is a measured result of an assay on a batch.
type Analysis struct {
	ID            jsonx.ID     `json:"id"`
	Name          string       `json:"nome,omitempty"`
	Specification float64      `json:"especificacao"`
	Result        float64      `json:"resultado"`
	Unit          string       `json:"unidade"`
	Note          string       `json:"observacao"`
	Batch         *batch.Batch `json:"lote,omitempty"`
	Assay         *AssayRef    `json:"ensaio,omitempty"`
}

// AssayRef names the catalog procedure the result belongs to.
type AssayRef struct {
	ID   jsonx.ID `json:"id"`
	Name string   `json:"nome"`
}

// Label returns the assay name for display.
func (a Analysis) Label() string {
	if a.Name != "" {
		return a.Name
	}
	if a.Assay != nil {
		return a.Assay.Name
	}
	return ""
}
