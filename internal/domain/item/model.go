package item

import (
	"github.com/ganot/unolims/internal/domain/assay"
	"github.com/ganot/unolims/internal/domain/request"
	"github.com/ganot/unolims/internal/jsonx"
)

// NoNote is shown for items registered without an observation.
const NoNote = "-"

// Item is a quantity of material received under an analysis request.
// The detail read adds the parent request and the assays run on the item.
type Item struct {
	ID                jsonx.ID                 `json:"id,omitempty"`
	Quantity          int                      `json:"quantidade,omitempty"`
	QuantityReceived  float64                  `json:"quantidadeRecebida,omitempty"`
	QuantityAvailable float64                  `json:"quantidadeDisponivel,omitempty"`
	Unit              string                   `json:"unidade"`
	MaterialType      string                   `json:"tipoMaterial"`
	Lot               string                   `json:"lote"`
	Invoice           string                   `json:"notaFiscal"`
	Condition         string                   `json:"condicao"`
	Note              string                   `json:"observacao"`
	RequestID         jsonx.ID                 `json:"solicitacaoDeAnaliseId,omitempty"`
	Request           *request.AnalysisRequest `json:"solicitacaoDeAnalise,omitempty"`
	Assays            []assay.Assay            `json:"Ensaio,omitempty"`
}

// NoteLabel returns the observation or the placeholder dash.
func (i Item) NoteLabel() string {
	if i.Note == "" {
		return NoNote
	}
	return i.Note
}
