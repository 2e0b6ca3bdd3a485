package batch

import (
	"github.com/ganot/unolims/internal/domain/request"
	"github.com/ganot/unolims/internal/domain/requester"
	"github.com/ganot/unolims/internal/jsonx"
)

// Batch (lote) is a received sample lot tied to an analysis request.
type Batch struct {
	ID          jsonx.ID                 `json:"id"`
	Sample      string                   `json:"amostra"`
	Invoice     string                   `json:"notaFiscal"`
	EntryDate   string                   `json:"dataEntrada"`
	ExpiryDate  string                   `json:"dataValidade"`
	Description string                   `json:"descricao"`
	Quantity    int                      `json:"quantidade"`
	Request     *request.AnalysisRequest `json:"solicitacaoAnalise,omitempty"`
}

// Ref is the placeholder batch nested in analysis payloads. The API expects the
// whole chain down to the requester, all empty except the batch id.
func Ref(id jsonx.ID) *Batch {
	return &Batch{
		ID: id,
		Request: &request.AnalysisRequest{
			Requester: &requester.Requester{},
		},
	}
}
