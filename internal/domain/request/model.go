package request

import (
	"github.com/ganot/unolims/internal/domain/requester"
	"github.com/ganot/unolims/internal/jsonx"
)

// Analysis types accepted by the laboratory.
var AnalysisTypes = []string{
	"Desenvolvimento",
	"Degradacao_Forcada",
	"Validacao",
	"Controle",
	"Solubilidade",
	"Estabilidade",
	"Perfil_de_Dissolucao",
	"Solventes_Residuais",
	"Sumario_de_Validacao",
}

// DeliveryModes are the ways results can be sent to the requester.
var DeliveryModes = []string{"VIRTUAL", "VALER", "CLIENTE", "CORREIOS"}

// CompletionPending is shown when the project has no completion date.
const CompletionPending = "Não Finalizado"

// AnalysisRequest is a project under which a requester sends material.
type AnalysisRequest struct {
	ID             jsonx.ID             `json:"id,omitempty"`
	Code           string               `json:"idSa,omitempty"`
	ProjectName    string               `json:"nomeProjeto"`
	AnalysisType   string               `json:"tipoAnalise"`
	Deadline       string               `json:"prazoAcordado"`
	Completion     string               `json:"conclusaoProjeto"`
	Description    string               `json:"descricaoProjeto"`
	AdditionalInfo string               `json:"informacoesAdicionais,omitempty"`
	DeliveryMode   string               `json:"modoEnvioResultado,omitempty"`
	OpenedBy       string               `json:"responsavelAbertura,omitempty"`
	Requester      *requester.Requester `json:"solicitante,omitempty"`
}

// CompletionLabel returns the completion date or the pending marker.
func (r AnalysisRequest) CompletionLabel() string {
	if r.Completion == "" {
		return CompletionPending
	}
	return r.Completion
}

// Key returns the code when known, otherwise the numeric id.
func (r AnalysisRequest) Key() string {
	if r.Code != "" {
		return r.Code
	}
	return r.ID.String()
}

// Ref is the placeholder sub-object used when a payload only needs the code.
func Ref(code string) *AnalysisRequest {
	return &AnalysisRequest{Code: code}
}
