package request

import (
	"strings"

	"github.com/ganot/unolims/internal/form"
)

// CreateRequest holds the analysis request form values.
type CreateRequest struct {
	ProjectName    string
	AnalysisType   string
	Deadline       string
	Description    string
	AdditionalInfo string
	DeliveryMode   string
	OpenedBy       string
	RequesterCNPJ  string
}

// Validate checks required fields, the deadline format and the enumerations.
func (r CreateRequest) Validate() error {
	var v form.Validator
	v.Required("nomeProjeto", r.ProjectName)
	if v.Required("tipoAnalise", r.AnalysisType) {
		v.OneOf("tipoAnalise", r.AnalysisType, AnalysisTypes)
	}
	v.Date("prazoAcordado", r.Deadline)
	if v.Required("modoEnvioResultado", r.DeliveryMode) {
		v.OneOf("modoEnvioResultado", r.DeliveryMode, DeliveryModes)
	}
	v.CNPJ("solicitante", r.RequesterCNPJ)
	return v.Err()
}

func (r CreateRequest) trimmed() CreateRequest {
	return CreateRequest{
		ProjectName:    strings.TrimSpace(r.ProjectName),
		AnalysisType:   strings.TrimSpace(r.AnalysisType),
		Deadline:       strings.TrimSpace(r.Deadline),
		Description:    strings.TrimSpace(r.Description),
		AdditionalInfo: strings.TrimSpace(r.AdditionalInfo),
		DeliveryMode:   strings.ToUpper(strings.TrimSpace(r.DeliveryMode)),
		OpenedBy:       strings.TrimSpace(r.OpenedBy),
		RequesterCNPJ:  strings.TrimSpace(r.RequesterCNPJ),
	}
}
