package assay

import "github.com/ganot/unolims/internal/jsonx"

// Assay progress values.
const (
	StatusPending    = "PENDENTE"
	StatusInProgress = "EM_ANDAMENTO"
	StatusCompleted  = "CONCLUIDO"
)

// StandardNames are the assays the laboratory offers out of the box.
var StandardNames = []string{
	"Desintegracao",
	"Dissolucao",
	"pH",
	"Dureza",
	"Friabilidade",
	"Umidade",
	"Viscosidade",
	"Solubilidade",
	"Teor_do_Ativo",
	"Teor_de_Impurezas",
	"Particulas_Visiveis",
	"Peso_Medio",
	"Karl_Fischer",
}

// Assay is a test scheduled on an analysis item.
type Assay struct {
	ID            jsonx.ID `json:"id,omitempty"`
	Name          string   `json:"nomeEnsaio"`
	Specification string   `json:"especificacao"`
	ItemID        jsonx.ID `json:"itemDeAnaliseId"`
	Status        string   `json:"statusEnsaio,omitempty"`
}

// Procedure is an entry of the assay catalog used when recording results.
type Procedure struct {
	ID   jsonx.ID `json:"id"`
	Name string   `json:"nome"`
}

// Listing is the merged result of reading the assays of many items.
type Listing struct {
	Assays      []Assay
	Items       int
	FailedItems []jsonx.ID
}

// Partial reports whether some item reads failed.
func (l Listing) Partial() bool {
	return len(l.FailedItems) > 0
}

// AllFailed reports whether there were items and none could be read.
func (l Listing) AllFailed() bool {
	return l.Items > 0 && len(l.FailedItems) == l.Items
}
