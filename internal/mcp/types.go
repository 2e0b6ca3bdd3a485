package mcp

import (
	"github.com/ganot/unolims/internal/domain/assay"
	"github.com/ganot/unolims/internal/jsonx"
)

type CNPJParams struct {
	CNPJ string `json:"cnpj"`
}

type CodeParams struct {
	Code string `json:"code"`
}

type IDParams struct {
	ID string `json:"id"`
}

type CreateRequesterParams struct {
	CNPJ       string `json:"cnpj"`
	Name       string `json:"name,omitempty"`
	PostalCode string `json:"postal_code"`
	Street     string `json:"street,omitempty"`
	Number     string `json:"number,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	Contact    string `json:"contact,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
}

type CreateRequestParams struct {
	ProjectName    string `json:"project_name"`
	AnalysisType   string `json:"analysis_type"`
	Deadline       string `json:"deadline"`
	Description    string `json:"description,omitempty"`
	AdditionalInfo string `json:"additional_info,omitempty"`
	DeliveryMode   string `json:"delivery_mode"`
	OpenedBy       string `json:"opened_by,omitempty"`
	RequesterCNPJ  string `json:"requester_cnpj"`
}

type CreateItemParams struct {
	Quantity     string `json:"quantity"`
	Unit         string `json:"unit"`
	MaterialType string `json:"material_type"`
	Lot          string `json:"lot,omitempty"`
	Invoice      string `json:"invoice,omitempty"`
	Condition    string `json:"condition,omitempty"`
	Note         string `json:"note,omitempty"`
	RequestID    string `json:"request_id"`
}

type CreateAssayParams struct {
	Name          string `json:"name"`
	Specification string `json:"specification"`
	ItemID        string `json:"item_id"`
}

type CreateBatchParams struct {
	Sample      string `json:"sample"`
	Invoice     string `json:"invoice"`
	EntryDate   string `json:"entry_date"`
	ExpiryDate  string `json:"expiry_date"`
	Description string `json:"description,omitempty"`
	Quantity    string `json:"quantity"`
	RequestCode string `json:"request_code"`
}

type CreateAnalysisParams struct {
	BatchID       string `json:"batch_id"`
	Assay         string `json:"assay"`
	Specification string `json:"specification"`
	Result        string `json:"result"`
	Unit          string `json:"unit"`
	Note          string `json:"note,omitempty"`
}

type CreateStockParams struct {
	Name          string `json:"name"`
	RequesterCNPJ string `json:"requester_cnpj"`
}

type StockParams struct {
	Stock string `json:"stock"`
}

type CreateReagentParams struct {
	Stock       string `json:"stock"`
	Name        string `json:"name"`
	ExpiryDate  string `json:"expiry_date"`
	Supplier    string `json:"supplier,omitempty"`
	Description string `json:"description,omitempty"`
	Unit        string `json:"unit"`
	Quantity    string `json:"quantity"`
}

type LoginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterParams struct {
	Name            string `json:"name"`
	Role            string `json:"role,omitempty"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

type ItemQRParams struct {
	ID   string `json:"id"`
	Size int    `json:"size,omitempty"`
}

type OpenViewParams struct {
	Route  string            `json:"route"`
	Params map[string]string `json:"params,omitempty"`
}

// AssayListingResponse is the merged assay list with the items that could not be read.
type AssayListingResponse struct {
	Assays      []assay.Assay `json:"assays"`
	Items       int           `json:"items"`
	FailedItems []jsonx.ID    `json:"failed_items,omitempty"`
	Partial     bool          `json:"partial"`
	AllFailed   bool          `json:"all_failed,omitempty"`
}

type SessionResponse struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

type ViewResponse struct {
	Route string `json:"route"`
	Text  string `json:"text"`
	// Error is set when the view loaded with a failure it renders itself.
	Error string `json:"error,omitempty"`
}

type CreatedResponse struct {
	Created bool `json:"created"`
	Value   any  `json:"value,omitempty"`
}

// Image is a binary tool result.
type Image struct {
	MIMEType string
	Data     []byte
	Caption  string
}
