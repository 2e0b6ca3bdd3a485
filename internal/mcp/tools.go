package mcp

import (
	"github.com/ganot/unolims/internal/domain/account"
	"github.com/ganot/unolims/internal/domain/request"
	"github.com/ganot/unolims/internal/screen"
)

// ToolDefinition describes a callable tool.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
	// ReadOnly tools only read from the LIMS.
	ReadOnly bool `json:"-"`
}

func object(required []string, props map[string]any) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func str(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func enum(description string, values []string) map[string]any {
	return map[string]any{"type": "string", "description": description, "enum": values}
}

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        "get_dashboard",
			Description: "Get the laboratory counters: requests, requesters, available item quantity and assays by status",
			InputSchema: object(nil, map[string]any{}),
			ReadOnly:    true,
		},

		// Requesters
		{
			Name:        "list_requesters",
			Description: "List all requesters (client companies)",
			InputSchema: object(nil, map[string]any{}),
			ReadOnly:    true,
		},
		{
			Name:        "get_requester",
			Description: "Get one requester by CNPJ",
			InputSchema: object([]string{"cnpj"}, map[string]any{
				"cnpj": str("14-digit CNPJ, digits only"),
			}),
			ReadOnly: true,
		},
		{
			Name:        "create_requester",
			Description: "Register a requester. CNPJ (14 digits) and postal code (8 digits) are required",
			InputSchema: object([]string{"cnpj", "postal_code"}, map[string]any{
				"cnpj":        str("14-digit CNPJ, digits only"),
				"name":        str("Company name"),
				"postal_code": str("8-digit CEP"),
				"street":      str("Street address"),
				"number":      str("Street number"),
				"city":        str("City"),
				"state":       str("State"),
				"contact":     str("Responsible person"),
				"phone":       str("Phone, 10 or 11 digits"),
				"email":       str("Contact email"),
			}),
		},

		// Analysis requests
		{
			Name:        "list_requests",
			Description: "List analysis requests, optionally only those of one requester",
			InputSchema: object(nil, map[string]any{
				"cnpj": str("Requester CNPJ to filter by"),
			}),
			ReadOnly: true,
		},
		{
			Name:        "get_request",
			Description: "Get one analysis request by its code (SAnnnnyyyy)",
			InputSchema: object([]string{"code"}, map[string]any{
				"code": str("Request code"),
			}),
			ReadOnly: true,
		},
		{
			Name:        "create_request",
			Description: "Open an analysis request for a requester",
			InputSchema: object([]string{"project_name", "analysis_type", "deadline", "delivery_mode", "requester_cnpj"}, map[string]any{
				"project_name":    str("Project name"),
				"analysis_type":   enum("Analysis type", request.AnalysisTypes),
				"deadline":        str("Agreed deadline, YYYY-MM-DD"),
				"description":     str("Project description"),
				"additional_info": str("Additional information"),
				"delivery_mode":   enum("How results are delivered", request.DeliveryModes),
				"opened_by":       str("Who opened the request"),
				"requester_cnpj":  str("Requester CNPJ"),
			}),
		},

		// Items and assays
		{
			Name:        "list_items",
			Description: "List analysis items (samples received for analysis)",
			InputSchema: object(nil, map[string]any{}),
			ReadOnly:    true,
		},
		{
			Name:        "get_item",
			Description: "Get one analysis item with its assays",
			InputSchema: object([]string{"id"}, map[string]any{
				"id": str("Item id"),
			}),
			ReadOnly: true,
		},
		{
			Name:        "create_item",
			Description: "Register an analysis item under a request",
			InputSchema: object([]string{"quantity", "unit", "material_type", "request_id"}, map[string]any{
				"quantity":      str("Whole quantity received, at least 1"),
				"unit":          str("Unit of the quantity"),
				"material_type": str("Material type"),
				"lot":           str("Lot"),
				"invoice":       str("Invoice number"),
				"condition":     str("Condition on arrival"),
				"note":          str("Note"),
				"request_id":    str("Numeric id of the analysis request"),
			}),
		},
		{
			Name:        "item_qr_code",
			Description: "Get the QR label of an analysis item as a PNG image. Scanning it opens the item",
			InputSchema: object([]string{"id"}, map[string]any{
				"id":   str("Item id"),
				"size": map[string]any{"type": "integer", "description": "Image side in pixels"},
			}),
			ReadOnly: true,
		},
		{
			Name:        "list_assays",
			Description: "List assays of one item, or of every item when no id is given. The merged list reports items whose assays could not be read",
			InputSchema: object(nil, map[string]any{
				"id": str("Item id"),
			}),
			ReadOnly: true,
		},
		{
			Name:        "list_assay_procedures",
			Description: "List the assay procedures known to the laboratory",
			InputSchema: object(nil, map[string]any{}),
			ReadOnly:    true,
		},
		{
			Name:        "create_assay",
			Description: "Schedule an assay for an analysis item",
			InputSchema: object([]string{"name", "specification", "item_id"}, map[string]any{
				"name":          str("Assay name"),
				"specification": str("Specification the result must meet"),
				"item_id":       str("Item id"),
			}),
		},

		// Batches and analyses
		{
			Name:        "get_batch",
			Description: "Get one batch",
			InputSchema: object([]string{"id"}, map[string]any{
				"id": str("Batch id"),
			}),
			ReadOnly: true,
		},
		{
			Name:        "list_batches",
			Description: "List the batches of an analysis request",
			InputSchema: object([]string{"code"}, map[string]any{
				"code": str("Request code"),
			}),
			ReadOnly: true,
		},
		{
			Name:        "create_batch",
			Description: "Register a batch under an analysis request",
			InputSchema: object([]string{"sample", "invoice", "entry_date", "expiry_date", "quantity", "request_code"}, map[string]any{
				"sample":       str("Sample description"),
				"invoice":      str("Invoice number"),
				"entry_date":   str("Entry date, YYYY-MM-DD"),
				"expiry_date":  str("Expiry date, YYYY-MM-DD"),
				"description":  str("Description"),
				"quantity":     str("Whole quantity"),
				"request_code": str("Request code"),
			}),
		},
		{
			Name:        "list_analyses",
			Description: "List the analyses recorded for a batch",
			InputSchema: object([]string{"id"}, map[string]any{
				"id": str("Batch id"),
			}),
			ReadOnly: true,
		},
		{
			Name:        "create_analysis",
			Description: "Record an analysis result for a batch",
			InputSchema: object([]string{"batch_id", "assay", "specification", "result", "unit"}, map[string]any{
				"batch_id":      str("Batch id"),
				"assay":         str("Assay procedure name"),
				"specification": str("Specification value"),
				"result":        str("Measured result"),
				"unit":          str("Unit"),
				"note":          str("Note"),
			}),
		},

		// Stocks and reagents
		{
			Name:        "list_stocks",
			Description: "List reagent stocks",
			InputSchema: object(nil, map[string]any{}),
			ReadOnly:    true,
		},
		{
			Name:        "create_stock",
			Description: "Open a reagent stock for a requester",
			InputSchema: object([]string{"name", "requester_cnpj"}, map[string]any{
				"name":           str("Stock name"),
				"requester_cnpj": str("Requester CNPJ"),
			}),
		},
		{
			Name:        "list_reagents",
			Description: "List the reagents of a stock",
			InputSchema: object([]string{"stock"}, map[string]any{
				"stock": str("Stock name"),
			}),
			ReadOnly: true,
		},
		{
			Name:        "create_reagent",
			Description: "Add a reagent to a stock",
			InputSchema: object([]string{"stock", "name", "expiry_date", "unit", "quantity"}, map[string]any{
				"stock":       str("Stock name"),
				"name":        str("Reagent name"),
				"expiry_date": str("Expiry date, YYYY-MM-DD"),
				"supplier":    str("Supplier"),
				"description": str("Description"),
				"unit":        str("Unit"),
				"quantity":    str("Quantity, decimal"),
			}),
		},

		// Accounts
		{
			Name:        "login",
			Description: "Sign in to the LIMS. Later calls on this MCP session use the issued token",
			InputSchema: object([]string{"email", "password"}, map[string]any{
				"email":    str("Account email"),
				"password": str("Password"),
			}),
		},
		{
			Name:        "register",
			Description: "Create a LIMS user account",
			InputSchema: object([]string{"name", "email", "password", "password_confirm"}, map[string]any{
				"name":             str("Full name"),
				"role":             enum("Role, defaults to "+account.DefaultRole, account.Roles),
				"email":            str("Email"),
				"password":         str("Password"),
				"password_confirm": str("Password again"),
			}),
		},

		// Views
		{
			Name:        "open_view",
			Description: "Render a client screen as text, as the navigation shell shows it",
			InputSchema: object([]string{"route"}, map[string]any{
				"route": enum("Route name", screen.Routes()),
				"params": map[string]any{
					"type":                 "object",
					"description":          "Route params, such as id",
					"additionalProperties": map[string]any{"type": "string"},
				},
			}),
			ReadOnly: true,
		},
	}
}
