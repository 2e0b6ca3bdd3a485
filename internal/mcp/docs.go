package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `unolims exposes a pharmaceutical quality-control LIMS: requesters send analysis
requests, samples arrive as analysis items, items get assays, and batches collect analysis results.

Typical workflow:
1) Orient: get_dashboard for the counters, then list_requesters / list_requests.
2) Drill down: get_requester -> list_requests(cnpj) -> get_request(code) -> list_batches(code) -> list_analyses(batch id).
3) Samples: list_items / get_item; list_assays merges every item's assays and reports items it could not read.
4) Write: create_* tools validate input locally first. INVALID_INPUT errors list the fields to fix and nothing was sent.
5) Stocks: list_stocks -> list_reagents(stock) -> create_reagent.

Identifiers: requesters by 14-digit CNPJ, requests by code (SAnnnnyyyy), items and batches by id, stocks by name.
Use open_view to see any screen exactly as the terminal client renders it.

Docs:
- unolims://docs/workflow
- unolims://docs/validation
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "unolims://docs/workflow",
		Name:        "docs_workflow",
		Title:       "Laboratory workflow",
		Description: "How requesters, requests, items, assays, batches, analyses, stocks and reagents relate.",
		Content: `# Laboratory workflow

- A **requester** is a client company, keyed by CNPJ.
- An **analysis request** belongs to a requester and gets a code like ` + "`SA00012025`" + `.
  Its completion shows "Não Finalizado" until the lab closes it.
- An **analysis item** is a sample received for a request (quantity, unit, material type, lot).
  Each item has a QR label (` + "`item_qr_code`" + `) holding the item id.
- An **assay** is a test scheduled on an item. Status moves PENDENTE -> EM_ANDAMENTO -> CONCLUIDO.
- A **batch** (lote) is registered under a request code; **analyses** record results per batch.
- A **stock** belongs to a requester; **reagents** are added to a stock by name.

Lists that combine reads from several items keep whatever succeeded. A partial result says how
many items were left out. When every item fails the list is empty and all_failed is set.
`,
	},
	{
		URI:         "unolims://docs/validation",
		Name:        "docs_validation",
		Title:       "Input validation",
		Description: "Rules create_* tools check before anything is sent.",
		Content: `# Input validation

Field errors come back as ` + "`INVALID_INPUT`" + ` with ` + "`details`" + ` mapping the field to a message key.

| rule | fields |
|---|---|
| 14 digits | cnpj, requester_cnpj |
| 8 digits | postal_code |
| 10 or 11 digits | phone (optional) |
| YYYY-MM-DD | deadline, entry_date, expiry_date |
| whole number >= 1 | item quantity |
| whole number >= 0 | batch quantity |
| decimal, comma allowed | specification, result, reagent quantity |
| one of the listed values | analysis_type, delivery_mode, role |
| SAnnnnyyyy | request_code |

Server-side rejections (duplicates, unknown parents) come back as ` + "`REMOTE_ERROR`" + ` with the API's message.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
