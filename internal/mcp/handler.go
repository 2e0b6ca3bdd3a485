package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ganot/unolims/internal/domain/account"
	"github.com/ganot/unolims/internal/domain/analysis"
	"github.com/ganot/unolims/internal/domain/assay"
	"github.com/ganot/unolims/internal/domain/batch"
	"github.com/ganot/unolims/internal/domain/dashboard"
	"github.com/ganot/unolims/internal/domain/item"
	"github.com/ganot/unolims/internal/domain/reagent"
	"github.com/ganot/unolims/internal/domain/request"
	"github.com/ganot/unolims/internal/domain/requester"
	"github.com/ganot/unolims/internal/domain/stock"
	"github.com/ganot/unolims/internal/logging"
	"github.com/ganot/unolims/internal/qrcode"
	"github.com/ganot/unolims/internal/remote"
	"github.com/ganot/unolims/internal/screen"
	"go.uber.org/zap"
)

// RequesterService defines requester operations needed by MCP.
type RequesterService interface {
	Create(ctx context.Context, req requester.CreateRequest) (*requester.Requester, error)
	Get(ctx context.Context, cnpj string) (*requester.Requester, error)
	List(ctx context.Context) ([]requester.Requester, error)
}

// RequestService defines analysis request operations needed by MCP.
type RequestService interface {
	Create(ctx context.Context, req request.CreateRequest) (*request.AnalysisRequest, error)
	Get(ctx context.Context, code string) (*request.AnalysisRequest, error)
	List(ctx context.Context) ([]request.AnalysisRequest, error)
	ListByRequester(ctx context.Context, cnpj string) ([]request.AnalysisRequest, error)
}

// ItemService defines analysis item operations needed by MCP.
type ItemService interface {
	Create(ctx context.Context, req item.CreateRequest) (*item.Item, error)
	Get(ctx context.Context, id string) (*item.Item, error)
	List(ctx context.Context) ([]item.Item, error)
}

// AssayService defines assay operations needed by MCP.
type AssayService interface {
	Create(ctx context.Context, req assay.CreateRequest) (*assay.Assay, error)
	ListByItem(ctx context.Context, itemID string) ([]assay.Assay, error)
	ListProcedures(ctx context.Context) ([]assay.Procedure, error)
	ListAcrossItems(ctx context.Context) (assay.Listing, error)
}

// BatchService defines batch operations needed by MCP.
type BatchService interface {
	Create(ctx context.Context, req batch.CreateRequest) (*batch.Batch, error)
	Get(ctx context.Context, id string) (*batch.Batch, error)
	ListByRequest(ctx context.Context, code string) ([]batch.Batch, error)
}

// AnalysisService defines analysis operations needed by MCP.
type AnalysisService interface {
	Create(ctx context.Context, req analysis.CreateRequest) (*analysis.Analysis, error)
	ListByBatch(ctx context.Context, batchID string) ([]analysis.Analysis, error)
}

// StockService defines stock operations needed by MCP.
type StockService interface {
	Create(ctx context.Context, req stock.CreateRequest) (*stock.Stock, error)
	List(ctx context.Context) ([]stock.Stock, error)
}

// ReagentService defines reagent operations needed by MCP.
type ReagentService interface {
	Create(ctx context.Context, req reagent.CreateRequest) (*reagent.Reagent, error)
	ListByStock(ctx context.Context, stockName string) ([]reagent.Reagent, error)
}

// DashboardService reads the laboratory counters.
type DashboardService interface {
	Get(ctx context.Context) (*dashboard.Summary, error)
}

// AccountService signs in and registers users.
type AccountService interface {
	Authenticate(ctx context.Context, creds account.Credentials) (*account.Session, error)
	Register(ctx context.Context, reg account.Registration) error
}

// Services contains all domain services needed by MCP.
type Services struct {
	Requesters RequesterService
	Requests   RequestService
	Items      ItemService
	Assays     AssayService
	Batches    BatchService
	Analyses   AnalysisService
	Stocks     StockService
	Reagents   ReagentService
	Dashboard  DashboardService
	Accounts   AccountService
}

// ServicesFrom adapts the view services.
func ServicesFrom(s screen.Services) Services {
	return Services{
		Requesters: s.Requesters,
		Requests:   s.Requests,
		Items:      s.Items,
		Assays:     s.Assays,
		Batches:    s.Batches,
		Analyses:   s.Analyses,
		Stocks:     s.Stocks,
		Reagents:   s.Reagents,
		Dashboard:  s.Dashboard,
		Accounts:   s.Accounts,
	}
}

// Handler dispatches MCP tool calls.
type Handler struct {
	svc    Services
	views  *screen.Router
	logger *zap.Logger

	// sessions holds the API login of each MCP session, keyed by session id.
	mu       sync.Mutex
	sessions map[string]*account.Session
}

// NewHandler creates a new MCP handler. views may be nil, which disables open_view.
func NewHandler(svc Services, views *screen.Router, logger *zap.Logger) *Handler {
	return &Handler{
		svc:      svc,
		views:    views,
		logger:   logging.OrNop(logger),
		sessions: make(map[string]*account.Session),
	}
}

type sessionKey struct{}

// WithSession tags ctx with the MCP session a tool call arrived on.
func WithSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

func sessionFrom(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

// Handle dispatches a tool call to the domain services. API calls carry the
// token of the caller's own login and never one from another session.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	ctx = remote.WithToken(ctx, h.token(sessionFrom(ctx)))
	out, err := h.dispatch(ctx, method, params)
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func (h *Handler) token(session string) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	sess, ok := h.sessions[session]
	if !ok {
		return ""
	}
	if sess.Expired(time.Now()) {
		delete(h.sessions, session)
		return ""
	}
	return sess.Token
}

func (h *Handler) remember(session string, sess *account.Session) {
	now := time.Now()
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, s := range h.sessions {
		if s.Expired(now) {
			delete(h.sessions, id)
		}
	}
	h.sessions[session] = sess
}

func (h *Handler) dispatch(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	case "get_dashboard":
		return h.svc.Dashboard.Get(ctx)

	case "list_requesters":
		return h.svc.Requesters.List(ctx)
	case "get_requester":
		var req CNPJParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Requesters.Get(ctx, req.CNPJ)
	case "create_requester":
		var req CreateRequesterParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Requesters.Create(ctx, requester.CreateRequest{
			CNPJ:       req.CNPJ,
			Name:       req.Name,
			PostalCode: req.PostalCode,
			Street:     req.Street,
			Number:     req.Number,
			City:       req.City,
			State:      req.State,
			Contact:    req.Contact,
			Phone:      req.Phone,
			Email:      req.Email,
		})

	case "list_requests":
		var req CNPJParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if req.CNPJ != "" {
			return h.svc.Requests.ListByRequester(ctx, req.CNPJ)
		}
		return h.svc.Requests.List(ctx)
	case "get_request":
		var req CodeParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Requests.Get(ctx, req.Code)
	case "create_request":
		var req CreateRequestParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Requests.Create(ctx, request.CreateRequest{
			ProjectName:    req.ProjectName,
			AnalysisType:   req.AnalysisType,
			Deadline:       req.Deadline,
			Description:    req.Description,
			AdditionalInfo: req.AdditionalInfo,
			DeliveryMode:   req.DeliveryMode,
			OpenedBy:       req.OpenedBy,
			RequesterCNPJ:  req.RequesterCNPJ,
		})

	case "list_items":
		return h.svc.Items.List(ctx)
	case "get_item":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Items.Get(ctx, req.ID)
	case "create_item":
		var req CreateItemParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Items.Create(ctx, item.CreateRequest{
			Quantity:     req.Quantity,
			Unit:         req.Unit,
			MaterialType: req.MaterialType,
			Lot:          req.Lot,
			Invoice:      req.Invoice,
			Condition:    req.Condition,
			Note:         req.Note,
			RequestID:    req.RequestID,
		})
	case "item_qr_code":
		var req ItemQRParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.itemQRCode(ctx, req)

	case "list_assays":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if req.ID != "" {
			return h.svc.Assays.ListByItem(ctx, req.ID)
		}
		l, err := h.svc.Assays.ListAcrossItems(ctx)
		if err != nil {
			return nil, err
		}
		return AssayListingResponse{Assays: l.Assays, Items: l.Items, FailedItems: l.FailedItems, Partial: l.Partial(), AllFailed: l.AllFailed()}, nil
	case "list_assay_procedures":
		return h.svc.Assays.ListProcedures(ctx)
	case "create_assay":
		var req CreateAssayParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Assays.Create(ctx, assay.CreateRequest{Name: req.Name, Specification: req.Specification, ItemID: req.ItemID})

	case "get_batch":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Batches.Get(ctx, req.ID)
	case "list_batches":
		var req CodeParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Batches.ListByRequest(ctx, req.Code)
	case "create_batch":
		var req CreateBatchParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Batches.Create(ctx, batch.CreateRequest{
			Sample:      req.Sample,
			Invoice:     req.Invoice,
			EntryDate:   req.EntryDate,
			ExpiryDate:  req.ExpiryDate,
			Description: req.Description,
			Quantity:    req.Quantity,
			RequestCode: req.RequestCode,
		})

	case "list_analyses":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Analyses.ListByBatch(ctx, req.ID)
	case "create_analysis":
		var req CreateAnalysisParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Analyses.Create(ctx, analysis.CreateRequest{
			BatchID:       req.BatchID,
			Assay:         req.Assay,
			Specification: req.Specification,
			Result:        req.Result,
			Unit:          req.Unit,
			Note:          req.Note,
		})

	case "list_stocks":
		return h.svc.Stocks.List(ctx)
	case "create_stock":
		var req CreateStockParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Stocks.Create(ctx, stock.CreateRequest{Name: req.Name, RequesterCNPJ: req.RequesterCNPJ})
	case "list_reagents":
		var req StockParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Reagents.ListByStock(ctx, req.Stock)
	case "create_reagent":
		var req CreateReagentParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Reagents.Create(ctx, reagent.CreateRequest{
			StockName:   req.Stock,
			Name:        req.Name,
			ExpiryDate:  req.ExpiryDate,
			Supplier:    req.Supplier,
			Description: req.Description,
			Unit:        req.Unit,
			Quantity:    req.Quantity,
		})

	case "login":
		var req LoginParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		sess, err := h.svc.Accounts.Authenticate(ctx, account.Credentials{Email: req.Email, Password: req.Password})
		if err != nil {
			return nil, err
		}
		h.remember(sessionFrom(ctx), sess)
		resp := SessionResponse{Name: sess.User.Name, Role: sess.User.Role, Email: sess.User.Email}
		if exp, ok := sess.ExpiresAt(); ok {
			resp.ExpiresAt = exp.UTC().Format(time.RFC3339)
		}
		return resp, nil
	case "register":
		var req RegisterParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		err := h.svc.Accounts.Register(ctx, account.Registration{
			Name:            req.Name,
			Role:            req.Role,
			Email:           req.Email,
			Password:        req.Password,
			PasswordConfirm: req.PasswordConfirm,
		})
		if err != nil {
			return nil, err
		}
		return CreatedResponse{Created: true}, nil

	case "open_view":
		var req OpenViewParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.openView(ctx, req)

	default:
		return nil, fmt.Errorf("unknown method: %s", method)
	}
}

func (h *Handler) itemQRCode(ctx context.Context, req ItemQRParams) (any, error) {
	it, err := h.svc.Items.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	size := req.Size
	if size <= 0 {
		size = qrcode.DefaultSize
	}
	png, err := qrcode.Encode(it.ID.String(), size)
	if err != nil {
		return nil, err
	}
	return Image{MIMEType: "image/png", Data: png, Caption: "QR code for analysis item " + it.ID.String()}, nil
}

func (h *Handler) openView(ctx context.Context, req OpenViewParams) (any, error) {
	if h.views == nil {
		return nil, fmt.Errorf("%w: views are disabled", screen.ErrUnknownRoute)
	}
	v, loadErr := screen.NewNavigator(h.views).Open(ctx, req.Route, screen.Params(req.Params))
	if v == nil {
		return nil, loadErr
	}
	var buf bytes.Buffer
	if err := v.Render(&buf); err != nil {
		return nil, err
	}
	resp := ViewResponse{Route: v.Route(), Text: buf.String()}
	if loadErr != nil {
		h.logger.Debug("view loaded with error", zap.String("route", v.Route()), zap.Error(loadErr))
		resp.Error = loadErr.Error()
	}
	return resp, nil
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	return json.Unmarshal(params, out)
}
