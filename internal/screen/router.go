package screen

import (
	"context"
	"errors"
	"fmt"
	"sort"
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
	"github.com/ganot/unolims/internal/i18n"
	"github.com/ganot/unolims/internal/logging"
	"go.uber.org/zap"
)

const (
	RouteMain         = "main"
	RouteLogin        = "login"
	RouteRegister     = "register"
	RouteRequesters   = "requesters"
	RouteRequester    = "requester"
	RouteRequesterNew = "requester.new"
	RouteRequests     = "requests"
	RouteRequest      = "request"
	RouteRequestNew   = "request.new"
	RouteItems        = "items"
	RouteItem         = "item"
	RouteItemNew      = "item.new"
	RouteItemQR       = "item.qr"
	RouteAssays       = "assays"
	RouteAssayNew     = "assay.new"
	RouteBatch        = "batch"
	RouteBatchNew     = "batch.new"
	RouteAnalysisNew  = "analysis.new"
	RouteStocks       = "stocks"
	RouteStock        = "stock"
	RouteStockNew     = "stock.new"
	RouteReagentNew   = "reagent.new"
	RouteScan         = "scan"
)

var (
	// ErrUnknownRoute is returned for a route no view is registered under.
	ErrUnknownRoute = errors.New("unknown route")
	// ErrMissingParam is returned when a route argument is absent.
	ErrMissingParam = errors.New("missing route parameter")
)

// Services are the domain services the views read from and submit to.
type Services struct {
	Requesters *requester.Service
	Requests   *request.Service
	Items      *item.Service
	Assays     *assay.Service
	Batches    *batch.Service
	Analyses   *analysis.Service
	Stocks     *stock.Service
	Reagents   *reagent.Service
	Dashboard  *dashboard.Service
	Accounts   *account.Service
}

type routeDef struct {
	// required lists the params the route cannot open without.
	required []string
	build    func(r *Router, p Params) View
}

var routes = map[string]routeDef{
	RouteMain:         {build: (*Router).main},
	RouteLogin:        {build: (*Router).login},
	RouteRegister:     {build: (*Router).register},
	RouteRequesters:   {build: (*Router).requesters},
	RouteRequester:    {required: []string{"id"}, build: (*Router).requester},
	RouteRequesterNew: {build: (*Router).requesterNew},
	RouteRequests:     {build: (*Router).requests},
	RouteRequest:      {required: []string{"id"}, build: (*Router).request},
	RouteRequestNew:   {build: (*Router).requestNew},
	RouteItems:        {build: (*Router).items},
	RouteItem:         {required: []string{"id"}, build: (*Router).item},
	RouteItemNew:      {build: (*Router).itemNew},
	RouteItemQR:       {required: []string{"id"}, build: (*Router).itemQR},
	RouteAssays:       {build: (*Router).assays},
	RouteAssayNew:     {build: (*Router).assayNew},
	RouteBatch:        {required: []string{"id"}, build: (*Router).batch},
	RouteBatchNew:     {build: (*Router).batchNew},
	RouteAnalysisNew:  {build: (*Router).analysisNew},
	RouteStocks:       {build: (*Router).stocks},
	RouteStock:        {required: []string{"id"}, build: (*Router).stock},
	RouteStockNew:     {build: (*Router).stockNew},
	RouteReagentNew:   {build: (*Router).reagentNew},
	RouteScan:         {required: []string{"image"}, build: (*Router).scan},
}

// Routes returns every registered route name, sorted.
func Routes() []string {
	out := make([]string, 0, len(routes))
	for name := range routes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Router builds views by route name.
type Router struct {
	svc    Services
	cat    i18n.Catalog
	logger *zap.Logger
	now    func() time.Time
}

// NewRouter creates a router. now defaults to time.Now.
func NewRouter(svc Services, cat i18n.Catalog, logger *zap.Logger, now func() time.Time) *Router {
	if now == nil {
		now = time.Now
	}
	return &Router{svc: svc, cat: cat, logger: logging.OrNop(logger), now: now}
}

// SetCatalog switches the language of views built from now on.
func (r *Router) SetCatalog(cat i18n.Catalog) { r.cat = cat }

// Catalog returns the active catalog.
func (r *Router) Catalog() i18n.Catalog { return r.cat }

// Navigate builds the view for route. The view is not loaded.
func (r *Router) Navigate(route string, params Params) (View, error) {
	def, ok := routes[route]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRoute, route)
	}
	for _, name := range def.required {
		if params.Get(name) == "" {
			return nil, fmt.Errorf("%w: %s needs %q", ErrMissingParam, route, name)
		}
	}
	r.logger.Debug("navigate", zap.String("route", route), zap.Any("params", params))
	return def.build(r, params), nil
}

func (r *Router) main(Params) View {
	return NewDashboard(r.cat, r.svc.Dashboard.Get)
}

func (r *Router) login(p Params) View {
	specs := []FieldSpec{
		{Name: "email", Label: "field.email"},
		{Name: "senha", Label: "field.senha", Secret: true},
	}
	return NewForm(RouteLogin, "title.login", r.cat, specs, p, func(ctx context.Context, v map[string]string) (string, error) {
		sess, err := r.svc.Accounts.Login(ctx, account.Credentials{Email: v["email"], Password: v["senha"]})
		if errors.Is(err, account.ErrInvalidCredentials) {
			// Rejected credentials always show the localized message.
			return "", account.ErrInvalidCredentials
		}
		if err != nil {
			return "", err
		}
		return r.cat.Format("login.success", map[string]string{"name": sess.User.Name}), nil
	}).WithFailureMessage("login.failure")
}

func (r *Router) register(p Params) View {
	specs := []FieldSpec{
		{Name: "nome", Label: "field.nome"},
		{Name: "cargo", Label: "field.cargo", Default: account.DefaultRole, Choices: account.Roles},
		{Name: "email", Label: "field.email"},
		{Name: "senha", Label: "field.senha", Secret: true},
		{Name: "confirmarSenha", Label: "field.confirmarSenha", Secret: true},
	}
	return NewForm(RouteRegister, "title.register", r.cat, specs, p, func(ctx context.Context, v map[string]string) (string, error) {
		err := r.svc.Accounts.Register(ctx, account.Registration{
			Name:            v["nome"],
			Role:            v["cargo"],
			Email:           v["email"],
			Password:        v["senha"],
			PasswordConfirm: v["confirmarSenha"],
		})
		return r.cat.T("register.success"), err
	})
}

func (r *Router) requesters(Params) View {
	return NewList(RouteRequesters, "title.requesters", "empty.requesters", r.cat, r.svc.Requesters.List, requesterRow)
}

func (r *Router) requester(p Params) View {
	cnpj := p.Get("id")
	return NewDetail(RouteRequester, "title.requester", r.cat,
		func(ctx context.Context) (*requester.Requester, error) { return r.svc.Requesters.Get(ctx, cnpj) },
		requesterFull,
		func(*requester.Requester) []*Section {
			return []*Section{SectionOf("section.requests", "empty.requests",
				func(ctx context.Context) ([]request.AnalysisRequest, error) {
					return r.svc.Requests.ListByRequester(ctx, cnpj)
				}, requestRow)}
		})
}

func (r *Router) requesterNew(p Params) View {
	specs := []FieldSpec{
		{Name: "cnpj", Label: "field.cnpj"},
		{Name: "nome", Label: "field.nome"},
		{Name: "cep", Label: "field.cep"},
		{Name: "endereco", Label: "field.endereco"},
		{Name: "numero", Label: "field.numero"},
		{Name: "cidade", Label: "field.cidade"},
		{Name: "estado", Label: "field.estado"},
		{Name: "responsavel", Label: "field.responsavel"},
		{Name: "telefone", Label: "field.telefone"},
		{Name: "email", Label: "field.email"},
	}
	return NewForm(RouteRequesterNew, "title.requesterNew", r.cat, specs, p, func(ctx context.Context, v map[string]string) (string, error) {
		_, err := r.svc.Requesters.Create(ctx, requester.CreateRequest{
			CNPJ:       v["cnpj"],
			Name:       v["nome"],
			PostalCode: v["cep"],
			Street:     v["endereco"],
			Number:     v["numero"],
			City:       v["cidade"],
			State:      v["estado"],
			Contact:    v["responsavel"],
			Phone:      v["telefone"],
			Email:      v["email"],
		})
		return "", err
	})
}

func (r *Router) requests(Params) View {
	return NewList(RouteRequests, "title.requests", "empty.requests", r.cat, r.svc.Requests.List, requestRow)
}

func (r *Router) request(p Params) View {
	code := p.Get("id")
	return NewDetail(RouteRequest, "title.request", r.cat,
		func(ctx context.Context) (*request.AnalysisRequest, error) { return r.svc.Requests.Get(ctx, code) },
		requestFull,
		func(req *request.AnalysisRequest) []*Section {
			return []*Section{SectionOf("section.batches", "empty.batches",
				func(ctx context.Context) ([]batch.Batch, error) {
					return r.svc.Batches.ListByRequest(ctx, req.Key())
				}, batchRow)}
		})
}

func (r *Router) requestNew(p Params) View {
	specs := []FieldSpec{
		{Name: "nomeProjeto", Label: "field.nomeProjeto"},
		{Name: "tipoAnalise", Label: "field.tipoAnalise", Choices: request.AnalysisTypes},
		{Name: "prazoAcordado", Label: "field.prazoAcordado"},
		{Name: "descricaoProjeto", Label: "field.descricaoProjeto"},
		{Name: "informacoesAdicionais", Label: "field.informacoesAdicionais"},
		{Name: "modoEnvioResultado", Label: "field.modoEnvioResultado", Choices: request.DeliveryModes},
		{Name: "responsavelAbertura", Label: "field.responsavelAbertura"},
		{Name: "solicitante", Label: "field.solicitante"},
	}
	return NewForm(RouteRequestNew, "title.requestNew", r.cat, specs, withParent(p, "solicitante"), func(ctx context.Context, v map[string]string) (string, error) {
		_, err := r.svc.Requests.Create(ctx, request.CreateRequest{
			ProjectName:    v["nomeProjeto"],
			AnalysisType:   v["tipoAnalise"],
			Deadline:       v["prazoAcordado"],
			Description:    v["descricaoProjeto"],
			AdditionalInfo: v["informacoesAdicionais"],
			DeliveryMode:   v["modoEnvioResultado"],
			OpenedBy:       v["responsavelAbertura"],
			RequesterCNPJ:  v["solicitante"],
		})
		return "", err
	}).WithChoices("solicitante", r.requesterCNPJs)
}

func (r *Router) items(Params) View {
	return NewList(RouteItems, "title.items", "empty.items", r.cat, r.svc.Items.List, itemRow)
}

func (r *Router) item(p Params) View {
	id := p.Get("id")
	return NewDetail(RouteItem, "title.item", r.cat,
		func(ctx context.Context) (*item.Item, error) { return r.svc.Items.Get(ctx, id) },
		itemFull,
		func(*item.Item) []*Section {
			return []*Section{SectionOf("section.assays", "empty.assays",
				func(ctx context.Context) ([]assay.Assay, error) { return r.svc.Assays.ListByItem(ctx, id) },
				assayRow)}
		})
}

func (r *Router) itemNew(p Params) View {
	specs := []FieldSpec{
		{Name: "quantidade", Label: "field.quantidade"},
		{Name: "unidade", Label: "field.unidade"},
		{Name: "tipoMaterial", Label: "field.tipoMaterial"},
		{Name: "lote", Label: "field.lote"},
		{Name: "notaFiscal", Label: "field.notaFiscal"},
		{Name: "condicao", Label: "field.condicao"},
		{Name: "observacao", Label: "field.observacao"},
		{Name: "solicitacaoDeAnaliseId", Label: "field.solicitacaoDeAnaliseId"},
	}
	return NewForm(RouteItemNew, "title.itemNew", r.cat, specs, withParent(p, "solicitacaoDeAnaliseId"), func(ctx context.Context, v map[string]string) (string, error) {
		_, err := r.svc.Items.Create(ctx, item.CreateRequest{
			Quantity:     v["quantidade"],
			Unit:         v["unidade"],
			MaterialType: v["tipoMaterial"],
			Lot:          v["lote"],
			Invoice:      v["notaFiscal"],
			Condition:    v["condicao"],
			Note:         v["observacao"],
			RequestID:    v["solicitacaoDeAnaliseId"],
		})
		return "", err
	}).WithChoices("solicitacaoDeAnaliseId", func(ctx context.Context) ([]string, error) {
		list, err := r.svc.Requests.List(ctx)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(list))
		for _, req := range list {
			if !req.ID.IsZero() {
				ids = append(ids, req.ID.String())
			}
		}
		return ids, nil
	})
}

func (r *Router) itemQR(p Params) View {
	return NewItemQR(r.cat, p.Get("id"), p.Get("out"), r.svc.Items.Get)
}

func (r *Router) assays(Params) View {
	return NewPagedList(RouteAssays, "title.assays", "empty.assays", r.cat,
		func(ctx context.Context) (Page[assay.Assay], error) {
			l, err := r.svc.Assays.ListAcrossItems(ctx)
			if err != nil {
				return Page[assay.Assay]{}, err
			}
			return Page[assay.Assay]{Items: l.Assays, Failed: len(l.FailedItems)}, nil
		}, assayRow)
}

func (r *Router) assayNew(p Params) View {
	specs := []FieldSpec{
		{Name: "nomeEnsaio", Label: "field.nomeEnsaio", Choices: assay.StandardNames},
		{Name: "especificacao", Label: "field.especificacao"},
		{Name: "itemDeAnaliseId", Label: "field.itemDeAnaliseId"},
	}
	return NewForm(RouteAssayNew, "title.assayNew", r.cat, specs, withParent(p, "itemDeAnaliseId"), func(ctx context.Context, v map[string]string) (string, error) {
		_, err := r.svc.Assays.Create(ctx, assay.CreateRequest{
			Name:          v["nomeEnsaio"],
			Specification: v["especificacao"],
			ItemID:        v["itemDeAnaliseId"],
		})
		return "", err
	}).WithChoices("itemDeAnaliseId", func(ctx context.Context) ([]string, error) {
		ids, err := r.svc.Items.ItemIDs(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]string, len(ids))
		for i, id := range ids {
			out[i] = id.String()
		}
		return out, nil
	})
}

func (r *Router) batch(p Params) View {
	id := p.Get("id")
	return NewDetail(RouteBatch, "title.batch", r.cat,
		func(ctx context.Context) (*batch.Batch, error) { return r.svc.Batches.Get(ctx, id) },
		batchFull,
		func(*batch.Batch) []*Section {
			return []*Section{SectionOf("section.analyses", "empty.analyses",
				func(ctx context.Context) ([]analysis.Analysis, error) { return r.svc.Analyses.ListByBatch(ctx, id) },
				analysisRow)}
		})
}

func (r *Router) batchNew(p Params) View {
	specs := []FieldSpec{
		{Name: "amostra", Label: "field.amostra"},
		{Name: "notaFiscal", Label: "field.notaFiscal"},
		{Name: "dataEntrada", Label: "field.dataEntrada", Default: r.now().Format(time.DateOnly)},
		{Name: "dataValidade", Label: "field.dataValidade"},
		{Name: "descricao", Label: "field.descricao"},
		{Name: "quantidade", Label: "field.quantidade"},
		{Name: "solicitacaoAnalise", Label: "field.solicitacaoAnalise"},
	}
	return NewForm(RouteBatchNew, "title.batchNew", r.cat, specs, withParent(p, "solicitacaoAnalise"), func(ctx context.Context, v map[string]string) (string, error) {
		_, err := r.svc.Batches.Create(ctx, batch.CreateRequest{
			Sample:      v["amostra"],
			Invoice:     v["notaFiscal"],
			EntryDate:   v["dataEntrada"],
			ExpiryDate:  v["dataValidade"],
			Description: v["descricao"],
			Quantity:    v["quantidade"],
			RequestCode: v["solicitacaoAnalise"],
		})
		return "", err
	}).WithChoices("solicitacaoAnalise", func(ctx context.Context) ([]string, error) {
		list, err := r.svc.Requests.List(ctx)
		if err != nil {
			return nil, err
		}
		codes := make([]string, 0, len(list))
		for _, req := range list {
			if req.Code != "" {
				codes = append(codes, req.Code)
			}
		}
		return codes, nil
	})
}

func (r *Router) analysisNew(p Params) View {
	specs := []FieldSpec{
		{Name: "lote", Label: "field.lote"},
		{Name: "ensaio", Label: "field.ensaio"},
		{Name: "especificacao", Label: "field.especificacao"},
		{Name: "resultado", Label: "field.resultado"},
		{Name: "unidade", Label: "field.unidade"},
		{Name: "observacao", Label: "field.observacao"},
	}
	return NewForm(RouteAnalysisNew, "title.analysisNew", r.cat, specs, withParent(p, "lote"), func(ctx context.Context, v map[string]string) (string, error) {
		_, err := r.svc.Analyses.Create(ctx, analysis.CreateRequest{
			BatchID:       v["lote"],
			Assay:         v["ensaio"],
			Specification: v["especificacao"],
			Result:        v["resultado"],
			Unit:          v["unidade"],
			Note:          v["observacao"],
		})
		return "", err
	}).WithChoices("ensaio", func(ctx context.Context) ([]string, error) {
		procs, err := r.svc.Assays.ListProcedures(ctx)
		if err != nil {
			return nil, err
		}
		names := make([]string, len(procs))
		for i, pr := range procs {
			names[i] = pr.Name
		}
		return names, nil
	})
}

func (r *Router) stocks(Params) View {
	return NewList(RouteStocks, "title.stocks", "empty.stocks", r.cat, r.svc.Stocks.List, stockRow)
}

func (r *Router) stock(p Params) View {
	name := p.Get("id")
	return NewDetail(RouteStock, "title.stock", r.cat,
		func(ctx context.Context) (*stock.Stock, error) { return r.svc.Stocks.Get(ctx, name) },
		stockFull,
		func(*stock.Stock) []*Section {
			return []*Section{SectionOf("section.reagents", "empty.reagents",
				func(ctx context.Context) ([]reagent.Reagent, error) { return r.svc.Reagents.ListByStock(ctx, name) },
				reagentRow)}
		})
}

func (r *Router) stockNew(p Params) View {
	specs := []FieldSpec{
		{Name: "nome", Label: "field.nome"},
		{Name: "cnpj", Label: "field.cnpj"},
	}
	return NewForm(RouteStockNew, "title.stockNew", r.cat, specs, p, func(ctx context.Context, v map[string]string) (string, error) {
		_, err := r.svc.Stocks.Create(ctx, stock.CreateRequest{Name: v["nome"], RequesterCNPJ: v["cnpj"]})
		return "", err
	}).WithChoices("cnpj", r.requesterCNPJs)
}

func (r *Router) reagentNew(p Params) View {
	specs := []FieldSpec{
		{Name: "estoque", Label: "field.estoque"},
		{Name: "nome", Label: "field.nome"},
		{Name: "dataValidade", Label: "field.dataValidade"},
		{Name: "fornecedor", Label: "field.fornecedor"},
		{Name: "descricao", Label: "field.descricao"},
		{Name: "unidade", Label: "field.unidade"},
		{Name: "quantidade", Label: "field.quantidade"},
	}
	return NewForm(RouteReagentNew, "title.reagentNew", r.cat, specs, withParent(p, "estoque"), func(ctx context.Context, v map[string]string) (string, error) {
		_, err := r.svc.Reagents.Create(ctx, reagent.CreateRequest{
			StockName:   v["estoque"],
			Name:        v["nome"],
			ExpiryDate:  v["dataValidade"],
			Supplier:    v["fornecedor"],
			Description: v["descricao"],
			Unit:        v["unidade"],
			Quantity:    v["quantidade"],
		})
		return "", err
	}).WithChoices("estoque", func(ctx context.Context) ([]string, error) {
		list, err := r.svc.Stocks.List(ctx)
		if err != nil {
			return nil, err
		}
		names := make([]string, len(list))
		for i, s := range list {
			names[i] = s.Name
		}
		return names, nil
	})
}

func (r *Router) scan(p Params) View {
	return NewScan(r.cat, p.Get("image"))
}

func (r *Router) requesterCNPJs(ctx context.Context) ([]string, error) {
	list, err := r.svc.Requesters.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(list))
	for i, rq := range list {
		out[i] = rq.CNPJ
	}
	return out, nil
}

// withParent copies p and maps the "id" param onto field, so a child form
// opened from its parent's detail starts with the parent filled in.
func withParent(p Params, field string) Params {
	out := make(Params, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	if id := p.Get("id"); id != "" && out.Get(field) == "" {
		out[field] = id
	}
	return out
}
