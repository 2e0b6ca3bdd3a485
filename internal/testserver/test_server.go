// Package testserver runs an in-memory LIMS API for tests.
package testserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
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
	"github.com/ganot/unolims/internal/jsonx"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// BasePath is where the fake API is mounted.
const BasePath = "/api/v1"

type failure struct {
	status  int
	message string
}

type user struct {
	account.Registration
	ID jsonx.ID
}

// TestServer is a fake LIMS backend. Its state is only touched through its methods.
type TestServer struct {
	Server *httptest.Server

	mu         sync.Mutex
	nextID     int
	requesters []requester.Requester
	requests   []request.AnalysisRequest
	items      []item.Item
	assays     []assay.Assay
	procedures []assay.Procedure
	batches    []batch.Batch
	analyses   []analysis.Analysis
	stocks     []stock.Stock
	reagents   []reagent.Reagent
	users      []user
	tokens     map[string]bool

	failures map[string]failure
	calls    map[string]int
	headers  http.Header
}

// New starts a fake backend that is closed when the test ends.
func New(t *testing.T) *TestServer {
	t.Helper()

	ts := &TestServer{
		tokens:   map[string]bool{},
		failures: map[string]failure{},
		calls:    map[string]int{},
	}
	ts.Server = httptest.NewServer(ts.routes())
	t.Cleanup(ts.Server.Close)
	return ts
}

// URL is the API base URL clients should be configured with.
func (ts *TestServer) URL() string {
	return ts.Server.URL + BasePath
}

func (ts *TestServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(ts.record)
	r.Route(BasePath, func(r chi.Router) {
		r.Get("/solicitante/listagem", ts.listRequesters)
		r.Get("/solicitante", ts.getRequester)
		r.Post("/solicitante", ts.createRequester)

		r.Get("/solicitacao-analise/listagem", ts.listRequests)
		r.Get("/solicitacao-analise", ts.getRequest)
		r.Get("/solicitacao-analise/solicitante", ts.listRequestsByRequester)
		r.Post("/solicitacao-analise", ts.createRequest)

		r.Get("/itens-de-analise", ts.listItems)
		r.Get("/itens-de-analise/{id}", ts.getItem)
		r.Post("/itens-de-analise", ts.createItem)

		r.Get("/ensaios", ts.listAssays)
		r.Get("/ensaios/item-de-analise/{id}", ts.listAssaysByItem)
		r.Post("/ensaios", ts.createAssay)
		r.Get("/ensaio", ts.listProcedures)

		r.Get("/lote/solicitacao-analise", ts.listBatchesByRequest)
		r.Get("/lote/{id}", ts.getBatch)
		r.Post("/lote", ts.createBatch)

		r.Get("/analise/{id}", ts.listAnalyses)
		r.Post("/analise", ts.createAnalysis)

		r.Get("/estoque", ts.listStocks)
		r.Post("/estoque", ts.createStock)
		r.Get("/reagente", ts.listReagents)
		r.Post("/reagente", ts.createReagent)

		r.Get("/dashboard", ts.getDashboard)

		r.Post("/auth/login", ts.login)
		r.Post("/auth/cadastrar", ts.register)
	})
	return r
}

// record counts calls, keeps the last request headers and applies injected failures.
func (ts *TestServer) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		ts.mu.Lock()
		ts.calls[key]++
		ts.headers = r.Header.Clone()
		f, failing := ts.failures[key]
		ts.mu.Unlock()

		if failing {
			writeError(w, f.status, f.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Fail makes every call to method and path (relative to BasePath) answer status.
func (ts *TestServer) Fail(method, path string, status int, message string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.failures[method+" "+BasePath+path] = failure{status: status, message: message}
}

// Calls returns how many times method and path (relative to BasePath) were hit.
func (ts *TestServer) Calls(method, path string) int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.calls[method+" "+BasePath+path]
}

// TotalCalls returns the number of requests served.
func (ts *TestServer) TotalCalls() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	n := 0
	for _, c := range ts.calls {
		n += c
	}
	return n
}

// LastHeader returns a header of the most recent request.
func (ts *TestServer) LastHeader(name string) string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.headers.Get(name)
}

// id must be called with mu held.
func (ts *TestServer) id() jsonx.ID {
	ts.nextID++
	return jsonx.ID(strconv.Itoa(ts.nextID))
}

// AddRequester seeds a requester.
func (ts *TestServer) AddRequester(r requester.Requester) requester.Requester {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	r.ID = ts.id()
	ts.requesters = append(ts.requesters, r)
	return r
}

// AddRequest seeds an analysis request for the requester with cnpj.
func (ts *TestServer) AddRequest(r request.AnalysisRequest, cnpj string) request.AnalysisRequest {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.addRequest(r, cnpj)
}

func (ts *TestServer) addRequest(r request.AnalysisRequest, cnpj string) request.AnalysisRequest {
	r.ID = ts.id()
	if r.Code == "" {
		r.Code = request.FormatCode(len(ts.requests)+1, time.Now().Year())
	}
	if owner := ts.findRequester(cnpj); owner != nil {
		r.Requester = owner
	} else {
		r.Requester = requester.Ref(cnpj)
	}
	ts.requests = append(ts.requests, r)
	return r
}

// AddItem seeds an analysis item.
func (ts *TestServer) AddItem(it item.Item) item.Item {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	it.ID = ts.id()
	if it.QuantityReceived == 0 {
		it.QuantityReceived = float64(it.Quantity)
	}
	if it.QuantityAvailable == 0 {
		it.QuantityAvailable = float64(it.Quantity)
	}
	ts.items = append(ts.items, it)
	return it
}

// AddAssay seeds an assay.
func (ts *TestServer) AddAssay(a assay.Assay) assay.Assay {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	a.ID = ts.id()
	if a.Status == "" {
		a.Status = assay.StatusPending
	}
	ts.assays = append(ts.assays, a)
	return a
}

// AddProcedure seeds an assay catalog entry.
func (ts *TestServer) AddProcedure(name string) assay.Procedure {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	p := assay.Procedure{ID: ts.id(), Name: name}
	ts.procedures = append(ts.procedures, p)
	return p
}

// AddBatch seeds a batch under the request with code.
func (ts *TestServer) AddBatch(b batch.Batch, code string) batch.Batch {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	b.ID = ts.id()
	b.Request = ts.findRequest(code)
	ts.batches = append(ts.batches, b)
	return b
}

// AddStock seeds a stock.
func (ts *TestServer) AddStock(name, cnpj string) stock.Stock {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	s := stock.Stock{ID: ts.id(), Name: name, Requester: ts.findRequester(cnpj)}
	ts.stocks = append(ts.stocks, s)
	return s
}

// AddUser seeds an account that can log in.
func (ts *TestServer) AddUser(reg account.Registration) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.users = append(ts.users, user{Registration: reg, ID: ts.id()})
}

// Requesters returns a copy of the stored requesters.
func (ts *TestServer) Requesters() []requester.Requester {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return append([]requester.Requester(nil), ts.requesters...)
}

// Analyses returns a copy of the stored analyses.
func (ts *TestServer) Analyses() []analysis.Analysis {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return append([]analysis.Analysis(nil), ts.analyses...)
}

func (ts *TestServer) findRequester(cnpj string) *requester.Requester {
	for i := range ts.requesters {
		if ts.requesters[i].CNPJ == cnpj {
			r := ts.requesters[i]
			return &r
		}
	}
	return nil
}

func (ts *TestServer) findRequest(code string) *request.AnalysisRequest {
	for i := range ts.requests {
		if ts.requests[i].Code == code {
			r := ts.requests[i]
			return &r
		}
	}
	return nil
}

func (ts *TestServer) listRequesters(w http.ResponseWriter, _ *http.Request) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(ts.requesters))
}

func (ts *TestServer) getRequester(w http.ResponseWriter, r *http.Request) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	// The real API answers an unknown CNPJ with 200 and a null body.
	writeJSON(w, http.StatusOK, ts.findRequester(r.URL.Query().Get("cnpj")))
}

func (ts *TestServer) createRequester(w http.ResponseWriter, r *http.Request) {
	var in requester.Requester
	if !readJSON(w, r, &in) {
		return
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.findRequester(in.CNPJ) != nil {
		writeError(w, http.StatusConflict, "Solicitante já cadastrado")
		return
	}
	in.ID = ts.id()
	ts.requesters = append(ts.requesters, in)
	writeJSON(w, http.StatusCreated, in)
}

func (ts *TestServer) listRequests(w http.ResponseWriter, _ *http.Request) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(ts.requests))
}

func (ts *TestServer) getRequest(w http.ResponseWriter, r *http.Request) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	found := ts.findRequest(r.URL.Query().Get("id_sa"))
	if found == nil {
		writeError(w, http.StatusNotFound, "Solicitação não encontrada")
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (ts *TestServer) listRequestsByRequester(w http.ResponseWriter, r *http.Request) {
	cnpj := r.URL.Query().Get("cnpj")
	ts.mu.Lock()
	defer ts.mu.Unlock()
	out := []request.AnalysisRequest{}
	for _, req := range ts.requests {
		if req.Requester != nil && req.Requester.CNPJ == cnpj {
			out = append(out, req)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (ts *TestServer) createRequest(w http.ResponseWriter, r *http.Request) {
	var in request.AnalysisRequest
	if !readJSON(w, r, &in) {
		return
	}
	if in.Requester == nil {
		writeError(w, http.StatusBadRequest, "Solicitante obrigatório")
		return
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.findRequester(in.Requester.CNPJ) == nil {
		writeError(w, http.StatusBadRequest, "Solicitante não encontrado")
		return
	}
	writeJSON(w, http.StatusCreated, ts.addRequest(in, in.Requester.CNPJ))
}

func (ts *TestServer) listItems(w http.ResponseWriter, _ *http.Request) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(ts.items))
}

func (ts *TestServer) getItem(w http.ResponseWriter, r *http.Request) {
	id := jsonx.ID(chi.URLParam(r, "id"))
	ts.mu.Lock()
	defer ts.mu.Unlock()
	for _, it := range ts.items {
		if it.ID != id {
			continue
		}
		for _, req := range ts.requests {
			if req.ID == it.RequestID {
				it.Request = &req
			}
		}
		it.Assays = ts.assaysOf(id)
		writeJSON(w, http.StatusOK, it)
		return
	}
	writeError(w, http.StatusNotFound, "Item não encontrado")
}

func (ts *TestServer) createItem(w http.ResponseWriter, r *http.Request) {
	var in item.Item
	if !readJSON(w, r, &in) {
		return
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()
	in.ID = ts.id()
	in.QuantityReceived = float64(in.Quantity)
	in.QuantityAvailable = float64(in.Quantity)
	ts.items = append(ts.items, in)
	writeJSON(w, http.StatusCreated, in)
}

func (ts *TestServer) assaysOf(itemID jsonx.ID) []assay.Assay {
	out := []assay.Assay{}
	for _, a := range ts.assays {
		if a.ItemID == itemID {
			out = append(out, a)
		}
	}
	return out
}

func (ts *TestServer) listAssays(w http.ResponseWriter, _ *http.Request) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(ts.assays))
}

func (ts *TestServer) listAssaysByItem(w http.ResponseWriter, r *http.Request) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	writeJSON(w, http.StatusOK, ts.assaysOf(jsonx.ID(chi.URLParam(r, "id"))))
}

func (ts *TestServer) createAssay(w http.ResponseWriter, r *http.Request) {
	var in assay.Assay
	if !readJSON(w, r, &in) {
		return
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()
	in.ID = ts.id()
	in.Status = assay.StatusPending
	ts.assays = append(ts.assays, in)
	writeJSON(w, http.StatusCreated, in)
}

func (ts *TestServer) listProcedures(w http.ResponseWriter, _ *http.Request) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(ts.procedures))
}

func (ts *TestServer) getBatch(w http.ResponseWriter, r *http.Request) {
	id := jsonx.ID(chi.URLParam(r, "id"))
	ts.mu.Lock()
	defer ts.mu.Unlock()
	for _, b := range ts.batches {
		if b.ID == id {
			writeJSON(w, http.StatusOK, b)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Lote não encontrado")
}

func (ts *TestServer) listBatchesByRequest(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("idSa")
	ts.mu.Lock()
	defer ts.mu.Unlock()
	out := []batch.Batch{}
	for _, b := range ts.batches {
		if b.Request != nil && b.Request.Code == code {
			out = append(out, b)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (ts *TestServer) createBatch(w http.ResponseWriter, r *http.Request) {
	var in batch.Batch
	if !readJSON(w, r, &in) {
		return
	}
	if in.Request == nil {
		writeError(w, http.StatusBadRequest, "Solicitação obrigatória")
		return
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()
	req := ts.findRequest(in.Request.Code)
	if req == nil {
		writeError(w, http.StatusBadRequest, "Solicitação não encontrada")
		return
	}
	in.ID = ts.id()
	in.Request = req
	ts.batches = append(ts.batches, in)
	writeJSON(w, http.StatusCreated, in)
}

func (ts *TestServer) listAnalyses(w http.ResponseWriter, r *http.Request) {
	id := jsonx.ID(chi.URLParam(r, "id"))
	ts.mu.Lock()
	defer ts.mu.Unlock()
	out := []analysis.Analysis{}
	for _, a := range ts.analyses {
		if a.Batch != nil && a.Batch.ID == id {
			out = append(out, a)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (ts *TestServer) createAnalysis(w http.ResponseWriter, r *http.Request) {
	var in analysis.Analysis
	if !readJSON(w, r, &in) {
		return
	}
	if in.Batch == nil || in.Assay == nil {
		writeError(w, http.StatusBadRequest, "Lote e ensaio obrigatórios")
		return
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()
	in.ID = ts.id()
	in.Name = in.Assay.Name
	ts.analyses = append(ts.analyses, in)
	writeJSON(w, http.StatusCreated, in)
}

func (ts *TestServer) listStocks(w http.ResponseWriter, _ *http.Request) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(ts.stocks))
}

func (ts *TestServer) createStock(w http.ResponseWriter, r *http.Request) {
	var in stock.Stock
	if !readJSON(w, r, &in) {
		return
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()
	for _, s := range ts.stocks {
		if s.Name == in.Name {
			writeError(w, http.StatusConflict, "Estoque já existe")
			return
		}
	}
	in.ID = ts.id()
	ts.stocks = append(ts.stocks, in)
	writeJSON(w, http.StatusCreated, in)
}

func (ts *TestServer) listReagents(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("estoque")
	ts.mu.Lock()
	defer ts.mu.Unlock()
	out := []reagent.Reagent{}
	for _, re := range ts.reagents {
		if re.Stock != nil && re.Stock.Name == name {
			out = append(out, re)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (ts *TestServer) createReagent(w http.ResponseWriter, r *http.Request) {
	var in reagent.Reagent
	if !readJSON(w, r, &in) {
		return
	}
	if in.Stock == nil {
		writeError(w, http.StatusBadRequest, "Estoque obrigatório")
		return
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()
	in.ID = ts.id()
	ts.reagents = append(ts.reagents, in)
	writeJSON(w, http.StatusCreated, in)
}

func (ts *TestServer) getDashboard(w http.ResponseWriter, _ *http.Request) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	var sum dashboard.Summary
	sum.Requests = len(ts.requests)
	sum.Requesters = len(ts.requesters)
	sum.Assays = len(ts.assays)
	for _, it := range ts.items {
		sum.Items.Sum.Available += it.QuantityAvailable
	}
	for _, a := range ts.assays {
		switch a.Status {
		case assay.StatusPending:
			sum.Pending++
		case assay.StatusInProgress:
			sum.InProgress++
		case assay.StatusCompleted:
			sum.Completed++
		}
	}
	writeJSON(w, http.StatusOK, sum)
}

func (ts *TestServer) login(w http.ResponseWriter, r *http.Request) {
	var in account.Credentials
	if !readJSON(w, r, &in) {
		return
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()
	for _, u := range ts.users {
		if u.Email != in.Email || u.Password != in.Password {
			continue
		}
		token := uuid.NewString()
		ts.tokens[token] = true
		expiry, _ := json.Marshal(time.Now().Add(time.Hour).UTC().Format(time.RFC3339))
		writeJSON(w, http.StatusOK, account.Session{
			Token:      token,
			User:       account.User{ID: u.ID, Name: u.Name, Role: u.Role, Email: u.Email},
			Expiration: expiry,
		})
		return
	}
	writeError(w, http.StatusUnauthorized, "Credenciais inválidas")
}

func (ts *TestServer) register(w http.ResponseWriter, r *http.Request) {
	var in account.Registration
	if !readJSON(w, r, &in) {
		return
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()
	for _, u := range ts.users {
		if u.Email == in.Email {
			writeError(w, http.StatusConflict, "Email já cadastrado")
			return
		}
	}
	ts.users = append(ts.users, user{Registration: in, ID: ts.id()})
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Usuário cadastrado"})
}

// ValidToken reports whether token was issued by a login.
func (ts *TestServer) ValidToken(token string) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.tokens[token]
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("corpo inválido: %v", err))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"erro": message})
}
