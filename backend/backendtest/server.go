// Package backendtest provides an in-memory persistence service for tests.
//
// It implements every endpoint of the backend package with the service
// semantics: buys blend the purchase price, sells recompute it from the buy
// transactions, edits ignore out of range values.
package backendtest

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"sync"

	"github.com/etnz/casefolio"
	"github.com/etnz/casefolio/backend"
	"github.com/etnz/casefolio/date"
	"github.com/shopspring/decimal"
)

// Server is a fake backend.
type Server struct {
	*httptest.Server

	// Today is the date of new transactions.
	Today date.Date
	// APIKey is the only key accepted by set_api_key.
	APIKey string

	mu          sync.Mutex
	investments []casefolio.Investment
	prices      map[string]casefolio.Price
	catalog     casefolio.Catalog
	calls       map[string]int
	requestIDs  []string
	before      map[string]func()
	raw         map[string]string
	fail        map[string]string
}

// NewServer starts a fake backend holding investments, with prices as the
// scraped prices. Call Close when done.
func NewServer(investments []casefolio.Investment, prices map[string]casefolio.Price) *Server {
	state := casefolio.NewState(investments, casefolio.Catalog{})
	s := &Server{
		Today:       date.New(2025, 1, 15),
		APIKey:      "valid-key",
		investments: state.Investments,
		prices:      prices,
		catalog:     state.Catalog,
		calls:       make(map[string]int),
		before:      make(map[string]func()),
		raw:         make(map[string]string),
		fail:        make(map[string]string),
	}
	if s.prices == nil {
		s.prices = make(map[string]casefolio.Price)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.index)
	s.handle(mux, http.MethodGet, backend.EndpointPriceHistory, s.priceHistory)
	s.handle(mux, http.MethodPost, backend.EndpointSetAPIKey, s.setAPIKey)
	s.handle(mux, http.MethodPost, backend.EndpointAddCase, s.addCase)
	s.handle(mux, http.MethodPost, backend.EndpointRemoveCase, s.removeCase)
	s.handle(mux, http.MethodPost, backend.EndpointUpdateInvestment, s.updateInvestment)
	s.handle(mux, http.MethodPost, backend.EndpointAddTransaction, s.addTransaction)
	s.handle(mux, http.MethodPost, backend.EndpointRefreshPrices, s.refreshPrices)
	s.handle(mux, http.MethodPost, backend.EndpointReorder, s.reorder)
	s.Server = httptest.NewServer(mux)
	return s
}

// Calls returns how many requests reached endpoint.
func (s *Server) Calls(endpoint string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[endpoint]
}

// TotalCalls returns how many requests reached any endpoint but the index page.
func (s *Server) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

// RequestIDs returns the request ids received so far.
func (s *Server) RequestIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requestIDs)
}

// Investments returns a copy of the stored list.
func (s *Server) Investments() []casefolio.Investment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return casefolio.NewState(s.investments, s.catalog).Investments
}

// SetPrice changes the price the next refresh will find.
func (s *Server) SetPrice(name string, p casefolio.Price) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices[name] = p
}

// Before registers f to run when a request reaches endpoint, before it is
// handled. f runs outside of the server lock and may block.
func (s *Server) Before(endpoint string, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.before[endpoint] = f
}

// Fail makes endpoint answer {"status": "error", "message": message}.
func (s *Server) Fail(endpoint, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[endpoint] = message
}

// Raw makes endpoint answer body as is.
func (s *Server) Raw(endpoint, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw[endpoint] = body
}

type handler func(r *http.Request) (map[string]any, error)

func (s *Server) handle(mux *http.ServeMux, method, endpoint string, h handler) {
	mux.HandleFunc(method+" "+endpoint, func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[endpoint]++
		s.requestIDs = append(s.requestIDs, r.Header.Get(backend.RequestIDHeader))
		before := s.before[endpoint]
		s.mu.Unlock()
		if before != nil {
			before()
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		if body, ok := s.raw[endpoint]; ok {
			fmt.Fprint(w, body)
			return
		}
		if msg, ok := s.fail[endpoint]; ok {
			json.NewEncoder(w).Encode(map[string]any{"status": "error", "message": msg})
			return
		}
		resp, err := h(r)
		if err != nil {
			json.NewEncoder(w).Encode(map[string]any{"status": "error", "message": err.Error()})
			return
		}
		resp["status"] = "success"
		json.NewEncoder(w).Encode(resp)
	})
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, _ := json.Marshal(casefolio.NewState(s.investments, s.catalog))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!DOCTYPE html><html><head><title>%s</title></head><body>\n", html.EscapeString("Case Collector"))
	fmt.Fprintf(w, "<div id=\"investments\"></div>\n<script id=%q type=\"application/json\">%s</script>\n", backend.BootElementID, payload)
	fmt.Fprint(w, "</body></html>\n")
}

func (s *Server) list() map[string]any {
	return map[string]any{"investments": s.investments}
}

func (s *Server) priceHistory(r *http.Request) (map[string]any, error) {
	prices := make(map[string]casefolio.Price, len(s.catalog.CaseNames))
	for _, name := range s.catalog.CaseNames {
		prices[name] = s.prices[name]
	}
	return map[string]any{"prices": prices}, nil
}

func (s *Server) setAPIKey(r *http.Request) (map[string]any, error) {
	if r.FormValue("api_key") != s.APIKey {
		return nil, fmt.Errorf("Invalid API key, please try again")
	}
	return map[string]any{"message": "API key validated and saved"}, nil
}

func (s *Server) price(name string) *casefolio.Price {
	p, ok := s.prices[name]
	if !ok {
		return nil
	}
	return &p
}

func (s *Server) addCase(r *http.Request) (map[string]any, error) {
	name := r.FormValue("case")
	qty, err := strconv.Atoi(r.FormValue("qty"))
	if err != nil {
		return nil, err
	}
	price, err := casefolio.ParsePrice(r.FormValue("price"))
	if err != nil {
		return nil, err
	}
	if _, err := casefolio.Index(s.investments, name); err != nil {
		s.investments = append(s.investments, casefolio.Investment{
			ItemName:      name,
			Quantity:      qty,
			PurchasePrice: price,
			PurchaseDate:  s.Today.String(),
			LowestPrice:   s.price(name),
			Transactions: []casefolio.Transaction{
				{Date: s.Today, Type: casefolio.Buy, Quantity: qty, PricePerCase: price, Total: price.Mul(qty)},
			},
		})
	}
	return s.list(), nil
}

func (s *Server) removeCase(r *http.Request) (map[string]any, error) {
	index, err := strconv.Atoi(r.FormValue("index"))
	if err != nil {
		return nil, err
	}
	if index >= 0 && index < len(s.investments) {
		s.investments = slices.Delete(s.investments, index, index+1)
	}
	return s.list(), nil
}

func (s *Server) updateInvestment(r *http.Request) (map[string]any, error) {
	var req struct {
		Index int             `json:"index"`
		Field casefolio.Field `json:"field"`
		Value casefolio.Price `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	if req.Index >= 0 && req.Index < len(s.investments) {
		inv := &s.investments[req.Index]
		switch req.Field {
		case casefolio.FieldQuantity:
			if q := int(req.Value.IntPart()); q > 0 {
				inv.Quantity = q
			}
		case casefolio.FieldPurchasePrice:
			if !req.Value.IsNegative() {
				inv.PurchasePrice = req.Value
			}
		}
	}
	return s.list(), nil
}

func (s *Server) addTransaction(r *http.Request) (map[string]any, error) {
	var req struct {
		Index    int              `json:"index"`
		Type     casefolio.TxType `json:"type"`
		Quantity int              `json:"quantity"`
		Price    casefolio.Price  `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	if req.Index < 0 || req.Index >= len(s.investments) {
		return s.list(), nil
	}
	inv := &s.investments[req.Index]
	inv.Transactions = append(inv.Transactions, casefolio.Transaction{
		Date: s.Today, Type: req.Type, Quantity: req.Quantity, PricePerCase: req.Price, Total: req.Price.Mul(req.Quantity),
	})
	switch req.Type {
	case casefolio.Buy:
		total := inv.PurchasePrice.Mul(inv.Quantity).Add(req.Price.Mul(req.Quantity))
		inv.Quantity += req.Quantity
		inv.PurchasePrice = casefolio.P(0)
		if inv.Quantity > 0 {
			inv.PurchasePrice = casefolio.P(total.Decimal().Div(decimal.NewFromInt(int64(inv.Quantity))))
		}
	case casefolio.Sell:
		inv.Quantity = max(0, inv.Quantity-req.Quantity)
		inv.TotalSoldValue = inv.TotalSoldValue.Add(req.Price.Mul(req.Quantity))
		var qty int
		var value casefolio.Price
		for _, t := range inv.Transactions {
			if t.Type == casefolio.Buy {
				qty += t.Quantity
				value = value.Add(t.Notional())
			}
		}
		inv.PurchasePrice = casefolio.P(0)
		if inv.Quantity > 0 && qty > 0 {
			inv.PurchasePrice = casefolio.P(value.Decimal().Div(decimal.NewFromInt(int64(qty))))
		}
	}
	return s.list(), nil
}

func (s *Server) refreshPrices(r *http.Request) (map[string]any, error) {
	for i := range s.investments {
		s.investments[i].LowestPrice = s.price(s.investments[i].ItemName)
		s.investments[i].LastUpdated = s.Today.String()
	}
	all := make(map[string]*casefolio.Price, len(s.catalog.CaseNames))
	for _, name := range s.catalog.CaseNames {
		all[name] = s.price(name)
	}
	return map[string]any{"investments": s.investments, "all_prices": all}, nil
}

func (s *Server) reorder(r *http.Request) (map[string]any, error) {
	var req struct {
		Investments []casefolio.Investment `json:"investments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	if len(req.Investments) != len(s.investments) {
		return nil, fmt.Errorf("Invalid investments data")
	}
	s.investments = req.Investments
	return s.list(), nil
}
