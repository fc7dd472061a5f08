package backend_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/etnz/casefolio"
	"github.com/etnz/casefolio/backend"
	"github.com/etnz/casefolio/backend/backendtest"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func price(v float64) *casefolio.Price {
	p := casefolio.P(v)
	return &p
}

func newClient(t *testing.T, srv *backendtest.Server) *backend.Client {
	t.Helper()
	return backend.New(srv.URL, 5*time.Second, zaptest.NewLogger(t))
}

func gammaOnly() []casefolio.Investment {
	return []casefolio.Investment{{ItemName: "Gamma Case", Quantity: 10, PurchasePrice: casefolio.P(1.5), LowestPrice: price(2.25)}}
}

func TestClient_AddCase(t *testing.T) {
	srv := backendtest.NewServer(gammaOnly(), map[string]casefolio.Price{"Fever Case": casefolio.P(0.95)})
	defer srv.Close()
	c := newClient(t, srv)

	list, err := c.AddCase(context.Background(), "Fever Case", 3, casefolio.P(0.8))
	if err != nil {
		t.Fatalf("AddCase() unexpected error: %v", err)
	}
	if got, want := casefolio.Names(list), []string{"Gamma Case", "Fever Case"}; !cmp.Equal(got, want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	fever := list[1]
	if fever.Quantity != 3 || !fever.PurchasePrice.Equal(casefolio.P(0.8)) {
		t.Errorf("fever = %d @ %v, want 3 @ 0.80", fever.Quantity, fever.PurchasePrice)
	}
	if !fever.HasPrice() || !fever.CurrentPrice().Equal(casefolio.P(0.95)) {
		t.Errorf("fever price = %v, want 0.95", fever.LowestPrice)
	}
	if len(fever.Transactions) != 1 || fever.Transactions[0].Type != casefolio.Buy {
		t.Errorf("fever transactions = %v, want the initial buy", fever.Transactions)
	}
}

func TestClient_Transactions(t *testing.T) {
	srv := backendtest.NewServer(gammaOnly(), nil)
	defer srv.Close()
	c := newClient(t, srv)
	ctx := context.Background()

	// 10 @ 1.50 + 10 @ 2.50 blends to 20 @ 2.00
	list, err := c.AddTransaction(ctx, 0, casefolio.Buy, 10, casefolio.P(2.5))
	if err != nil {
		t.Fatalf("AddTransaction(buy) unexpected error: %v", err)
	}
	if got := list[0]; got.Quantity != 20 || !got.PurchasePrice.Equal(casefolio.P(2)) {
		t.Errorf("after buy = %d @ %v, want 20 @ 2.00", got.Quantity, got.PurchasePrice)
	}

	list, err = c.AddTransaction(ctx, 0, casefolio.Sell, 5, casefolio.P(3))
	if err != nil {
		t.Fatalf("AddTransaction(sell) unexpected error: %v", err)
	}
	if got := list[0]; got.Quantity != 15 || !got.TotalSoldValue.Equal(casefolio.P(15)) {
		t.Errorf("after sell = %d sold %v, want 15 sold 15.00", got.Quantity, got.TotalSoldValue)
	}

	list, err = c.UpdateInvestment(ctx, 0, casefolio.FieldPurchasePrice, casefolio.P(1.25))
	if err != nil {
		t.Fatalf("UpdateInvestment() unexpected error: %v", err)
	}
	if !list[0].PurchasePrice.Equal(casefolio.P(1.25)) {
		t.Errorf("purchase price = %v, want 1.25", list[0].PurchasePrice)
	}
}

func TestClient_ReorderAndRemove(t *testing.T) {
	srv := backendtest.NewServer([]casefolio.Investment{
		{ItemName: "A", Quantity: 1}, {ItemName: "B", Quantity: 1}, {ItemName: "C", Quantity: 1},
	}, nil)
	defer srv.Close()
	c := newClient(t, srv)
	ctx := context.Background()

	reordered, _ := casefolio.Move(srv.Investments(), 0, 2)
	list, err := c.Reorder(ctx, reordered)
	if err != nil {
		t.Fatalf("Reorder() unexpected error: %v", err)
	}
	if got, want := casefolio.Names(list), []string{"B", "C", "A"}; !cmp.Equal(got, want) {
		t.Errorf("Reorder() = %v, want %v", got, want)
	}

	list, err = c.RemoveCase(ctx, 1)
	if err != nil {
		t.Fatalf("RemoveCase() unexpected error: %v", err)
	}
	if got, want := casefolio.Names(list), []string{"B", "A"}; !cmp.Equal(got, want) {
		t.Errorf("RemoveCase() = %v, want %v", got, want)
	}

	// the backend refuses a list of a different length.
	var berr *backend.Error
	if _, err := c.Reorder(ctx, list[:1]); !errors.As(err, &berr) {
		t.Errorf("Reorder(short) = %v, want a backend error", err)
	} else if berr.Message != "Invalid investments data" || berr.Endpoint != backend.EndpointReorder {
		t.Errorf("backend error = %+v", berr)
	}
}

func TestClient_Prices(t *testing.T) {
	srv := backendtest.NewServer(gammaOnly(), map[string]casefolio.Price{"Gamma Case": casefolio.P(2.5)})
	defer srv.Close()
	c := newClient(t, srv)
	ctx := context.Background()

	prices, err := c.PriceHistory(ctx)
	if err != nil {
		t.Fatalf("PriceHistory() unexpected error: %v", err)
	}
	if len(prices) != len(casefolio.DefaultCatalog().CaseNames) {
		t.Errorf("PriceHistory() has %d prices, want one per catalog case", len(prices))
	}
	if !prices["Gamma Case"].Equal(casefolio.P(2.5)) || !prices["Fever Case"].IsZero() {
		t.Errorf("PriceHistory() = %v", prices)
	}

	r, err := c.RefreshPrices(ctx)
	if err != nil {
		t.Fatalf("RefreshPrices() unexpected error: %v", err)
	}
	if !r.Investments[0].CurrentPrice().Equal(casefolio.P(2.5)) {
		t.Errorf("refreshed price = %v, want 2.50", r.Investments[0].LowestPrice)
	}
	// unknown prices come as null and decode as 0.
	if p, ok := r.AllPrices["Fever Case"]; !ok || !p.IsZero() {
		t.Errorf("AllPrices[Fever Case] = %v, %v", p, ok)
	}
}

func TestClient_SetAPIKey(t *testing.T) {
	srv := backendtest.NewServer(nil, nil)
	defer srv.Close()
	c := newClient(t, srv)

	if err := c.SetAPIKey(context.Background(), srv.APIKey); err != nil {
		t.Errorf("SetAPIKey(valid) unexpected error: %v", err)
	}
	var berr *backend.Error
	if err := c.SetAPIKey(context.Background(), "nope"); !errors.As(err, &berr) {
		t.Errorf("SetAPIKey(invalid) = %v, want a backend error", err)
	}
}

func TestClient_Malformed(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"not json", "<html>oops</html>"},
		{"no status", `{"investments": []}`},
		{"unknown status", `{"status": "maybe", "investments": []}`},
		{"no investments", `{"status": "success"}`},
		{"null investments", `{"status": "success", "investments": null}`},
		{"bad investment", `{"status": "success", "investments": [{"quantity": "many"}]}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := backendtest.NewServer(nil, nil)
			defer srv.Close()
			srv.Raw(backend.EndpointRemoveCase, tc.body)

			_, err := newClient(t, srv).RemoveCase(context.Background(), 0)
			if !errors.Is(err, backend.ErrMalformed) {
				t.Errorf("RemoveCase() = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestClient_UnreadableDate(t *testing.T) {
	srv := backendtest.NewServer(nil, nil)
	defer srv.Close()
	srv.Raw(backend.EndpointRemoveCase, `{"status": "success", "investments": [{"item_name": "Gamma Case", "quantity": 2, "purchase_price": 1,
		"transactions": [{"date": "last tuesday", "type": "buy", "quantity": 2, "price_per_case": 1, "total": 2}]}]}`)
	core, logs := observer.New(zap.WarnLevel)
	c := backend.New(srv.URL, 5*time.Second, zap.New(core))

	list, err := c.RemoveCase(context.Background(), 0)
	if err != nil {
		t.Fatalf("RemoveCase() unexpected error: %v", err)
	}
	if len(list) != 1 || len(list[0].Transactions) != 1 || !list[0].Transactions[0].Date.IsZero() {
		t.Errorf("RemoveCase() = %+v, want one transaction with a zero date", list)
	}
	if n := logs.FilterMessage("transaction without a readable date").Len(); n != 1 {
		t.Errorf("got %d warnings, want 1", n)
	}
}

func TestClient_ErrorStatus(t *testing.T) {
	srv := backendtest.NewServer(nil, nil)
	defer srv.Close()
	srv.Fail(backend.EndpointRefreshPrices, "Failed to refresh prices")

	_, err := newClient(t, srv).RefreshPrices(context.Background())
	var berr *backend.Error
	if !errors.As(err, &berr) {
		t.Fatalf("RefreshPrices() = %v, want a backend error", err)
	}
	if berr.Message != "Failed to refresh prices" {
		t.Errorf("message = %q", berr.Message)
	}
	if errors.Is(err, backend.ErrMalformed) {
		t.Errorf("a reported error is not a malformed response")
	}
}

func TestClient_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := backend.New(srv.URL, time.Second, zaptest.NewLogger(t))
	if _, err := c.RemoveCase(context.Background(), 0); !errors.Is(err, backend.ErrMalformed) || !strings.Contains(err.Error(), "500") {
		t.Errorf("RemoveCase() = %v, want an http 500 malformed error", err)
	}
}

func TestClient_RequestID(t *testing.T) {
	srv := backendtest.NewServer(gammaOnly(), nil)
	defer srv.Close()
	c := newClient(t, srv)

	c.PriceHistory(context.Background())
	c.PriceHistory(context.Background())

	ids := srv.RequestIDs()
	if len(ids) != 2 {
		t.Fatalf("got %d request ids, want 2", len(ids))
	}
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("request id %q is not a uuid: %v", id, err)
		}
	}
	if ids[0] == ids[1] {
		t.Errorf("request ids should be unique, got %q twice", ids[0])
	}
}

func TestClient_Boot(t *testing.T) {
	srv := backendtest.NewServer(gammaOnly(), nil)
	defer srv.Close()

	s, err := newClient(t, srv).Boot(context.Background())
	if err != nil {
		t.Fatalf("Boot() unexpected error: %v", err)
	}
	if got := casefolio.Names(s.Investments); !cmp.Equal(got, []string{"Gamma Case"}) {
		t.Errorf("Boot() investments = %v", got)
	}
	if len(s.CaseNames) != len(casefolio.DefaultCatalog().CaseNames) {
		t.Errorf("Boot() catalog has %d cases", len(s.CaseNames))
	}
	if srv.TotalCalls() != 0 {
		t.Errorf("Boot() should only load the page")
	}
}

func TestExtractBoot(t *testing.T) {
	const page = `<html><body><script id="initial-data" type="application/json">
{"investments": [{"item_name": "Dreams &amp; Nightmares Case", "quantity": 1, "purchase_price": 1}],
 "case_names": ["Dreams & Nightmares Case"], "release_years": {"Dreams & Nightmares Case": 2022}, "release_dates": {}}
</script></body></html>`
	s, err := backend.ExtractBoot(strings.NewReader(page))
	if err != nil {
		t.Fatalf("ExtractBoot() unexpected error: %v", err)
	}
	// script content is raw text, entities are not decoded.
	if got := s.Investments[0].ItemName; got != "Dreams &amp; Nightmares Case" {
		t.Errorf("item name = %q", got)
	}
	if y, ok := s.ReleaseYear("Dreams & Nightmares Case"); !ok || y != 2022 {
		t.Errorf("ReleaseYear() = %d, %v", y, ok)
	}

	if _, err := backend.ExtractBoot(strings.NewReader("<html><body></body></html>")); !errors.Is(err, backend.ErrNoBootPayload) {
		t.Errorf("ExtractBoot(no payload) = %v, want ErrNoBootPayload", err)
	}
	if _, err := backend.ExtractBoot(strings.NewReader(`<script id="initial-data"></script>`)); !errors.Is(err, casefolio.ErrEmptyPayload) {
		t.Errorf("ExtractBoot(empty payload) = %v, want ErrEmptyPayload", err)
	}
}
