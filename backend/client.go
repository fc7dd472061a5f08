// Package backend is the client of the case tracker persistence service.
//
// The service owns the investment list and the prices. Every mutation answers
// with the whole authoritative list:
//
//	{"status": "success", "investments": [...]}
//	{"status": "error", "message": "..."}
//
// Investments are addressed by their current index in the list.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/casefolio"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Endpoints of the persistence service.
const (
	EndpointPriceHistory     = "/price_history"
	EndpointSetAPIKey        = "/set_api_key"
	EndpointAddCase          = "/add_case"
	EndpointAddTransaction   = "/add_transaction"
	EndpointUpdateInvestment = "/update_investment"
	EndpointRefreshPrices    = "/refresh_prices"
	EndpointReorder          = "/reorder_investments"
	EndpointRemoveCase       = "/remove_case"
)

// RequestIDHeader carries a unique id per request, echoed in the logs.
const RequestIDHeader = "X-Request-ID"

// maxBody caps the size of a response read in memory.
const maxBody = 8 << 20

// ErrMalformed is returned when a response cannot be understood: not json, no
// status, or no investment list where one is required.
var ErrMalformed = errors.New("malformed backend response")

// Error is a failure reported by the backend ({"status": "error"}).
type Error struct {
	Endpoint string
	Message  string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s failed", e.Endpoint)
	}
	return fmt.Sprintf("%s failed: %s", e.Endpoint, e.Message)
}

// Client calls the persistence service.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Logger  *zap.Logger
}

// New returns a client for the service at baseURL.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
		Logger:  logger,
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return &http.Client{Timeout: 10 * time.Second}
}

func (c *Client) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}

// Refresh is the answer to a price refresh.
type Refresh struct {
	Investments []casefolio.Investment
	// AllPrices has the latest price of every catalog case, nil when the
	// backend did not send them.
	AllPrices map[string]casefolio.Price
}

// PriceHistory returns the latest known price of every catalog case.
func (c *Client) PriceHistory(ctx context.Context) (map[string]casefolio.Price, error) {
	env, err := c.call(ctx, http.MethodGet, EndpointPriceHistory, nil, "")
	if err != nil {
		return nil, err
	}
	if env.Prices == nil {
		return nil, fmt.Errorf("%s: %w: no prices", EndpointPriceHistory, ErrMalformed)
	}
	return env.Prices, nil
}

// SetAPIKey sends the price source api key. The backend validates it.
func (c *Client) SetAPIKey(ctx context.Context, key string) error {
	_, err := c.postForm(ctx, EndpointSetAPIKey, url.Values{"api_key": {key}})
	return err
}

// AddCase adds a new holding.
func (c *Client) AddCase(ctx context.Context, name string, quantity int, price casefolio.Price) ([]casefolio.Investment, error) {
	env, err := c.postForm(ctx, EndpointAddCase, url.Values{
		"case":  {name},
		"qty":   {strconv.Itoa(quantity)},
		"price": {price.Decimal().String()},
	})
	return investments(EndpointAddCase, env, err)
}

// RemoveCase removes the investment at index.
func (c *Client) RemoveCase(ctx context.Context, index int) ([]casefolio.Investment, error) {
	env, err := c.postForm(ctx, EndpointRemoveCase, url.Values{"index": {strconv.Itoa(index)}})
	return investments(EndpointRemoveCase, env, err)
}

// AddTransaction records a buy or a sell on the investment at index.
func (c *Client) AddTransaction(ctx context.Context, index int, typ casefolio.TxType, quantity int, price casefolio.Price) ([]casefolio.Investment, error) {
	env, err := c.postJSON(ctx, EndpointAddTransaction, struct {
		Index    int              `json:"index"`
		Type     casefolio.TxType `json:"type"`
		Quantity int              `json:"quantity"`
		Price    casefolio.Price  `json:"price"`
	}{index, typ, quantity, price})
	return investments(EndpointAddTransaction, env, err)
}

// UpdateInvestment sets a field of the investment at index.
func (c *Client) UpdateInvestment(ctx context.Context, index int, field casefolio.Field, value casefolio.Price) ([]casefolio.Investment, error) {
	env, err := c.postJSON(ctx, EndpointUpdateInvestment, struct {
		Index int             `json:"index"`
		Field casefolio.Field `json:"field"`
		Value casefolio.Price `json:"value"`
	}{index, field, value})
	return investments(EndpointUpdateInvestment, env, err)
}

// Reorder replaces the list by the same investments in a new order.
func (c *Client) Reorder(ctx context.Context, list []casefolio.Investment) ([]casefolio.Investment, error) {
	env, err := c.postJSON(ctx, EndpointReorder, struct {
		Investments []casefolio.Investment `json:"investments"`
	}{list})
	return investments(EndpointReorder, env, err)
}

// RefreshPrices asks the backend to fetch new prices.
func (c *Client) RefreshPrices(ctx context.Context) (Refresh, error) {
	env, err := c.call(ctx, http.MethodPost, EndpointRefreshPrices, nil, "")
	list, err := investments(EndpointRefreshPrices, env, err)
	if err != nil {
		return Refresh{}, err
	}
	return Refresh{Investments: list, AllPrices: env.AllPrices}, nil
}

// envelope is the common shape of every response.
type envelope struct {
	Status      string                     `json:"status"`
	Message     string                     `json:"message"`
	Investments []casefolio.Investment     `json:"investments"`
	Prices      map[string]casefolio.Price `json:"prices"`
	AllPrices   map[string]casefolio.Price `json:"all_prices"`
}

func investments(endpoint string, env *envelope, err error) ([]casefolio.Investment, error) {
	if err != nil {
		return nil, err
	}
	if env.Investments == nil {
		return nil, fmt.Errorf("%s: %w: no investments", endpoint, ErrMalformed)
	}
	return env.Investments, nil
}

func (c *Client) postForm(ctx context.Context, endpoint string, values url.Values) (*envelope, error) {
	return c.call(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()), "application/x-www-form-urlencoded")
}

func (c *Client) postJSON(ctx context.Context, endpoint string, payload any) (*envelope, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: cannot encode request: %w", endpoint, err)
	}
	return c.call(ctx, http.MethodPost, endpoint, bytes.NewReader(b), "application/json")
}

// call performs the request and decodes the envelope. A backend "error" status
// is returned as an *Error.
func (c *Client) call(ctx context.Context, method, endpoint string, body io.Reader, contentType string) (*envelope, error) {
	id := uuid.NewString()
	log := c.logger().With(zap.String("request_id", id), zap.String("endpoint", endpoint))

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.BaseURL, "/")+endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(RequestIDHeader, id)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		log.Error("request failed", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		log.Error("cannot read response", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	log.Debug("response", zap.Int("status", resp.StatusCode), zap.Duration("elapsed", time.Since(start)))

	env, err := decode(endpoint, b)
	if err != nil {
		// a non 2xx status without a readable envelope is reported as such.
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			var berr *Error
			if !errors.As(err, &berr) {
				err = fmt.Errorf("%s: http %d: %w", endpoint, resp.StatusCode, ErrMalformed)
			}
		}
		log.Warn("backend call failed", zap.Int("status", resp.StatusCode), zap.Error(err))
		return nil, err
	}
	for _, inv := range env.Investments {
		for _, tx := range inv.Transactions {
			if tx.Date.IsZero() {
				log.Warn("transaction without a readable date", zap.String("case", inv.ItemName))
			}
		}
	}
	return env, nil
}

// decode validates the envelope before decoding it into typed values.
func decode(endpoint string, b []byte) (*envelope, error) {
	var jobj any
	if err := json.Unmarshal(b, &jobj); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", endpoint, ErrMalformed, err)
	}
	status, err := jsonString("$.status", jobj)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", endpoint, ErrMalformed, err)
	}
	switch status {
	case "success":
	case "error":
		// the message is optional
		msg, _ := jsonString("$.message", jobj)
		return nil, &Error{Endpoint: endpoint, Message: msg}
	default:
		return nil, fmt.Errorf("%s: %w: unknown status %q", endpoint, ErrMalformed, status)
	}

	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", endpoint, ErrMalformed, err)
	}
	return &env, nil
}

// jsonString returns the string at path in a decoded json document.
func jsonString(path string, jobj any) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", err
	}
	// jsonpath may return a list of one answer.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	s, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("%s is not a string: %v", path, jval)
	}
	return s, nil
}
