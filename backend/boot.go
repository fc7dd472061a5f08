package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/etnz/casefolio"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// BootElementID is the id of the script element embedding the initial state
// in the index page.
const BootElementID = "initial-data"

// ErrNoBootPayload is returned when a page has no boot payload element.
var ErrNoBootPayload = errors.New("no boot payload in page")

// Boot loads the index page and decodes the initial state it embeds.
func (c *Client) Boot(ctx context.Context) (*casefolio.State, error) {
	id := uuid.NewString()
	log := c.logger().With(zap.String("request_id", id), zap.String("endpoint", "/"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(c.BaseURL, "/")+"/", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(RequestIDHeader, id)
	resp, err := c.httpClient().Do(req)
	if err != nil {
		log.Error("boot request failed", zap.Error(err))
		return nil, fmt.Errorf("boot: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("boot: http %d", resp.StatusCode)
	}
	s, err := ExtractBoot(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		log.Warn("cannot extract boot payload", zap.Error(err))
		return nil, fmt.Errorf("boot: %w", err)
	}
	s.Synced = true
	log.Debug("booted", zap.Int("investments", len(s.Investments)), zap.Int("cases", len(s.CaseNames)))
	return s, nil
}

// ExtractBoot finds the boot payload element in an html page and decodes it.
// It also reads the pages written by the html export.
func ExtractBoot(r io.Reader) (*casefolio.State, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("cannot parse page: %w", err)
	}
	n := findByID(doc, BootElementID)
	if n == nil {
		return nil, ErrNoBootPayload
	}
	var payload strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			payload.WriteString(c.Data)
		}
	}
	return casefolio.DecodeBoot(strings.NewReader(payload.String()))
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}
