package alegra

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/centli/alegra-relay/internal/config"
	"github.com/centli/alegra-relay/internal/domain/models"
)

// Client exposes the Alegra API operations used by the relay.
type Client interface {
	FindItemsByReference(ctx context.Context, reference string, limit int) ([]models.CatalogItem, error)
	SearchItems(ctx context.Context, query string, limit int) ([]models.CatalogItem, error)
	SearchContacts(ctx context.Context, query string) ([]models.Contact, error)
	CreateInvoice(ctx context.Context, payload models.InvoicePayload) (*models.CreatedInvoice, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds an Alegra API client using the provided configuration.
// The Basic auth header is derived once from the account email and token.
func NewClient(cfg config.AlegraConfig) *APIClient {
	auth := base64.StdEncoding.EncodeToString([]byte(cfg.Email + ":" + cfg.Token))

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Authorization", "Basic "+auth).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{httpClient: restyClient}
}

// APIError is a non-2xx reply from Alegra; Body holds the upstream response
// verbatim so callers can surface it.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	if len(e.Body) > 0 {
		return fmt.Sprintf("alegra api error: status=%d body=%s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("alegra api error: status=%d", e.StatusCode)
}

// ErrorBody returns the upstream payload in a JSON-embeddable form: the raw
// body when it is valid JSON, else its text, else the error message.
func (e *APIError) ErrorBody() any {
	switch {
	case json.Valid(e.Body) && len(e.Body) > 0:
		return json.RawMessage(e.Body)
	case len(e.Body) > 0:
		return string(e.Body)
	default:
		return e.Error()
	}
}

// FindItemsByReference queries items by the exact-reference filter.
func (c *APIClient) FindItemsByReference(ctx context.Context, reference string, limit int) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	err := c.getList(ctx, "/items", map[string]string{
		"reference": reference,
		"limit":     strconv.Itoa(limit),
	}, &items)
	return items, err
}

// SearchItems queries items by full-text search.
func (c *APIClient) SearchItems(ctx context.Context, query string, limit int) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	err := c.getList(ctx, "/items", map[string]string{
		"q":     query,
		"limit": strconv.Itoa(limit),
	}, &items)
	return items, err
}

// SearchContacts queries client-type contacts matching the given term.
func (c *APIClient) SearchContacts(ctx context.Context, query string) ([]models.Contact, error) {
	var contacts []models.Contact
	err := c.getList(ctx, "/contacts", map[string]string{
		"query": query,
		"type":  "client",
	}, &contacts)
	return contacts, err
}

// CreateInvoice submits one invoice. The call succeeds or fails as a unit
// upstream; no retry is attempted here.
func (c *APIClient) CreateInvoice(ctx context.Context, payload models.InvoicePayload) (*models.CreatedInvoice, error) {
	invoice := new(models.CreatedInvoice)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(invoice).
		Post("/invoices")
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Body: resp.Body()}
	}

	return invoice, nil
}

func (c *APIClient) getList(ctx context.Context, path string, params map[string]string, out any) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(out).
		Get(path)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	if resp.IsError() {
		return &APIError{StatusCode: resp.StatusCode(), Body: resp.Body()}
	}
	return nil
}
