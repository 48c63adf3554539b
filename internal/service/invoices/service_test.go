package invoices

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centli/alegra-relay/internal/config"
	"github.com/centli/alegra-relay/internal/domain/models"
	"github.com/centli/alegra-relay/pkg/clients/alegra"
)

// stubResolver resolves only the SKUs present in its map.
type stubResolver struct {
	items map[string]json.RawMessage
}

func (r *stubResolver) ResolveItem(_ context.Context, sku string) (*models.CatalogItem, error) {
	id, ok := r.items[sku]
	if !ok {
		return nil, nil
	}
	return &models.CatalogItem{ID: id, Reference: sku}, nil
}

func newTestService(t *testing.T, resolver ItemResolver, upstream http.HandlerFunc) (*Service, *int) {
	t.Helper()
	invoiceCalls := new(int)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/invoices" {
			*invoiceCalls++
		}
		upstream(w, r)
	}))
	t.Cleanup(srv.Close)

	client := alegra.NewClient(config.AlegraConfig{
		Email:   "demo@centli.mx",
		Token:   "token",
		BaseURL: srv.URL,
	})
	svc := NewService(client, resolver, nil)
	svc.now = func() time.Time { return time.Date(2026, 8, 28, 15, 4, 5, 0, time.UTC) }
	return svc, invoiceCalls
}

func TestCreate_PartialResolutionStillCreatesInvoice(t *testing.T) {
	var payload models.InvoicePayload
	resolver := &stubResolver{items: map[string]json.RawMessage{
		"GOOD-1": json.RawMessage("77"),
	}}

	svc, calls := newTestService(t, resolver, func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(body, &payload))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 501, "number": "FAC-501"}`))
	})

	invoice, err := svc.Create(context.Background(), models.CreateInvoiceRequest{
		ClientID: json.RawMessage("12"),
		Items: []models.InvoiceLineDraft{
			{SKU: "GOOD-1", Price: 99.5, Quantity: 2},
			{SKU: "GHOST-9", Price: 10, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, invoice)
	assert.Equal(t, "501", string(invoice.ID))
	assert.Equal(t, `"FAC-501"`, string(invoice.Number))
	assert.Equal(t, 1, *calls)

	require.Len(t, payload.Items, 1, "the unresolvable sku must be dropped")
	assert.Equal(t, "77", string(payload.Items[0].ID))
	assert.Equal(t, 99.5, payload.Items[0].Price)
	assert.Equal(t, 2.0, payload.Items[0].Quantity)
	assert.Equal(t, "12", string(payload.Client.ID))
	assert.Equal(t, "2026-08-28", payload.Date)
	assert.Equal(t, "Venta generada por agente de voz", payload.Observations)
}

func TestCreate_ZeroResolvedSKUsFailsWithoutUpstreamCall(t *testing.T) {
	svc, calls := newTestService(t, &stubResolver{}, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 1}`))
	})

	invoice, err := svc.Create(context.Background(), models.CreateInvoiceRequest{
		ClientID: json.RawMessage("12"),
		Items: []models.InvoiceLineDraft{
			{SKU: "GHOST-1", Price: 1, Quantity: 1},
			{SKU: "GHOST-2", Price: 2, Quantity: 1},
		},
	})
	assert.Nil(t, invoice)
	require.ErrorIs(t, err, ErrNoResolvableItems)
	assert.Zero(t, *calls, "no upstream invoice call may be made")
}

func TestCreate_CustomObservationsPassThrough(t *testing.T) {
	var payload models.InvoicePayload
	resolver := &stubResolver{items: map[string]json.RawMessage{"SKU-1": json.RawMessage("5")}}

	svc, _ := newTestService(t, resolver, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &payload)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 2, "number": 2}`))
	})

	_, err := svc.Create(context.Background(), models.CreateInvoiceRequest{
		ClientID:     json.RawMessage(`"c-9"`),
		Items:        []models.InvoiceLineDraft{{SKU: "SKU-1", Price: 10, Quantity: 1}},
		Observations: "Pedido telefónico",
	})
	require.NoError(t, err)
	assert.Equal(t, "Pedido telefónico", payload.Observations)
}

func TestCreate_UpstreamRejectionSurfaces(t *testing.T) {
	resolver := &stubResolver{items: map[string]json.RawMessage{"SKU-1": json.RawMessage("5")}}

	svc, _ := newTestService(t, resolver, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"message": "plan limit reached"}`))
	})

	invoice, err := svc.Create(context.Background(), models.CreateInvoiceRequest{
		ClientID: json.RawMessage("12"),
		Items:    []models.InvoiceLineDraft{{SKU: "SKU-1", Price: 10, Quantity: 1}},
	})
	assert.Nil(t, invoice)

	var apiErr *alegra.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusPaymentRequired, apiErr.StatusCode)
}
