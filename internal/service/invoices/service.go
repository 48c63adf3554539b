package invoices

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/centli/alegra-relay/internal/domain/models"
	"github.com/centli/alegra-relay/pkg/clients/alegra"
)

// ErrNoResolvableItems indicates that none of the requested SKUs mapped to a
// catalog item, so no upstream invoice call was made.
var ErrNoResolvableItems = errors.New("no requested sku resolved to a catalog item")

const (
	dateFormat = "2006-01-02"

	// defaultObservations marks invoices created through the voice agent.
	defaultObservations = "Venta generada por agente de voz"
)

// ItemResolver defines the SKU resolution the invoice flow requires.
type ItemResolver interface {
	ResolveItem(ctx context.Context, sku string) (*models.CatalogItem, error)
}

// Service builds and submits upstream invoices.
type Service struct {
	client   alegra.Client
	resolver ItemResolver
	logger   *zap.Logger
	now      func() time.Time
}

// NewService constructs the invoice service.
func NewService(client alegra.Client, resolver ItemResolver, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:   client,
		resolver: resolver,
		logger:   logger,
		now:      time.Now,
	}
}

// Create resolves each requested SKU and submits a single invoice-creation
// call dated today. SKUs that resolve to nothing are dropped silently; the
// request fails only when zero lines remain. This is best-effort batching,
// not a transaction: the lone atomicity boundary is the upstream call
// itself.
func (s *Service) Create(ctx context.Context, req models.CreateInvoiceRequest) (*models.CreatedInvoice, error) {
	lines := make([]models.InvoiceLine, 0, len(req.Items))
	for _, draft := range req.Items {
		item, err := s.resolver.ResolveItem(ctx, draft.SKU)
		if err != nil {
			return nil, err
		}
		if item == nil {
			s.logger.Warn("dropping unresolvable sku from invoice", zap.String("sku", draft.SKU))
			continue
		}
		lines = append(lines, models.InvoiceLine{
			ID:       item.ID,
			Price:    draft.Price,
			Quantity: draft.Quantity,
		})
	}

	if len(lines) == 0 {
		return nil, ErrNoResolvableItems
	}

	observations := req.Observations
	if observations == "" {
		observations = defaultObservations
	}

	payload := models.InvoicePayload{
		Date:         s.now().Format(dateFormat),
		Client:       models.InvoiceClient{ID: req.ClientID},
		Items:        lines,
		Observations: observations,
	}

	invoice, err := s.client.CreateInvoice(ctx, payload)
	if err != nil {
		return nil, err
	}

	s.logger.Info("invoice created",
		zap.Int("lines", len(lines)), zap.Int("requested", len(req.Items)))
	return invoice, nil
}
