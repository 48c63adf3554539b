package catalog

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/centli/alegra-relay/internal/domain/models"
	"github.com/centli/alegra-relay/pkg/clients/alegra"
)

const (
	referenceLookupLimit = 1
	searchLookupLimit    = 5
)

// Service resolves SKU references against the upstream catalog. Every
// handler that maps a SKU to an item goes through this resolver so matching
// semantics stay consistent.
type Service struct {
	client alegra.Client
	logger *zap.Logger
}

// NewService constructs the catalog resolver.
func NewService(client alegra.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, logger: logger}
}

// ResolveItem finds the best-matching catalog item for a SKU. The
// exact-reference filter is tried first; since that filter is unreliable
// across upstream accounts, any failure or empty result falls through to a
// full-text search whose candidates are tie-broken by a case-insensitive
// reference comparison. A nil item with a nil error means no match.
func (s *Service) ResolveItem(ctx context.Context, sku string) (*models.CatalogItem, error) {
	items, err := s.client.FindItemsByReference(ctx, sku, referenceLookupLimit)
	if err != nil {
		s.logger.Debug("reference filter lookup failed, trying full-text search",
			zap.String("sku", sku), zap.Error(err))
	} else if len(items) > 0 {
		return &items[0], nil
	}

	candidates, err := s.client.SearchItems(ctx, sku, searchLookupLimit)
	if err != nil {
		return nil, err
	}

	for i := range candidates {
		if strings.EqualFold(candidates[i].Reference, sku) {
			return &candidates[i], nil
		}
	}
	if len(candidates) > 0 {
		return &candidates[0], nil
	}
	return nil, nil
}
