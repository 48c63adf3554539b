package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/centli/alegra-relay/internal/domain/models"
	"github.com/centli/alegra-relay/internal/service/catalog"
)

// CatalogHandler serves the item lookup and customer-price endpoints.
type CatalogHandler struct {
	svc    *catalog.Service
	logger *zap.Logger
}

// NewCatalogHandler constructs the HTTP handler adapter.
func NewCatalogHandler(svc *catalog.Service, logger *zap.Logger) *CatalogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{svc: svc, logger: logger}
}

// ItemBySKU resolves a SKU and returns the normalized item view.
func (h *CatalogHandler) ItemBySKU(c *gin.Context) {
	var req models.ItemLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sku is required"})
		return
	}

	item, err := h.svc.ResolveItem(c.Request.Context(), req.SKU)
	if err != nil {
		h.logger.Error("item lookup failed", zap.String("sku", req.SKU), zap.Error(err))
		respondUpstreamError(c, err)
		return
	}
	if item == nil {
		c.JSON(http.StatusOK, gin.H{"found": false})
		return
	}

	price, currency := item.BasePrice()

	customFields := item.CustomFields
	if len(customFields) == 0 || string(customFields) == "null" {
		customFields = json.RawMessage("[]")
	}

	c.JSON(http.StatusOK, gin.H{
		"found":        true,
		"id":           item.ID,
		"name":         item.Name,
		"reference":    item.Reference,
		"codes":        item.Codes,
		"priceBase":    price,
		"currency":     currency,
		"stockTotal":   item.Stock.Total(),
		"warehouses":   item.Stock.RawRecords(),
		"customFields": customFields,
	})
}

// PriceForCustomer resolves a SKU and returns the price assigned to the
// given price list, keeping the item's base price as a usable fallback.
func (h *CatalogHandler) PriceForCustomer(c *gin.Context) {
	var req models.PriceLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sku and priceListId are required"})
		return
	}

	item, err := h.svc.ResolveItem(c.Request.Context(), req.SKU)
	if err != nil {
		h.logger.Error("price lookup failed", zap.String("sku", req.SKU), zap.Error(err))
		respondUpstreamError(c, err)
		return
	}
	if item == nil {
		c.JSON(http.StatusOK, gin.H{"found": false})
		return
	}

	basePrice, currency := item.BasePrice()

	var priceForList *float64
	if entry := item.PriceForList(req.PriceListID); entry != nil {
		priceForList = entry.Price
		if entry.Currency != "" {
			currency = entry.Currency
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"found":             true,
		"sku":               item.Reference,
		"name":              item.Name,
		"priceForList":      priceForList,
		"currency":          currency,
		"fallbackBasePrice": basePrice,
	})
}
