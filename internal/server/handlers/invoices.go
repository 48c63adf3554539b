package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/centli/alegra-relay/internal/domain/models"
	"github.com/centli/alegra-relay/internal/service/invoices"
)

// InvoicesHandler serves the create-invoice endpoint.
type InvoicesHandler struct {
	svc    *invoices.Service
	logger *zap.Logger
}

// NewInvoicesHandler constructs the HTTP handler adapter.
func NewInvoicesHandler(svc *invoices.Service, logger *zap.Logger) *InvoicesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoicesHandler{svc: svc, logger: logger}
}

// CreateInvoice resolves the requested SKUs and submits one upstream
// invoice. Zero resolvable SKUs is a request error; a partial resolution
// still creates the invoice.
func (h *InvoicesHandler) CreateInvoice(c *gin.Context) {
	var req models.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.HasClient() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "clientId and a non-empty items list are required"})
		return
	}

	invoice, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, invoices.ErrNoResolvableItems) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no valid sku in items"})
			return
		}
		h.logger.Error("invoice creation failed", zap.Error(err))
		respondUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "invoice": invoice})
}
