package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/centli/alegra-relay/internal/domain/models"
	"github.com/centli/alegra-relay/internal/service/contacts"
)

// ContactsHandler serves the customer-by-phone endpoint.
type ContactsHandler struct {
	svc    *contacts.Service
	logger *zap.Logger
}

// NewContactsHandler constructs the HTTP handler adapter.
func NewContactsHandler(svc *contacts.Service, logger *zap.Logger) *ContactsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactsHandler{svc: svc, logger: logger}
}

// CustomerByPhone finds a contact by digit-exact phone match. A phone with
// no digits is a legitimate miss, not a validation error.
func (h *ContactsHandler) CustomerByPhone(c *gin.Context) {
	var req models.CustomerLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	contact, err := h.svc.MatchByPhone(c.Request.Context(), req.Phone)
	if err != nil {
		h.logger.Error("contact lookup failed", zap.Error(err))
		respondUpstreamError(c, err)
		return
	}
	if contact == nil {
		c.JSON(http.StatusOK, gin.H{"found": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"found":          true,
		"id":             contact.ID,
		"name":           contact.Name,
		"identification": contact.Identification,
		"phonePrimary":   contact.PhonePrimary,
		"priceList":      contact.PriceList,
	})
}
