package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/centli/alegra-relay/pkg/clients/alegra"
)

// respondUpstreamError maps a failed upstream interaction onto the HTTP
// surface: Alegra API errors carry their upstream body through, anything
// else (transport, decode) surfaces its message.
func respondUpstreamError(c *gin.Context, err error) {
	var apiErr *alegra.APIError
	if errors.As(err, &apiErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": apiErr.ErrorBody()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
