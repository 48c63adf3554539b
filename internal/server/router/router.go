package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/centli/alegra-relay/internal/server/handlers"
)

// ServiceName is reported by the root endpoint.
const ServiceName = "alegra-voice-relay"

// New wires the Gin engine with required routes and middlewares.
func New(catalogHandler *handlers.CatalogHandler, contactsHandler *handlers.ContactsHandler, invoicesHandler *handlers.InvoicesHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "service": ServiceName})
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/item-by-sku", catalogHandler.ItemBySKU)
	r.POST("/price-for-customer", catalogHandler.PriceForCustomer)
	r.POST("/customer-by-phone", contactsHandler.CustomerByPhone)
	r.POST("/create-invoice", invoicesHandler.CreateInvoice)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
