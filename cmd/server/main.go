package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/centli/alegra-relay/internal/config"
	"github.com/centli/alegra-relay/internal/server/handlers"
	"github.com/centli/alegra-relay/internal/server/router"
	catalogsvc "github.com/centli/alegra-relay/internal/service/catalog"
	contactssvc "github.com/centli/alegra-relay/internal/service/contacts"
	invoicessvc "github.com/centli/alegra-relay/internal/service/invoices"
	"github.com/centli/alegra-relay/pkg/clients/alegra"
	"github.com/centli/alegra-relay/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	if !cfg.Alegra.HasCredentials() {
		baseLogger.Warn("ALEGRA_EMAIL / ALEGRA_TOKEN not set; upstream calls will fail until provided")
	}

	alegraClient := alegra.NewClient(cfg.Alegra)

	catalogSvc := catalogsvc.NewService(alegraClient, baseLogger.Named("svc.catalog"))
	contactsSvc := contactssvc.NewService(alegraClient, baseLogger.Named("svc.contacts"))
	invoicesSvc := invoicessvc.NewService(alegraClient, catalogSvc, baseLogger.Named("svc.invoices"))

	catalogHandler := handlers.NewCatalogHandler(catalogSvc, baseLogger.Named("handlers.catalog"))
	contactsHandler := handlers.NewContactsHandler(contactsSvc, baseLogger.Named("handlers.contacts"))
	invoicesHandler := handlers.NewInvoicesHandler(invoicesSvc, baseLogger.Named("handlers.invoices"))

	engine := router.New(catalogHandler, contactsHandler, invoicesHandler, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
