package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"

	"github.com/rl1809/mini-pos/internal/adapter/handler"
	"github.com/rl1809/mini-pos/internal/adapter/storage"
	"github.com/rl1809/mini-pos/internal/config"
	"github.com/rl1809/mini-pos/internal/core/domain"
	"github.com/rl1809/mini-pos/internal/core/service"
	"github.com/rl1809/mini-pos/internal/obs"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()
	obs.InitLogger(slog.LevelInfo)

	// Money serializes as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	// Initialize MySQL
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		obs.Logger.Error("failed to open mysql", "err", err)
		os.Exit(1)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		obs.Logger.Error("failed to ping mysql", "err", err)
		os.Exit(1)
	}
	obs.Logger.Info("connected to mysql")

	// Initialize storage and services
	mysqlAdapter := storage.NewMySQLAdapter(db)
	if err := mysqlAdapter.EnsureSchema(ctx); err != nil {
		obs.Logger.Error("failed to ensure schema", "err", err)
		os.Exit(1)
	}

	productService := service.NewProductService(mysqlAdapter)
	ticketService := service.NewTicketService(mysqlAdapter, mysqlAdapter)

	if err := seedProducts(ctx, mysqlAdapter, productService); err != nil {
		obs.Logger.Error("failed to seed products", "err", err)
		os.Exit(1)
	}

	// Initialize HTTP server
	httpHandler := handler.NewHTTPHandler(productService, ticketService)
	mux := http.NewServeMux()
	mux.HandleFunc("/health", httpHandler.HealthCheck)
	mux.HandleFunc("/api/products", httpHandler.Products)
	mux.HandleFunc("/api/tickets", httpHandler.Tickets)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler.WithRequestID(handler.WithLogging(mux)),
	}

	go func() {
		obs.Logger.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			obs.Logger.Error("http server error", "err", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	obs.Logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	obs.Logger.Info("http server stopped")

	db.Close()
	obs.Logger.Info("connections closed")
}

// seedProducts inserts the demo catalog once, gated on an empty store. Safe
// to run on every start.
func seedProducts(ctx context.Context, repo *storage.MySQLAdapter, products *service.ProductService) error {
	n, err := repo.CountProducts(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	catalog := []domain.Product{
		{Name: "Mouse Óptico", UnitPrice: decimal.NewFromFloat(15.90), Stock: 30},
		{Name: "Teclado Mecánico", UnitPrice: decimal.NewFromFloat(49.90), Stock: 20},
		{Name: "Monitor 24\"", UnitPrice: decimal.NewFromFloat(129.00), Stock: 10},
		{Name: "USB 64GB", UnitPrice: decimal.NewFromFloat(12.50), Stock: 100},
	}
	for i := range catalog {
		if err := products.Save(ctx, &catalog[i]); err != nil {
			return err
		}
	}

	obs.Logger.Info("seeded product catalog", "products", len(catalog))
	return nil
}
