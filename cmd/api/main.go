package main

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/mbewe/duka-backend/internal/config"
	"github.com/mbewe/duka-backend/internal/modules/cart"
	"github.com/mbewe/duka-backend/internal/modules/expenses"
	"github.com/mbewe/duka-backend/internal/modules/inventory"
	"github.com/mbewe/duka-backend/internal/modules/payments"
	"github.com/mbewe/duka-backend/internal/modules/receipt"
	"github.com/mbewe/duka-backend/internal/modules/reports"
	"github.com/mbewe/duka-backend/internal/modules/sales"
	"github.com/mbewe/duka-backend/internal/modules/suppliers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := newLogger(cfg.Logger)
	defer log.Sync()

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatal("could not open database", zap.Error(err))
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	if err := db.Ping(); err != nil {
		log.Fatal("could not reach database", zap.Error(err))
	}
	log.Info("connected to database")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Inventory (stock ledger) ────────────────────────────
	productRepo := inventory.NewPostgresRepository(db)
	productService := inventory.NewService(productRepo)
	inventory.NewHandler(productService).RegisterRoutes(router)

	// ── Checkout carts ──────────────────────────────────────
	carts := cart.NewStore()
	cart.NewHandler(carts, productService).RegisterRoutes(router)

	// ── Sales (commit engine + reconciliation) ──────────────
	emitter := receipt.NewEmitter(cfg.Server.ShopName, receipt.NewLogPrinter(log))
	saleRepo := sales.NewPostgresRepository(db)
	saleService := sales.NewService(saleRepo, productRepo, carts, emitter, log)
	sales.NewHandler(saleService).RegisterRoutes(router)

	reconciler := sales.NewReconciler(saleRepo, productRepo, log, cfg.Reconcile.BatchSize)
	if err := reconciler.Start(cfg.Reconcile.Schedule); err != nil {
		log.Fatal("could not start stock reconciler", zap.Error(err))
	}
	defer reconciler.Stop()

	// ── Supplier debt ledger ────────────────────────────────
	supplierRepo := suppliers.NewPostgresRepository(db)
	supplierService := suppliers.NewService(supplierRepo)
	suppliers.NewHandler(supplierService).RegisterRoutes(router)

	// ── Mobile money payments ───────────────────────────────
	gateway := payments.NewMomoGateway(
		cfg.Momo.ShortCode, cfg.Momo.Passkey, cfg.Momo.BaseURL, cfg.Momo.CallbackURL)
	paymentRepo := payments.NewPostgresRepository(db)
	paymentService := payments.NewService(paymentRepo, gateway, log)
	payments.NewHandler(paymentService).RegisterRoutes(router)

	// ── Expense log & reports ───────────────────────────────
	expenseRepo := expenses.NewPostgresRepository(db)
	expenses.NewHandler(expenses.NewService(expenseRepo)).RegisterRoutes(router)

	reportRepo := reports.NewPostgresRepository(db)
	reports.NewHandler(reports.NewService(reportRepo)).RegisterRoutes(router)

	// ── Start Server ────────────────────────────────────────
	log.Info("duka API server starting", zap.String("port", cfg.Server.Port))
	if err := http.ListenAndServe(":"+cfg.Server.Port, router); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(cfg config.LoggerConfig) *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if cfg.Development {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return log
}
