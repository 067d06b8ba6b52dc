package handlers

import (
	portssvc "github.com/blockflow/ledger_service/internal/core/ports/services"
	"github.com/blockflow/ledger_service/internal/middleware"
	"github.com/blockflow/ledger_service/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	limiterInstance *limiter.Limiter,
	registry *prometheus.Registry,
) {
	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	setupAPIV1Routes(r, services, limiterInstance)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	limiterInstance *limiter.Limiter,
) {
	v1 := r.Group("/api/v1", middleware.RateLimit(limiterInstance))

	registerWalletRoutes(v1, services.Wallet, services.Reservation)
	registerSettlementRoutes(v1, services.Settlement)
	registerLedgerRoutes(v1, services.Ledger)
	registerReconcileRoutes(v1, services.Reconciliation)
}

func registerWalletRoutes(v1 *gin.RouterGroup, walletSvc portssvc.WalletSvc, reservationSvc portssvc.ReservationSvc) {
	walletHandler := NewWalletHandler(walletSvc, reservationSvc)

	wallets := v1.Group("/wallets")
	{
		wallets.POST("/:userID/deposit", walletHandler.Deposit)
		wallets.POST("/:userID/withdraw", walletHandler.Withdraw)
		wallets.POST("/:userID/reserve", walletHandler.Reserve)
		wallets.POST("/:userID/release", walletHandler.Release)
		wallets.GET("/:userID/:currency", walletHandler.GetBalance)
	}
}

func registerSettlementRoutes(v1 *gin.RouterGroup, settlementSvc portssvc.SettlementSvc) {
	settlementHandler := NewSettlementHandler(settlementSvc)
	v1.POST("/settlements", settlementHandler.Settle)
}

func registerLedgerRoutes(v1 *gin.RouterGroup, ledgerSvc portssvc.LedgerReaderSvc) {
	ledgerHandler := NewLedgerHandler(ledgerSvc)

	ledger := v1.Group("/ledger")
	{
		ledger.GET("/summary", ledgerHandler.GetSummary)
		ledger.GET("/accounts/:account/entries", ledgerHandler.ListAccountEntries)
		ledger.GET("/transactions/:txID", ledgerHandler.GetTransaction)
	}
}

func registerReconcileRoutes(v1 *gin.RouterGroup, reconciliationSvc portssvc.ReconciliationSvc) {
	reconcileHandler := NewReconcileHandler(reconciliationSvc)
	v1.POST("/reconcile", reconcileHandler.Reconcile)
}
