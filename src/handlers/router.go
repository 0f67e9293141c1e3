// backend/src/handlers/router.go
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/username/bugetto/backend/src/services"
	"github.com/username/bugetto/backend/src/utils"
	"golang.org/x/time/rate"
)

// RouterConfig carries the services and the HTTP policy of the router.
type RouterConfig struct {
	Operations     services.OperationService
	Assets         services.AssetService
	Portfolio      services.PortfolioService
	AllowedOrigins []string
	Limiter        *rate.Limiter
}

// NewRouter mounts every ledger and dashboard route.
func NewRouter(cfg RouterConfig) http.Handler {
	opHandler := NewOperationHandler(cfg.Operations)
	assetHandler := NewAssetHandler(cfg.Assets, cfg.Portfolio)
	walletHandler := NewWalletHandler(cfg.Assets)
	dashboardHandler := NewDashboardHandler(cfg.Portfolio)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(ContextualLoggerMiddleware)
	r.Use(CORSMiddleware(cfg.AllowedOrigins))
	if cfg.Limiter != nil {
		r.Use(RateLimitMiddleware(cfg.Limiter))
	}
	r.Use(middleware.StripSlashes)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		utils.SendJSON(w, map[string]string{"message": "Bugetto backend is running"})
	})

	r.Route("/operations", func(r chi.Router) {
		r.Get("/", opHandler.HandleListOperations)
		r.Post("/", opHandler.HandleCreateOperation)
		r.Post("/preview", opHandler.HandlePreviewOperation)
		r.Get("/{id}", opHandler.HandleGetOperation)
		r.Patch("/{id}", opHandler.HandleUpdateOperation)
		r.Post("/{id}/duplicate", opHandler.HandleDuplicateOperation)
	})

	r.Get("/wallets", walletHandler.HandleListWallets)
	r.Post("/wallets", walletHandler.HandleCreateWallet)

	r.Route("/assets", func(r chi.Router) {
		r.Get("/", assetHandler.HandleListAssets)
		r.Post("/", assetHandler.HandleUpsertAsset)
		r.Get("/visible", assetHandler.HandleListVisibleAssets)
		r.Get("/guess", assetHandler.HandleGuessAsset)
		r.Route("/{symbol}", func(r chi.Router) {
			r.Get("/average-price", assetHandler.HandleAveragePrice)
			r.Get("/wallet/{walletID}/quantity", assetHandler.HandleWalletQuantity)
			r.Get("/total-quantity", assetHandler.HandleTotalQuantity)
			r.Get("/delta", assetHandler.HandleDelta)
			r.Get("/current-price", assetHandler.HandleCurrentPrice)
			r.Get("/dividends", assetHandler.HandleDividends)
			r.Get("/last-purchase-meta", assetHandler.HandleLastPurchaseMeta)
		})
	})

	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/summary", dashboardHandler.HandleSummary)
		r.Get("/allocation/assets", dashboardHandler.HandleInvestedByAsset)
		r.Get("/allocation/categories", dashboardHandler.HandleInvestedByType)
		r.Get("/allocation/categories-group", dashboardHandler.HandleCurrentByCategory)
		r.Get("/allocation/assets-group", dashboardHandler.HandleCurrentByAsset)
		r.Get("/allocation/categories-history", dashboardHandler.HandleCategoryHistory)
	})

	r.Get("/convert", dashboardHandler.HandleConvert)

	return r
}
