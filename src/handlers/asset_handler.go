// backend/src/handlers/asset_handler.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/username/bugetto/backend/src/logger"
	"github.com/username/bugetto/backend/src/models"
	"github.com/username/bugetto/backend/src/services"
	"github.com/username/bugetto/backend/src/utils"
)

type AssetHandler struct {
	assetService     services.AssetService
	portfolioService services.PortfolioService
}

func NewAssetHandler(assetService services.AssetService, portfolioService services.PortfolioService) *AssetHandler {
	return &AssetHandler{
		assetService:     assetService,
		portfolioService: portfolioService,
	}
}

func symbolParam(r *http.Request) string {
	return strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "symbol")))
}

func (h *AssetHandler) HandleListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.assetService.ListAssets(r.Context())
	if err != nil {
		sendServiceError(w, r, "list assets", err)
		return
	}
	utils.SendJSON(w, assets)
}

func (h *AssetHandler) HandleListVisibleAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.assetService.ListVisibleAssets(r.Context())
	if err != nil {
		sendServiceError(w, r, "list visible assets", err)
		return
	}
	utils.SendJSON(w, assets)
}

func (h *AssetHandler) HandleUpsertAsset(w http.ResponseWriter, r *http.Request) {
	var in models.AssetInput
	if !decodeJSON(w, r, &in) {
		return
	}
	asset, err := h.assetService.UpsertAsset(r.Context(), in)
	if err != nil {
		sendServiceError(w, r, "save asset", err)
		return
	}
	logger.FromContext(r.Context()).Info("Asset saved", "symbol", asset.Symbol)
	utils.SendJSON(w, asset)
}

func (h *AssetHandler) HandleGuessAsset(w http.ResponseWriter, r *http.Request) {
	guess, err := h.assetService.GuessAsset(r.Context(), r.URL.Query().Get("symbol"))
	if err != nil {
		sendServiceError(w, r, "guess asset metadata", err)
		return
	}
	utils.SendJSON(w, guess)
}

func (h *AssetHandler) HandleAveragePrice(w http.ResponseWriter, r *http.Request) {
	symbol := symbolParam(r)
	avg, err := h.portfolioService.AverageAcquisitionRate(r.Context(), symbol)
	if err != nil {
		sendServiceError(w, r, "compute average price", err)
		return
	}
	utils.SendJSON(w, map[string]any{"symbol": symbol, "average_purchase_rate": avg})
}

func (h *AssetHandler) HandleWalletQuantity(w http.ResponseWriter, r *http.Request) {
	symbol := symbolParam(r)
	walletID, ok := int64URLParam(w, r, "walletID")
	if !ok {
		return
	}
	qty, err := h.portfolioService.HeldQuantity(r.Context(), symbol, &walletID)
	if err != nil {
		sendServiceError(w, r, "compute wallet quantity", err)
		return
	}
	utils.SendJSON(w, map[string]any{"symbol": symbol, "wallet_id": walletID, "quantity": qty})
}

func (h *AssetHandler) HandleTotalQuantity(w http.ResponseWriter, r *http.Request) {
	qty, err := h.portfolioService.HeldQuantity(r.Context(), symbolParam(r), nil)
	if err != nil {
		sendServiceError(w, r, "compute quantity", err)
		return
	}
	utils.SendJSON(w, qty)
}

func (h *AssetHandler) HandleDelta(w http.ResponseWriter, r *http.Request) {
	delta, err := h.portfolioService.AssetDelta(r.Context(), symbolParam(r))
	if err != nil {
		sendServiceError(w, r, "compute asset delta", err)
		return
	}
	utils.SendJSON(w, delta)
}

func (h *AssetHandler) HandleCurrentPrice(w http.ResponseWriter, r *http.Request) {
	symbol := symbolParam(r)
	price, err := h.portfolioService.CurrentPrice(r.Context(), symbol)
	if err != nil {
		sendServiceError(w, r, "fetch current price", err)
		return
	}
	utils.SendJSON(w, map[string]any{
		"symbol":        symbol,
		"status":        price.Status,
		"current_price": utils.RoundFloat(price.Value(), 4),
	})
}

func (h *AssetHandler) HandleDividends(w http.ResponseWriter, r *http.Request) {
	total, err := h.portfolioService.TotalDividends(r.Context(), symbolParam(r))
	if err != nil {
		sendServiceError(w, r, "compute dividends", err)
		return
	}
	utils.SendJSON(w, total)
}

func (h *AssetHandler) HandleLastPurchaseMeta(w http.ResponseWriter, r *http.Request) {
	meta, err := h.assetService.LastPurchaseMeta(r.Context(), symbolParam(r))
	if err != nil {
		sendServiceError(w, r, "find last purchase", err)
		return
	}
	utils.SendJSON(w, meta)
}
