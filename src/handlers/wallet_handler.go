// backend/src/handlers/wallet_handler.go
package handlers

import (
	"net/http"

	"github.com/username/bugetto/backend/src/services"
	"github.com/username/bugetto/backend/src/utils"
)

type WalletHandler struct {
	assetService services.AssetService
}

func NewWalletHandler(assetService services.AssetService) *WalletHandler {
	return &WalletHandler{assetService: assetService}
}

func (h *WalletHandler) HandleListWallets(w http.ResponseWriter, r *http.Request) {
	wallets, err := h.assetService.ListWallets(r.Context())
	if err != nil {
		sendServiceError(w, r, "list wallets", err)
		return
	}
	utils.SendJSON(w, wallets)
}

func (h *WalletHandler) HandleCreateWallet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	wallet, err := h.assetService.CreateWallet(r.Context(), req.Name)
	if err != nil {
		sendServiceError(w, r, "create wallet", err)
		return
	}
	utils.SendJSON(w, wallet)
}
