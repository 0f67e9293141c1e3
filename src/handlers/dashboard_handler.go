// backend/src/handlers/dashboard_handler.go
package handlers

import (
	"net/http"

	"github.com/username/bugetto/backend/src/services"
	"github.com/username/bugetto/backend/src/utils"
)

type DashboardHandler struct {
	portfolioService services.PortfolioService
}

func NewDashboardHandler(portfolioService services.PortfolioService) *DashboardHandler {
	return &DashboardHandler{portfolioService: portfolioService}
}

func (h *DashboardHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.portfolioService.DashboardSummary(r.Context())
	if err != nil {
		sendServiceError(w, r, "build dashboard summary", err)
		return
	}
	utils.SendJSON(w, summary)
}

// HandleInvestedByAsset serves the cost-basis split per symbol.
func (h *DashboardHandler) HandleInvestedByAsset(w http.ResponseWriter, r *http.Request) {
	allocation, err := h.portfolioService.InvestedAllocationByAsset(r.Context())
	if err != nil {
		sendServiceError(w, r, "compute allocation", err)
		return
	}
	utils.SendJSON(w, allocation)
}

// HandleInvestedByType serves the cost-basis split per asset type.
func (h *DashboardHandler) HandleInvestedByType(w http.ResponseWriter, r *http.Request) {
	allocation, err := h.portfolioService.InvestedAllocationByType(r.Context())
	if err != nil {
		sendServiceError(w, r, "compute allocation", err)
		return
	}
	utils.SendJSON(w, allocation)
}

func (h *DashboardHandler) HandleCurrentByCategory(w http.ResponseWriter, r *http.Request) {
	allocation, err := h.portfolioService.CurrentAllocationByCategory(r.Context())
	if err != nil {
		sendServiceError(w, r, "compute allocation", err)
		return
	}
	utils.SendJSON(w, allocation)
}

func (h *DashboardHandler) HandleCurrentByAsset(w http.ResponseWriter, r *http.Request) {
	allocation, err := h.portfolioService.CurrentAllocationByAsset(r.Context())
	if err != nil {
		sendServiceError(w, r, "compute allocation", err)
		return
	}
	utils.SendJSON(w, allocation)
}

func (h *DashboardHandler) HandleCategoryHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.portfolioService.HistoricalAllocationByCategory(r.Context())
	if err != nil {
		sendServiceError(w, r, "compute allocation history", err)
		return
	}
	utils.SendJSON(w, history)
}

func (h *DashboardHandler) HandleConvert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	if from == "" || to == "" {
		utils.SendJSONError(w, "from and to are required", http.StatusBadRequest)
		return
	}
	rate, err := h.portfolioService.Convert(r.Context(), from, to)
	if err != nil {
		sendServiceError(w, r, "convert currency", err)
		return
	}
	utils.SendJSON(w, map[string]any{"from": from, "to": to, "status": rate.Status, "rate": rate.Value()})
}
