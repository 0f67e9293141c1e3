// backend/src/handlers/operation_handler.go
package handlers

import (
	"net/http"

	"github.com/username/bugetto/backend/src/models"
	"github.com/username/bugetto/backend/src/services"
	"github.com/username/bugetto/backend/src/utils"
)

type OperationHandler struct {
	operationService services.OperationService
}

func NewOperationHandler(operationService services.OperationService) *OperationHandler {
	return &OperationHandler{operationService: operationService}
}

func (h *OperationHandler) HandleListOperations(w http.ResponseWriter, r *http.Request) {
	skip, ok := intQuery(w, r, "skip", 0)
	if !ok {
		return
	}
	limit, ok := intQuery(w, r, "limit", services.DefaultListLimit)
	if !ok {
		return
	}

	ops, err := h.operationService.ListOperations(r.Context(), skip, limit)
	if err != nil {
		sendServiceError(w, r, "list operations", err)
		return
	}
	utils.SendJSON(w, ops)
}

func (h *OperationHandler) HandleCreateOperation(w http.ResponseWriter, r *http.Request) {
	var req models.OperationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	op, err := h.operationService.CreateOperation(r.Context(), req)
	if err != nil {
		sendServiceError(w, r, "create operation", err)
		return
	}
	utils.SendJSON(w, op)
}

// HandlePreviewOperation prices a request without saving it.
func (h *OperationHandler) HandlePreviewOperation(w http.ResponseWriter, r *http.Request) {
	var req models.OperationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	preview, err := h.operationService.PreviewOperation(r.Context(), req)
	if err != nil {
		sendServiceError(w, r, "preview operation", err)
		return
	}
	utils.SendJSON(w, preview)
}

func (h *OperationHandler) HandleGetOperation(w http.ResponseWriter, r *http.Request) {
	id, ok := int64URLParam(w, r, "id")
	if !ok {
		return
	}
	op, err := h.operationService.GetOperation(r.Context(), id)
	if err != nil {
		sendServiceError(w, r, "get operation", err)
		return
	}
	utils.SendJSON(w, op)
}

func (h *OperationHandler) HandleUpdateOperation(w http.ResponseWriter, r *http.Request) {
	id, ok := int64URLParam(w, r, "id")
	if !ok {
		return
	}
	var patch models.OperationPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	op, err := h.operationService.UpdateOperation(r.Context(), id, patch)
	if err != nil {
		sendServiceError(w, r, "update operation", err)
		return
	}
	utils.SendJSON(w, op)
}

func (h *OperationHandler) HandleDuplicateOperation(w http.ResponseWriter, r *http.Request) {
	id, ok := int64URLParam(w, r, "id")
	if !ok {
		return
	}
	op, err := h.operationService.DuplicateOperation(r.Context(), id)
	if err != nil {
		sendServiceError(w, r, "duplicate operation", err)
		return
	}
	utils.SendJSON(w, op)
}
