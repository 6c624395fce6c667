package handlers

import (
	"net/http"

	custommiddleware "github.com/ba3ai/clarus-backend/internal/api/middleware"
	"github.com/ba3ai/clarus-backend/internal/api/request"
	"github.com/ba3ai/clarus-backend/internal/api/response"
	"github.com/ba3ai/clarus-backend/internal/service"
	"github.com/ba3ai/clarus-backend/internal/validation"
)

// ViewAsHandler handles view-as selection HTTP requests
type ViewAsHandler struct {
	viewAsService *service.ViewAsService
}

// NewViewAsHandler creates a new ViewAsHandler
func NewViewAsHandler(viewAsService *service.ViewAsService) *ViewAsHandler {
	return &ViewAsHandler{
		viewAsService: viewAsService,
	}
}

// ViewAsResponse reports which investor the current request resolves to.
type ViewAsResponse struct {
	CallerID    string `json:"caller_id"`
	EffectiveID string `json:"effective_id"`
}

// Current handles GET requests to report the resolved view-as context.
//
// Endpoint: GET /api/view-as
// Response: 200 OK with ViewAsResponse
func (h *ViewAsHandler) Current(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, ViewAsResponse{
		CallerID:    custommiddleware.CallerID(r.Context()),
		EffectiveID: custommiddleware.EffectiveID(r.Context()),
	})
}

// Remember handles PUT requests to store the caller's last-selected investor.
// The stored hint only applies to future requests from plain investors;
// group admins must always select explicitly.
//
// Endpoint: PUT /api/view-as
// Request Body: SetViewAsRequest (investorId)
// Response: 204 No Content
// Error: 400 Bad Request if the investor ID is invalid
// Error: 500 Internal Server Error if the hint cannot be stored
func (h *ViewAsHandler) Remember(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SetViewAsRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUUID(req.InvestorID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "investorId must be a valid UUID", err.Error())
		return
	}

	callerID := custommiddleware.CallerID(r.Context())
	if err := h.viewAsService.RememberSelection(callerID, req.InvestorID); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to store selection", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Clear handles DELETE requests to drop the caller's stored selection.
//
// Endpoint: DELETE /api/view-as
// Response: 204 No Content
// Error: 500 Internal Server Error if the hint cannot be cleared
func (h *ViewAsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	callerID := custommiddleware.CallerID(r.Context())
	if err := h.viewAsService.ClearSelection(callerID); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to clear selection", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
