package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	custommiddleware "github.com/ba3ai/clarus-backend/internal/api/middleware"
	"github.com/ba3ai/clarus-backend/internal/api/request"
	"github.com/ba3ai/clarus-backend/internal/api/response"
	"github.com/ba3ai/clarus-backend/internal/apperrors"
	"github.com/ba3ai/clarus-backend/internal/model"
	"github.com/ba3ai/clarus-backend/internal/service"
	"github.com/ba3ai/clarus-backend/internal/validation"
)

// InvestorHandler handles investor-related HTTP requests
type InvestorHandler struct {
	investorService *service.InvestorService
}

// NewInvestorHandler creates a new InvestorHandler
func NewInvestorHandler(investorService *service.InvestorService) *InvestorHandler {
	return &InvestorHandler{
		investorService: investorService,
	}
}

// InvestorResponse represents an investor in API responses
type InvestorResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	ParentID   *string `json:"parentId,omitempty"`
	JoinDate   *string `json:"joinDate,omitempty"`
	IsArchived bool    `json:"is_archived"`
}

func toInvestorResponse(inv model.Investor) InvestorResponse {
	resp := InvestorResponse{
		ID:         inv.ID,
		Name:       inv.Name,
		Email:      inv.Email,
		ParentID:   inv.ParentID,
		IsArchived: inv.IsArchived,
	}
	if inv.JoinDate != nil {
		joined := inv.JoinDate.Format("2006-01-02")
		resp.JoinDate = &joined
	}
	return resp
}

// Investors handles GET requests to list all investors.
//
// Endpoint: GET /api/investors
// Response: 200 OK with array of InvestorResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *InvestorHandler) Investors(w http.ResponseWriter, _ *http.Request) {
	investors, err := h.investorService.GetAllInvestors()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveInvestors.Error(), err.Error())
		return
	}

	resp := make([]InvestorResponse, len(investors))
	for i, inv := range investors {
		resp[i] = toInvestorResponse(inv)
	}

	respondJSON(w, http.StatusOK, resp)
}

// GetInvestor handles GET requests to retrieve a single investor by ID.
//
// Endpoint: GET /api/investors/{uuid}
// Response: 200 OK with InvestorResponse
// Error: 404 Not Found if investor not found
// Error: 500 Internal Server Error if retrieval fails
func (h *InvestorHandler) GetInvestor(w http.ResponseWriter, r *http.Request) {
	investorID := chi.URLParam(r, "uuid")

	investor, err := h.investorService.GetInvestor(investorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvestorNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestorNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveInvestors.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, toInvestorResponse(investor))
}

// Dependents handles GET requests to list investors filed under a parent investor.
//
// Endpoint: GET /api/investors/{uuid}/dependents
// Response: 200 OK with array of InvestorResponse
// Error: 404 Not Found if the parent investor does not exist
// Error: 500 Internal Server Error if retrieval fails
func (h *InvestorHandler) Dependents(w http.ResponseWriter, r *http.Request) {
	parentID := chi.URLParam(r, "uuid")

	dependents, err := h.investorService.GetDependents(parentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvestorNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestorNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveInvestors.Error(), err.Error())
		return
	}

	resp := make([]InvestorResponse, len(dependents))
	for i, inv := range dependents {
		resp[i] = toInvestorResponse(inv)
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

// MyDependents handles GET requests to list the dependents of the resolved
// view-as investor, for callers navigating their own linked accounts.
//
// Endpoint: GET /api/investors/dependents
// Response: 200 OK with array of InvestorResponse
// Error: 404 Not Found if the resolved investor does not exist
// Error: 500 Internal Server Error if retrieval fails
func (h *InvestorHandler) MyDependents(w http.ResponseWriter, r *http.Request) {
	parentID := custommiddleware.EffectiveID(r.Context())

	dependents, err := h.investorService.GetDependents(parentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvestorNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestorNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveInvestors.Error(), err.Error())
		return
	}

	resp := make([]InvestorResponse, len(dependents))
	for i, inv := range dependents {
		resp[i] = toInvestorResponse(inv)
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

// ExportInvestorsCSV handles GET requests to export the investor table as a
// CSV file.
//
// Endpoint: GET /api/investors/export
// Response: 200 OK with text/csv body and a Content-Disposition header
// Error: 500 Internal Server Error if export fails
func (h *InvestorHandler) ExportInvestorsCSV(w http.ResponseWriter, _ *http.Request) {
	data, err := h.investorService.ExportCSV()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to export investors", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="investors.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck
}

// CreateInvestor handles POST requests to create a new investor.
//
// Endpoint: POST /api/investors
// Request Body: CreateInvestorRequest (name, email, parentId, joinDate)
// Response: 201 Created with InvestorResponse
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *InvestorHandler) CreateInvestor(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateInvestorRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateInvestor(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	investor, err := h.investorService.CreateInvestor(req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvestorNotFound) {
			response.RespondError(w, http.StatusBadRequest, "parent investor not found", err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create investor", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, toInvestorResponse(investor))
}

// UpdateInvestor handles PUT requests to update an existing investor.
// Only the fields present in the request body are updated.
//
// Endpoint: PUT /api/investors/{uuid}
// Request Body: UpdateInvestorRequest
// Response: 200 OK with InvestorResponse
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if investor not found
// Error: 500 Internal Server Error if update fails
func (h *InvestorHandler) UpdateInvestor(w http.ResponseWriter, r *http.Request) {
	investorID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateInvestorRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateInvestor(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	investor, err := h.investorService.UpdateInvestor(investorID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvestorNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestorNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update investor", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, toInvestorResponse(investor))
}

// DeleteInvestor handles DELETE requests to remove an investor.
//
// Endpoint: DELETE /api/investors/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if investor not found
// Error: 500 Internal Server Error if deletion fails
func (h *InvestorHandler) DeleteInvestor(w http.ResponseWriter, r *http.Request) {
	investorID := chi.URLParam(r, "uuid")

	if err := h.investorService.DeleteInvestor(investorID); err != nil {
		if errors.Is(err, apperrors.ErrInvestorNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestorNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete investor", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
