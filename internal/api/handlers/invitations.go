package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ba3ai/clarus-backend/internal/api/request"
	"github.com/ba3ai/clarus-backend/internal/api/response"
	"github.com/ba3ai/clarus-backend/internal/apperrors"
	"github.com/ba3ai/clarus-backend/internal/service"
	"github.com/ba3ai/clarus-backend/internal/validation"
)

// InvitationHandler handles invitation-related HTTP requests
type InvitationHandler struct {
	invitationService *service.InvitationService
}

// NewInvitationHandler creates a new InvitationHandler
func NewInvitationHandler(invitationService *service.InvitationService) *InvitationHandler {
	return &InvitationHandler{
		invitationService: invitationService,
	}
}

// Invitations handles GET requests to list all invitations.
//
// Endpoint: GET /api/invitations
// Response: 200 OK with array of Invitation
// Error: 500 Internal Server Error if retrieval fails
func (h *InvitationHandler) Invitations(w http.ResponseWriter, _ *http.Request) {
	invitations, err := h.invitationService.GetInvitations()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve invitations", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, invitations)
}

// CreateInvitation handles POST requests to issue an invitation.
// The response includes the sealed token for the invitation link.
//
// Endpoint: POST /api/invitations
// Request Body: CreateInvitationRequest (email, investorId)
// Response: 201 Created with Invitation
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if creation fails
func (h *InvitationHandler) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateInvitationRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateInvitation(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	invitation, err := h.invitationService.CreateInvitation(req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvestorNotFound) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvestorNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create invitation", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, invitation)
}

// AcceptInvitation handles POST requests to redeem an invitation token.
//
// Endpoint: POST /api/invitations/accept
// Request Body: AcceptInvitationRequest (token)
// Response: 200 OK with the accepted Invitation
// Error: 400 Bad Request if the token is missing
// Error: 401 Unauthorized if the token fails verification
// Error: 410 Gone if the invitation expired or was already used
// Error: 500 Internal Server Error otherwise
func (h *InvitationHandler) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.AcceptInvitationRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateAcceptInvitation(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	invitation, err := h.invitationService.AcceptInvitation(req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidToken):
			response.RespondError(w, http.StatusUnauthorized, apperrors.ErrInvalidToken.Error(), "")
		case errors.Is(err, apperrors.ErrInvitationExpired):
			response.RespondError(w, http.StatusGone, apperrors.ErrInvitationExpired.Error(), "")
		case errors.Is(err, apperrors.ErrInvitationNotPending):
			response.RespondError(w, http.StatusGone, apperrors.ErrInvitationNotPending.Error(), "")
		case errors.Is(err, apperrors.ErrInvitationNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvitationNotFound.Error(), "")
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to accept invitation", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, invitation)
}

// DeleteInvitation handles DELETE requests to revoke an invitation.
//
// Endpoint: DELETE /api/invitations/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if invitation not found
// Error: 500 Internal Server Error if deletion fails
func (h *InvitationHandler) DeleteInvitation(w http.ResponseWriter, r *http.Request) {
	invitationID := chi.URLParam(r, "uuid")

	if err := h.invitationService.DeleteInvitation(invitationID); err != nil {
		if errors.Is(err, apperrors.ErrInvitationNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvitationNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete invitation", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
