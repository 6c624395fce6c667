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

// GroupHandler handles group membership HTTP requests
type GroupHandler struct {
	groupService *service.GroupService
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupService *service.GroupService) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
	}
}

// MyGroupResponse reports whether the caller administers a group and, if so,
// who its members are. A caller with no members gets is_group_admin false and
// an empty members list; that is an ordinary answer, not an error.
type MyGroupResponse struct {
	IsGroupAdmin bool                `json:"is_group_admin"`
	Members      []model.GroupMember `json:"members"`
}

// MyGroup handles GET requests for the caller's own group membership.
//
// Endpoint: GET /api/group-admin/my-group
// Response: 200 OK with MyGroupResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *GroupHandler) MyGroup(w http.ResponseWriter, r *http.Request) {
	callerID := custommiddleware.CallerID(r.Context())

	group, err := h.groupService.GetGroup(callerID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve group", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, MyGroupResponse{
		IsGroupAdmin: len(group.Members) > 0,
		Members:      group.Members,
	})
}

// GroupMembers handles GET requests to list a group admin's members.
//
// Endpoint: GET /api/admin/group-admins/{uuid}/members
// Response: 200 OK with array of GroupMember
// Error: 500 Internal Server Error if retrieval fails
func (h *GroupHandler) GroupMembers(w http.ResponseWriter, r *http.Request) {
	adminID := chi.URLParam(r, "uuid")

	group, err := h.groupService.GetGroup(adminID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve group members", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, group.Members)
}

// AddGroupMember handles POST requests to link a member under a group admin.
//
// Endpoint: POST /api/admin/group-admins/{uuid}/members
// Request Body: AddGroupMemberRequest (investorId)
// Response: 201 Created
// Error: 400 Bad Request if validation fails or either investor does not exist
// Error: 409 Conflict if the member is already linked
// Error: 500 Internal Server Error if the link fails
func (h *GroupHandler) AddGroupMember(w http.ResponseWriter, r *http.Request) {
	adminID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.AddGroupMemberRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUUID(req.InvestorID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "investorId must be a valid UUID", err.Error())
		return
	}

	if err := h.groupService.AddMember(adminID, req.InvestorID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvestorNotFound):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvestorNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrDuplicateEntry):
			response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateEntry.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to add group member", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, nil)
}

// RemoveGroupMember handles DELETE requests to unlink a member from a group admin.
// Unlinking a non-member succeeds; the membership simply does not exist.
//
// Endpoint: DELETE /api/admin/group-admins/{uuid}/members/{memberId}
// Response: 204 No Content
// Error: 400 Bad Request if the member ID is invalid
// Error: 500 Internal Server Error if the unlink fails
func (h *GroupHandler) RemoveGroupMember(w http.ResponseWriter, r *http.Request) {
	adminID := chi.URLParam(r, "uuid")
	memberID := chi.URLParam(r, "memberId")

	if err := validation.ValidateUUID(memberID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid member ID", err.Error())
		return
	}

	if err := h.groupService.RemoveMember(adminID, memberID); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to remove group member", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
