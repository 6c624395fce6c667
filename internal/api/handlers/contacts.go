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

// ContactHandler handles contact-related HTTP requests
type ContactHandler struct {
	contactService *service.ContactService
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

// ContactsPerInvestor handles GET requests to list an investor's contacts.
//
// Endpoint: GET /api/investors/{uuid}/contacts
// Response: 200 OK with array of Contact
// Error: 500 Internal Server Error if retrieval fails
func (h *ContactHandler) ContactsPerInvestor(w http.ResponseWriter, r *http.Request) {
	investorID := chi.URLParam(r, "uuid")

	contacts, err := h.contactService.GetContactsForInvestor(investorID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveContacts.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, contacts)
}

// GetContact handles GET requests to retrieve a single contact by ID.
//
// Endpoint: GET /api/contacts/{uuid}
// Response: 200 OK with Contact
// Error: 404 Not Found if contact not found
// Error: 500 Internal Server Error if retrieval fails
func (h *ContactHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "uuid")

	contact, err := h.contactService.GetContact(contactID)
	if err != nil {
		if errors.Is(err, apperrors.ErrContactNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrContactNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveContacts.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, contact)
}

// CreateContact handles POST requests to create a new contact.
//
// Endpoint: POST /api/contacts
// Request Body: CreateContactRequest (investorId, name, email, phone, role)
// Response: 201 Created with Contact
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if creation fails
func (h *ContactHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateContactRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateContact(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	contact, err := h.contactService.CreateContact(req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvestorNotFound) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvestorNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create contact", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, contact)
}

// UpdateContact handles PUT requests to update an existing contact.
// Only the fields present in the request body are updated.
//
// Endpoint: PUT /api/contacts/{uuid}
// Request Body: UpdateContactRequest
// Response: 200 OK with Contact
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if contact not found
// Error: 500 Internal Server Error if update fails
func (h *ContactHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateContactRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateContact(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	contact, err := h.contactService.UpdateContact(contactID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrContactNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrContactNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update contact", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, contact)
}

// DeleteContact handles DELETE requests to remove a contact.
//
// Endpoint: DELETE /api/contacts/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if contact not found
// Error: 500 Internal Server Error if deletion fails
func (h *ContactHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "uuid")

	if err := h.contactService.DeleteContact(contactID); err != nil {
		if errors.Is(err, apperrors.ErrContactNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrContactNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete contact", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
