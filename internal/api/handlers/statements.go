package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ba3ai/clarus-backend/internal/api/request"
	"github.com/ba3ai/clarus-backend/internal/api/response"
	"github.com/ba3ai/clarus-backend/internal/apperrors"
	"github.com/ba3ai/clarus-backend/internal/service"
	"github.com/ba3ai/clarus-backend/internal/validation"
)

// StatementHandler handles statement-related HTTP requests
type StatementHandler struct {
	statementService *service.StatementService
}

// NewStatementHandler creates a new StatementHandler
func NewStatementHandler(statementService *service.StatementService) *StatementHandler {
	return &StatementHandler{
		statementService: statementService,
	}
}

// StatementsPerInvestor handles GET requests to list an investor's statements.
//
// Endpoint: GET /api/investors/{uuid}/statements
// Response: 200 OK with array of Statement metadata
// Error: 500 Internal Server Error if retrieval fails
func (h *StatementHandler) StatementsPerInvestor(w http.ResponseWriter, r *http.Request) {
	investorID := chi.URLParam(r, "uuid")

	statements, err := h.statementService.GetStatementsForInvestor(investorID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveStatements.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, statements)
}

// ExportStatementsCSV handles GET requests to export an investor's statement
// list as a CSV file.
//
// Endpoint: GET /api/investors/{uuid}/statements/export
// Response: 200 OK with text/csv body and a Content-Disposition header
// Error: 500 Internal Server Error if export fails
func (h *StatementHandler) ExportStatementsCSV(w http.ResponseWriter, r *http.Request) {
	investorID := chi.URLParam(r, "uuid")

	data, err := h.statementService.ExportCSV(investorID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to export statements", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="statements.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck
}

// PublishStatement handles multipart POST requests to publish a statement.
// The multipart form carries the file under "file" plus "period" and "title" fields.
//
// Endpoint: POST /api/investors/{uuid}/statements
// Response: 201 Created with Statement metadata
// Error: 400 Bad Request if the form, period, or title is invalid
// Error: 500 Internal Server Error if storage fails
func (h *StatementHandler) PublishStatement(w http.ResponseWriter, r *http.Request) {
	investorID := chi.URLParam(r, "uuid")

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid multipart form", err.Error())
		return
	}

	period := r.FormValue("period")
	if err := validation.ValidatePeriod(period); err != nil {
		response.RespondError(w, http.StatusBadRequest, "period must be in YYYY-MM format", err.Error())
		return
	}

	title := r.FormValue("title")
	if title == "" {
		response.RespondError(w, http.StatusBadRequest, "title is required", "")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "file field is required", err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to read uploaded file", err.Error())
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	statement, err := h.statementService.PublishStatement(investorID, period, title, header.Filename, contentType, data)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvestorNotFound) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvestorNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to publish statement", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, statement)
}

// DownloadStatement handles GET requests to stream a statement's contents.
//
// Endpoint: GET /api/statements/{uuid}/download
// Response: 200 OK with the statement bytes and a Content-Disposition header
// Error: 404 Not Found if statement not found
// Error: 500 Internal Server Error if retrieval fails
func (h *StatementHandler) DownloadStatement(w http.ResponseWriter, r *http.Request) {
	statementID := chi.URLParam(r, "uuid")

	statement, err := h.statementService.GetStatementWithData(statementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStatementNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrStatementNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveStatements.Error(), err.Error())
		return
	}

	w.Header().Set("Content-Type", statement.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", statement.FileName))
	w.WriteHeader(http.StatusOK)
	w.Write(statement.Data) //nolint:errcheck
}

// UpdateStatement handles PUT requests to retitle or re-period a statement.
//
// Endpoint: PUT /api/statements/{uuid}
// Request Body: UpdateStatementRequest (period, title)
// Response: 200 OK with Statement
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if statement not found
// Error: 500 Internal Server Error if update fails
func (h *StatementHandler) UpdateStatement(w http.ResponseWriter, r *http.Request) {
	statementID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateStatementRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateStatement(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	statement, err := h.statementService.UpdateStatement(statementID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrStatementNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrStatementNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update statement", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, statement)
}

// DeleteStatement handles DELETE requests to remove a statement.
//
// Endpoint: DELETE /api/statements/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if statement not found
// Error: 500 Internal Server Error if deletion fails
func (h *StatementHandler) DeleteStatement(w http.ResponseWriter, r *http.Request) {
	statementID := chi.URLParam(r, "uuid")

	if err := h.statementService.DeleteStatement(statementID); err != nil {
		if errors.Is(err, apperrors.ErrStatementNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrStatementNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete statement", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
