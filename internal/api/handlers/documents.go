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

// maxUploadBytes caps document uploads at 25 MiB.
const maxUploadBytes = 25 << 20

// DocumentHandler handles document and folder HTTP requests
type DocumentHandler struct {
	documentService *service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

// DocumentTree handles GET requests for an investor's folder tree.
// The root node has a nil folder and holds documents that belong to no folder.
//
// Endpoint: GET /api/investors/{uuid}/documents/tree
// Response: 200 OK with DocumentTreeNode
// Error: 500 Internal Server Error if retrieval fails
func (h *DocumentHandler) DocumentTree(w http.ResponseWriter, r *http.Request) {
	investorID := chi.URLParam(r, "uuid")

	tree, err := h.documentService.GetDocumentTree(investorID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveDocuments.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, tree)
}

// DocumentsPerInvestor handles GET requests for an investor's documents as a flat list.
//
// Endpoint: GET /api/investors/{uuid}/documents
// Response: 200 OK with array of Document
// Error: 500 Internal Server Error if retrieval fails
func (h *DocumentHandler) DocumentsPerInvestor(w http.ResponseWriter, r *http.Request) {
	investorID := chi.URLParam(r, "uuid")

	documents, err := h.documentService.GetDocumentsForInvestor(investorID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveDocuments.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, documents)
}

// UploadDocument handles multipart POST requests to store a document.
// The multipart form carries the file under "file" and an optional "folderId" field.
//
// Endpoint: POST /api/investors/{uuid}/documents
// Response: 201 Created with Document metadata
// Error: 400 Bad Request if the form or folder ID is invalid
// Error: 500 Internal Server Error if storage fails
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	investorID := chi.URLParam(r, "uuid")

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid multipart form", err.Error())
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

	var folderID *string
	if v := r.FormValue("folderId"); v != "" {
		if err := validation.ValidateUUID(v); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid folder ID", err.Error())
			return
		}
		folderID = &v
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	document, err := h.documentService.UploadDocument(investorID, header.Filename, contentType, folderID, data)
	if err != nil {
		if errors.Is(err, apperrors.ErrFolderNotFound) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrFolderNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to store document", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, document)
}

// DownloadDocument handles GET requests to stream a document's contents.
//
// Endpoint: GET /api/documents/{uuid}/download
// Response: 200 OK with the document bytes and a Content-Disposition header
// Error: 404 Not Found if document not found
// Error: 500 Internal Server Error if retrieval fails
func (h *DocumentHandler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "uuid")

	document, err := h.documentService.GetDocumentWithData(documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDocumentNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrDocumentNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveDocuments.Error(), err.Error())
		return
	}

	w.Header().Set("Content-Type", document.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", document.Name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(document.Data); err != nil {
		// Headers are already out, nothing left to do but log.
		return
	}
}

// UpdateDocument handles PUT requests to rename or move a document.
//
// Endpoint: PUT /api/documents/{uuid}
// Request Body: UpdateDocumentRequest (name, folderId, toRoot)
// Response: 200 OK with Document
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if document or target folder not found
// Error: 500 Internal Server Error if update fails
func (h *DocumentHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateDocumentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateDocument(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	document, err := h.documentService.UpdateDocument(documentID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDocumentNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrDocumentNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrFolderNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrFolderNotFound.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to update document", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, document)
}

// DeleteDocument handles DELETE requests to remove a document.
//
// Endpoint: DELETE /api/documents/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if document not found
// Error: 500 Internal Server Error if deletion fails
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "uuid")

	if err := h.documentService.DeleteDocument(documentID); err != nil {
		if errors.Is(err, apperrors.ErrDocumentNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrDocumentNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete document", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// CreateFolder handles POST requests to create a document folder.
//
// Endpoint: POST /api/folders
// Request Body: CreateFolderRequest (investorId, parentId, name)
// Response: 201 Created with DocumentFolder
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if creation fails
func (h *DocumentHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateFolderRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateFolder(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	folder, err := h.documentService.CreateFolder(req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvestorNotFound):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvestorNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrFolderNotFound):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrFolderNotFound.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to create folder", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, folder)
}

// DeleteFolder handles DELETE requests to remove a folder.
// Documents inside the folder fall back to the root of the tree.
//
// Endpoint: DELETE /api/folders/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if folder not found
// Error: 500 Internal Server Error if deletion fails
func (h *DocumentHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	folderID := chi.URLParam(r, "uuid")

	if err := h.documentService.DeleteFolder(folderID); err != nil {
		if errors.Is(err, apperrors.ErrFolderNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrFolderNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete folder", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
