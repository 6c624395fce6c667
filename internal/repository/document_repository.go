package repository

import (
	"database/sql"
	"fmt"

	"github.com/ba3ai/clarus-backend/internal/apperrors"
	"github.com/ba3ai/clarus-backend/internal/model"
)

// DocumentRepository provides data access methods for the document and
// document_folder tables. Listing queries never load file content; use
// GetDocumentData for downloads.
type DocumentRepository struct {
	db *sql.DB
}

// NewDocumentRepository creates a new DocumentRepository with the provided database connection.
func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// GetFoldersOnInvestorID retrieves all document folders for an investor.
func (s *DocumentRepository) GetFoldersOnInvestorID(investorID string) ([]model.DocumentFolder, error) {
	query := `
		SELECT id, investor_id, parent_id, name
		FROM document_folder
		WHERE investor_id = ?
		ORDER BY name
	`

	rows, err := s.db.Query(query, investorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query document_folder table: %w", err)
	}
	defer rows.Close()

	folders := []model.DocumentFolder{}

	for rows.Next() {
		var f model.DocumentFolder
		var parentID sql.NullString

		err := rows.Scan(
			&f.ID,
			&f.InvestorID,
			&parentID,
			&f.Name,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document_folder table results: %w", err)
		}

		if parentID.Valid {
			f.ParentID = &parentID.String
		}

		folders = append(folders, f)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document_folder table: %w", err)
	}

	return folders, nil
}

// CreateFolder inserts a new document folder row.
func (s *DocumentRepository) CreateFolder(folder model.DocumentFolder) error {
	var parentID any
	if folder.ParentID != nil {
		parentID = *folder.ParentID
	}

	_, err := s.db.Exec(
		"INSERT INTO document_folder (id, investor_id, parent_id, name) VALUES (?, ?, ?, ?)",
		folder.ID, folder.InvestorID, parentID, folder.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document folder: %w", err)
	}
	return nil
}

// DeleteFolder removes a document folder row. Subfolders cascade; documents
// in the folder fall back to the root via ON DELETE SET NULL.
// Returns apperrors.ErrFolderNotFound if no row was affected.
func (s *DocumentRepository) DeleteFolder(folderID string) error {
	result, err := s.db.Exec("DELETE FROM document_folder WHERE id = ?", folderID)
	if err != nil {
		return fmt.Errorf("failed to delete document folder: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrFolderNotFound
	}

	return nil
}

// GetDocumentsOnInvestorID retrieves document metadata for an investor.
// File content is not loaded.
func (s *DocumentRepository) GetDocumentsOnInvestorID(investorID string) ([]model.Document, error) {
	query := `
		SELECT id, investor_id, folder_id, name, content_type, size_bytes, uploaded_at
		FROM document
		WHERE investor_id = ?
		ORDER BY uploaded_at DESC
	`

	rows, err := s.db.Query(query, investorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query document table: %w", err)
	}
	defer rows.Close()

	documents := []model.Document{}

	for rows.Next() {
		var d model.Document
		var folderID sql.NullString
		var uploadedAtStr string

		err := rows.Scan(
			&d.ID,
			&d.InvestorID,
			&folderID,
			&d.Name,
			&d.ContentType,
			&d.SizeBytes,
			&uploadedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document table results: %w", err)
		}

		if folderID.Valid {
			d.FolderID = &folderID.String
		}

		d.UploadedAt, err = ParseTime(uploadedAtStr)
		if err != nil {
			return nil, err
		}

		documents = append(documents, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document table: %w", err)
	}

	return documents, nil
}

// GetDocumentOnID retrieves document metadata by ID without file content.
// Returns apperrors.ErrDocumentNotFound if no row exists.
func (s *DocumentRepository) GetDocumentOnID(documentID string) (model.Document, error) {
	query := `
		SELECT id, investor_id, folder_id, name, content_type, size_bytes, uploaded_at
		FROM document
		WHERE id = ?
	`

	var d model.Document
	var folderID sql.NullString
	var uploadedAtStr string

	err := s.db.QueryRow(query, documentID).Scan(
		&d.ID,
		&d.InvestorID,
		&folderID,
		&d.Name,
		&d.ContentType,
		&d.SizeBytes,
		&uploadedAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Document{}, apperrors.ErrDocumentNotFound
	}
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to query document: %w", err)
	}

	if folderID.Valid {
		d.FolderID = &folderID.String
	}

	d.UploadedAt, err = ParseTime(uploadedAtStr)
	if err != nil {
		return model.Document{}, err
	}

	return d, nil
}

// GetDocumentData retrieves a document's file content for download.
// Returns apperrors.ErrDocumentNotFound if no row exists.
func (s *DocumentRepository) GetDocumentData(documentID string) ([]byte, error) {
	var data []byte

	err := s.db.QueryRow("SELECT data FROM document WHERE id = ?", documentID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document data: %w", err)
	}

	return data, nil
}

// CreateDocument inserts a new document row including file content.
func (s *DocumentRepository) CreateDocument(document model.Document) error {
	var folderID any
	if document.FolderID != nil {
		folderID = *document.FolderID
	}

	query := `
		INSERT INTO document (id, investor_id, folder_id, name, content_type, size_bytes, data)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query, document.ID, document.InvestorID, folderID, document.Name,
		document.ContentType, document.SizeBytes, document.Data)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

// UpdateDocument updates a document's name and folder placement.
// Returns apperrors.ErrDocumentNotFound if no row was affected.
func (s *DocumentRepository) UpdateDocument(document model.Document) error {
	var folderID any
	if document.FolderID != nil {
		folderID = *document.FolderID
	}

	result, err := s.db.Exec(
		"UPDATE document SET name = ?, folder_id = ? WHERE id = ?",
		document.Name, folderID, document.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrDocumentNotFound
	}

	return nil
}

// DeleteDocument removes a document row.
// Returns apperrors.ErrDocumentNotFound if no row was affected.
func (s *DocumentRepository) DeleteDocument(documentID string) error {
	result, err := s.db.Exec("DELETE FROM document WHERE id = ?", documentID)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrDocumentNotFound
	}

	return nil
}
