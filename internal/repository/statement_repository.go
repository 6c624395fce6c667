package repository

import (
	"database/sql"
	"fmt"

	"github.com/ba3ai/clarus-backend/internal/apperrors"
	"github.com/ba3ai/clarus-backend/internal/model"
)

// StatementRepository provides data access methods for the statement table.
// Listing queries never load file content; use GetStatementData for downloads.
type StatementRepository struct {
	db *sql.DB
}

// NewStatementRepository creates a new StatementRepository with the provided database connection.
func NewStatementRepository(db *sql.DB) *StatementRepository {
	return &StatementRepository{db: db}
}

// GetStatementsOnInvestorID retrieves statement metadata for an investor,
// newest reporting period first. File content is not loaded.
func (s *StatementRepository) GetStatementsOnInvestorID(investorID string) ([]model.Statement, error) {
	query := `
		SELECT id, investor_id, period, title, file_name, content_type, published_at
		FROM statement
		WHERE investor_id = ?
		ORDER BY period DESC
	`

	rows, err := s.db.Query(query, investorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query statement table: %w", err)
	}
	defer rows.Close()

	statements := []model.Statement{}

	for rows.Next() {
		var st model.Statement
		var publishedAtStr string

		err := rows.Scan(
			&st.ID,
			&st.InvestorID,
			&st.Period,
			&st.Title,
			&st.FileName,
			&st.ContentType,
			&publishedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan statement table results: %w", err)
		}

		st.PublishedAt, err = ParseTime(publishedAtStr)
		if err != nil {
			return nil, err
		}

		statements = append(statements, st)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statement table: %w", err)
	}

	return statements, nil
}

// GetStatementOnID retrieves statement metadata by ID without file content.
// Returns apperrors.ErrStatementNotFound if no row exists.
func (s *StatementRepository) GetStatementOnID(statementID string) (model.Statement, error) {
	query := `
		SELECT id, investor_id, period, title, file_name, content_type, published_at
		FROM statement
		WHERE id = ?
	`

	var st model.Statement
	var publishedAtStr string

	err := s.db.QueryRow(query, statementID).Scan(
		&st.ID,
		&st.InvestorID,
		&st.Period,
		&st.Title,
		&st.FileName,
		&st.ContentType,
		&publishedAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Statement{}, apperrors.ErrStatementNotFound
	}
	if err != nil {
		return model.Statement{}, fmt.Errorf("failed to query statement: %w", err)
	}

	st.PublishedAt, err = ParseTime(publishedAtStr)
	if err != nil {
		return model.Statement{}, err
	}

	return st, nil
}

// GetStatementData retrieves a statement's file content for download.
// Returns apperrors.ErrStatementNotFound if no row exists.
func (s *StatementRepository) GetStatementData(statementID string) ([]byte, error) {
	var data []byte

	err := s.db.QueryRow("SELECT data FROM statement WHERE id = ?", statementID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrStatementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query statement data: %w", err)
	}

	return data, nil
}

// CreateStatement inserts a new statement row including file content.
func (s *StatementRepository) CreateStatement(statement model.Statement) error {
	query := `
		INSERT INTO statement (id, investor_id, period, title, file_name, content_type, data)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query, statement.ID, statement.InvestorID, statement.Period,
		statement.Title, statement.FileName, statement.ContentType, statement.Data)
	if err != nil {
		return fmt.Errorf("failed to insert statement: %w", err)
	}
	return nil
}

// UpdateStatement updates a statement's period and title.
// Returns apperrors.ErrStatementNotFound if no row was affected.
func (s *StatementRepository) UpdateStatement(statement model.Statement) error {
	result, err := s.db.Exec(
		"UPDATE statement SET period = ?, title = ? WHERE id = ?",
		statement.Period, statement.Title, statement.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update statement: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrStatementNotFound
	}

	return nil
}

// DeleteStatement removes a statement row.
// Returns apperrors.ErrStatementNotFound if no row was affected.
func (s *StatementRepository) DeleteStatement(statementID string) error {
	result, err := s.db.Exec("DELETE FROM statement WHERE id = ?", statementID)
	if err != nil {
		return fmt.Errorf("failed to delete statement: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrStatementNotFound
	}

	return nil
}
