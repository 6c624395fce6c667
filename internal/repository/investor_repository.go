package repository

import (
	"database/sql"
	"fmt"

	"github.com/ba3ai/clarus-backend/internal/apperrors"
	"github.com/ba3ai/clarus-backend/internal/model"
)

// InvestorRepository provides data access methods for the investor table.
// It handles top-level investors as well as dependent accounts linked under
// a parent investor.
type InvestorRepository struct {
	db *sql.DB
}

// NewInvestorRepository creates a new InvestorRepository with the provided database connection.
func NewInvestorRepository(db *sql.DB) *InvestorRepository {
	return &InvestorRepository{db: db}
}

// GetInvestors retrieves investors from the database based on filter criteria.
// The filter allows control over archived accounts and dependent accounts.
// Returns an empty slice if no investors match the filter criteria.
func (s *InvestorRepository) GetInvestors(filter model.InvestorFilter) ([]model.Investor, error) {
	query := `
          SELECT id, name, email, parent_id, join_date, is_archived
          FROM investor
          WHERE 1=1
      `
	var args []any

	if !filter.IncludeArchived {
		query += " AND is_archived = ?"
		args = append(args, 0)
	}

	if filter.ParentID != "" {
		query += " AND parent_id = ?"
		args = append(args, filter.ParentID)
	} else if !filter.IncludeDependents {
		query += " AND parent_id IS NULL"
	}

	query += " ORDER BY name"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query investor table: %w", err)
	}
	defer rows.Close()

	investors := []model.Investor{}

	for rows.Next() {
		investor, err := scanInvestor(rows)
		if err != nil {
			return nil, err
		}
		investors = append(investors, investor)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investor table: %w", err)
	}

	return investors, nil
}

// GetInvestorOnID retrieves a single investor by ID.
// Returns apperrors.ErrInvestorNotFound if no row exists.
func (s *InvestorRepository) GetInvestorOnID(investorID string) (model.Investor, error) {
	query := `
          SELECT id, name, email, parent_id, join_date, is_archived
          FROM investor
          WHERE id = ?
      `
	row := s.db.QueryRow(query, investorID)

	investor, err := scanInvestor(row)
	if err == sql.ErrNoRows {
		return model.Investor{}, apperrors.ErrInvestorNotFound
	}
	if err != nil {
		return model.Investor{}, fmt.Errorf("failed to query investor: %w", err)
	}

	return investor, nil
}

// CreateInvestor inserts a new investor row.
func (s *InvestorRepository) CreateInvestor(investor model.Investor) error {
	query := `
		INSERT INTO investor (id, name, email, parent_id, join_date, is_archived)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	var parentID any
	if investor.ParentID != nil {
		parentID = *investor.ParentID
	}
	var joinDate any
	if investor.JoinDate != nil {
		joinDate = investor.JoinDate.UTC().Format("2006-01-02")
	}

	_, err := s.db.Exec(query, investor.ID, investor.Name, investor.Email, parentID, joinDate, investor.IsArchived)
	if err != nil {
		return fmt.Errorf("failed to insert investor: %w", err)
	}
	return nil
}

// UpdateInvestor updates an existing investor row with the full struct contents.
// Returns apperrors.ErrInvestorNotFound if no row was affected.
func (s *InvestorRepository) UpdateInvestor(investor model.Investor) error {
	query := `
		UPDATE investor
		SET name = ?, email = ?, parent_id = ?, join_date = ?, is_archived = ?
		WHERE id = ?
	`

	var parentID any
	if investor.ParentID != nil {
		parentID = *investor.ParentID
	}
	var joinDate any
	if investor.JoinDate != nil {
		joinDate = investor.JoinDate.UTC().Format("2006-01-02")
	}

	result, err := s.db.Exec(query, investor.Name, investor.Email, parentID, joinDate, investor.IsArchived, investor.ID)
	if err != nil {
		return fmt.Errorf("failed to update investor: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrInvestorNotFound
	}

	return nil
}

// DeleteInvestor removes an investor row.
// Returns apperrors.ErrInvestorNotFound if no row was affected.
func (s *InvestorRepository) DeleteInvestor(investorID string) error {
	result, err := s.db.Exec("DELETE FROM investor WHERE id = ?", investorID)
	if err != nil {
		return fmt.Errorf("failed to delete investor: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrInvestorNotFound
	}

	return nil
}

// scanner abstracts sql.Row and sql.Rows for shared scan logic.
type scanner interface {
	Scan(dest ...any) error
}

func scanInvestor(row scanner) (model.Investor, error) {
	var i model.Investor
	var parentID sql.NullString
	var joinDate sql.NullString

	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Email,
		&parentID,
		&joinDate,
		&i.IsArchived,
	)
	if err != nil {
		return model.Investor{}, err
	}

	if parentID.Valid {
		i.ParentID = &parentID.String
	}
	if joinDate.Valid && joinDate.String != "" {
		parsed, err := ParseTime(joinDate.String)
		if err != nil {
			return model.Investor{}, fmt.Errorf("failed to parse join date: %w", err)
		}
		i.JoinDate = &parsed
	}

	return i, nil
}
