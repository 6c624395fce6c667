package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ba3ai/clarus-backend/internal/apperrors"
	"github.com/ba3ai/clarus-backend/internal/model"
)

// InvitationRepository provides data access methods for the invitation table.
type InvitationRepository struct {
	db *sql.DB
}

// NewInvitationRepository creates a new InvitationRepository with the provided database connection.
func NewInvitationRepository(db *sql.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

// GetInvitations retrieves all invitations, newest first.
func (s *InvitationRepository) GetInvitations() ([]model.Invitation, error) {
	query := `
		SELECT id, email, investor_id, token, status, created_at, expires_at, accepted_at
		FROM invitation
		ORDER BY created_at DESC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query invitation table: %w", err)
	}
	defer rows.Close()

	invitations := []model.Invitation{}

	for rows.Next() {
		invitation, err := scanInvitation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invitation table results: %w", err)
		}
		invitations = append(invitations, invitation)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invitation table: %w", err)
	}

	return invitations, nil
}

// GetInvitationOnID retrieves a single invitation by ID.
// Returns apperrors.ErrInvitationNotFound if no row exists.
func (s *InvitationRepository) GetInvitationOnID(invitationID string) (model.Invitation, error) {
	query := `
		SELECT id, email, investor_id, token, status, created_at, expires_at, accepted_at
		FROM invitation
		WHERE id = ?
	`

	invitation, err := scanInvitation(s.db.QueryRow(query, invitationID))
	if err == sql.ErrNoRows {
		return model.Invitation{}, apperrors.ErrInvitationNotFound
	}
	if err != nil {
		return model.Invitation{}, fmt.Errorf("failed to query invitation: %w", err)
	}

	return invitation, nil
}

// CreateInvitation inserts a new invitation row.
func (s *InvitationRepository) CreateInvitation(invitation model.Invitation) error {
	var investorID any
	if invitation.InvestorID != nil {
		investorID = *invitation.InvestorID
	}

	query := `
		INSERT INTO invitation (id, email, investor_id, token, status, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query, invitation.ID, invitation.Email, investorID,
		invitation.Token, invitation.Status, invitation.ExpiresAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert invitation: %w", err)
	}
	return nil
}

// MarkAccepted transitions a pending invitation to accepted.
// Returns apperrors.ErrInvitationNotPending if the invitation is not pending.
func (s *InvitationRepository) MarkAccepted(invitationID string, acceptedAt time.Time) error {
	result, err := s.db.Exec(
		"UPDATE invitation SET status = ?, accepted_at = ? WHERE id = ? AND status = ?",
		model.InvitationAccepted, acceptedAt.UTC().Format(time.RFC3339), invitationID, model.InvitationPending,
	)
	if err != nil {
		return fmt.Errorf("failed to update invitation: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrInvitationNotPending
	}

	return nil
}

// DeleteInvitation removes an invitation row.
// Returns apperrors.ErrInvitationNotFound if no row was affected.
func (s *InvitationRepository) DeleteInvitation(invitationID string) error {
	result, err := s.db.Exec("DELETE FROM invitation WHERE id = ?", invitationID)
	if err != nil {
		return fmt.Errorf("failed to delete invitation: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrInvitationNotFound
	}

	return nil
}

func scanInvitation(row scanner) (model.Invitation, error) {
	var inv model.Invitation
	var investorID sql.NullString
	var createdAtStr, expiresAtStr string
	var acceptedAtStr sql.NullString

	err := row.Scan(
		&inv.ID,
		&inv.Email,
		&investorID,
		&inv.Token,
		&inv.Status,
		&createdAtStr,
		&expiresAtStr,
		&acceptedAtStr,
	)
	if err != nil {
		return model.Invitation{}, err
	}

	if investorID.Valid {
		inv.InvestorID = &investorID.String
	}

	inv.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Invitation{}, err
	}
	inv.ExpiresAt, err = ParseTime(expiresAtStr)
	if err != nil {
		return model.Invitation{}, err
	}
	if acceptedAtStr.Valid {
		acceptedAt, err := ParseTime(acceptedAtStr.String)
		if err != nil {
			return model.Invitation{}, err
		}
		inv.AcceptedAt = &acceptedAt
	}

	return inv, nil
}
