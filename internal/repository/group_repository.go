package repository

import (
	"database/sql"
	"fmt"

	"github.com/ba3ai/clarus-backend/internal/apperrors"
	"github.com/ba3ai/clarus-backend/internal/model"
)

// GroupRepository provides data access methods for the group_member table,
// which maps group administrators to the member investors they oversee.
type GroupRepository struct {
	db *sql.DB
}

// NewGroupRepository creates a new GroupRepository with the provided database connection.
func NewGroupRepository(db *sql.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// GetGroupMembers retrieves all members of the given administrator's group,
// joined against the investor table for display names.
// Returns an empty slice when the investor administers no group.
func (s *GroupRepository) GetGroupMembers(adminInvestorID string) ([]model.GroupMember, error) {
	query := `
		SELECT gm.member_investor_id, i.name
		FROM group_member gm
		JOIN investor i ON i.id = gm.member_investor_id
		WHERE gm.admin_investor_id = ?
		ORDER BY i.name
	`

	rows, err := s.db.Query(query, adminInvestorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query group_member table: %w", err)
	}
	defer rows.Close()

	members := []model.GroupMember{}

	for rows.Next() {
		var m model.GroupMember

		err := rows.Scan(
			&m.InvestorID,
			&m.Name,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group_member table results: %w", err)
		}

		members = append(members, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group_member table: %w", err)
	}

	return members, nil
}

// AddGroupMember links a member investor under a group administrator.
// Returns apperrors.ErrDuplicateEntry when the membership already exists.
func (s *GroupRepository) AddGroupMember(adminInvestorID, memberInvestorID string) error {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(1) FROM group_member WHERE admin_investor_id = ? AND member_investor_id = ?",
		adminInvestorID, memberInvestorID,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to query group_member table: %w", err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateEntry
	}

	query := `
		INSERT INTO group_member (admin_investor_id, member_investor_id)
		VALUES (?, ?)
	`

	_, err = s.db.Exec(query, adminInvestorID, memberInvestorID)
	if err != nil {
		return fmt.Errorf("failed to insert group member: %w", err)
	}
	return nil
}

// RemoveGroupMember unlinks a member investor from a group administrator.
// Removing a non-member is not an error; the membership simply does not exist.
func (s *GroupRepository) RemoveGroupMember(adminInvestorID, memberInvestorID string) error {
	query := `
		DELETE FROM group_member
		WHERE admin_investor_id = ? AND member_investor_id = ?
	`

	_, err := s.db.Exec(query, adminInvestorID, memberInvestorID)
	if err != nil {
		return fmt.Errorf("failed to delete group member: %w", err)
	}
	return nil
}

// IsGroupAdmin reports whether the investor administers at least one member.
func (s *GroupRepository) IsGroupAdmin(investorID string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(1) FROM group_member WHERE admin_investor_id = ?",
		investorID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to query group_member table: %w", err)
	}
	return count > 0, nil
}
