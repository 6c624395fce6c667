package repository

import (
	"database/sql"
	"fmt"

	"github.com/ba3ai/clarus-backend/internal/apperrors"
	"github.com/ba3ai/clarus-backend/internal/model"
)

// PreferenceRepository provides data access methods for the user_preference
// table, the server-side home of the dashboard's "last selected" hints.
type PreferenceRepository struct {
	db *sql.DB
}

// NewPreferenceRepository creates a new PreferenceRepository with the provided database connection.
func NewPreferenceRepository(db *sql.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// GetPreference retrieves a stored preference value for a user and name.
// Returns apperrors.ErrPreferenceNotFound if none is stored.
func (s *PreferenceRepository) GetPreference(userID, name string) (model.Preference, error) {
	query := `
		SELECT user_id, name, value
		FROM user_preference
		WHERE user_id = ? AND name = ?
	`

	var p model.Preference

	err := s.db.QueryRow(query, userID, name).Scan(
		&p.UserID,
		&p.Name,
		&p.Value,
	)
	if err == sql.ErrNoRows {
		return model.Preference{}, apperrors.ErrPreferenceNotFound
	}
	if err != nil {
		return model.Preference{}, fmt.Errorf("failed to query user_preference table: %w", err)
	}

	return p, nil
}

// SetPreference stores or overwrites a preference value.
func (s *PreferenceRepository) SetPreference(pref model.Preference) error {
	query := `
		INSERT INTO user_preference (user_id, name, value)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, name) DO UPDATE SET value = excluded.value
	`

	_, err := s.db.Exec(query, pref.UserID, pref.Name, pref.Value)
	if err != nil {
		return fmt.Errorf("failed to upsert user preference: %w", err)
	}
	return nil
}

// ClearPreference removes a stored preference. Clearing a preference that
// does not exist is not an error.
func (s *PreferenceRepository) ClearPreference(userID, name string) error {
	_, err := s.db.Exec(
		"DELETE FROM user_preference WHERE user_id = ? AND name = ?",
		userID, name,
	)
	if err != nil {
		return fmt.Errorf("failed to delete user preference: %w", err)
	}
	return nil
}
