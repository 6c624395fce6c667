package repository

import (
	"database/sql"
	"fmt"

	"github.com/ba3ai/clarus-backend/internal/apperrors"
	"github.com/ba3ai/clarus-backend/internal/model"
)

// ContactRepository provides data access methods for the contact table.
type ContactRepository struct {
	db *sql.DB
}

// NewContactRepository creates a new ContactRepository with the provided database connection.
func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// GetContactsOnInvestorID retrieves all contacts for an investor, ordered by name.
// Returns an empty slice if the investor has no contacts.
func (s *ContactRepository) GetContactsOnInvestorID(investorID string) ([]model.Contact, error) {
	query := `
		SELECT id, investor_id, name, email, phone, role, created_at
		FROM contact
		WHERE investor_id = ?
		ORDER BY name
	`

	rows, err := s.db.Query(query, investorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query contact table: %w", err)
	}
	defer rows.Close()

	contacts := []model.Contact{}

	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact table results: %w", err)
		}
		contacts = append(contacts, contact)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contact table: %w", err)
	}

	return contacts, nil
}

// GetContactOnID retrieves a single contact by ID.
// Returns apperrors.ErrContactNotFound if no row exists.
func (s *ContactRepository) GetContactOnID(contactID string) (model.Contact, error) {
	query := `
		SELECT id, investor_id, name, email, phone, role, created_at
		FROM contact
		WHERE id = ?
	`

	contact, err := scanContact(s.db.QueryRow(query, contactID))
	if err == sql.ErrNoRows {
		return model.Contact{}, apperrors.ErrContactNotFound
	}
	if err != nil {
		return model.Contact{}, fmt.Errorf("failed to query contact: %w", err)
	}

	return contact, nil
}

// CreateContact inserts a new contact row.
func (s *ContactRepository) CreateContact(contact model.Contact) error {
	query := `
		INSERT INTO contact (id, investor_id, name, email, phone, role)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query, contact.ID, contact.InvestorID, contact.Name, contact.Email, contact.Phone, contact.Role)
	if err != nil {
		return fmt.Errorf("failed to insert contact: %w", err)
	}
	return nil
}

// UpdateContact updates an existing contact row.
// Returns apperrors.ErrContactNotFound if no row was affected.
func (s *ContactRepository) UpdateContact(contact model.Contact) error {
	query := `
		UPDATE contact
		SET name = ?, email = ?, phone = ?, role = ?
		WHERE id = ?
	`

	result, err := s.db.Exec(query, contact.Name, contact.Email, contact.Phone, contact.Role, contact.ID)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrContactNotFound
	}

	return nil
}

// DeleteContact removes a contact row.
// Returns apperrors.ErrContactNotFound if no row was affected.
func (s *ContactRepository) DeleteContact(contactID string) error {
	result, err := s.db.Exec("DELETE FROM contact WHERE id = ?", contactID)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrContactNotFound
	}

	return nil
}

func scanContact(row scanner) (model.Contact, error) {
	var c model.Contact
	var email, phone, role sql.NullString
	var createdAtStr string

	err := row.Scan(
		&c.ID,
		&c.InvestorID,
		&c.Name,
		&email,
		&phone,
		&role,
		&createdAtStr,
	)
	if err != nil {
		return model.Contact{}, err
	}

	c.Email = email.String
	c.Phone = phone.String
	c.Role = role.String

	c.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Contact{}, err
	}

	return c, nil
}
