package service

import (
	"github.com/google/uuid"

	"github.com/ba3ai/clarus-backend/internal/api/request"
	"github.com/ba3ai/clarus-backend/internal/model"
	"github.com/ba3ai/clarus-backend/internal/repository"
)

// ContactService handles contact business logic for investor accounts.
type ContactService struct {
	contactRepo *repository.ContactRepository
}

// NewContactService creates a new ContactService with the provided repository dependency.
func NewContactService(contactRepo *repository.ContactRepository) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
	}
}

// GetContactsForInvestor retrieves all contacts attached to an investor.
func (s *ContactService) GetContactsForInvestor(investorID string) ([]model.Contact, error) {
	return s.contactRepo.GetContactsOnInvestorID(investorID)
}

// GetContact retrieves a single contact by ID.
func (s *ContactService) GetContact(contactID string) (model.Contact, error) {
	return s.contactRepo.GetContactOnID(contactID)
}

// CreateContact creates a new contact from the request.
func (s *ContactService) CreateContact(req request.CreateContactRequest) (model.Contact, error) {
	contact := model.Contact{
		ID:         uuid.NewString(),
		InvestorID: req.InvestorID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Role:       req.Role,
	}

	if err := s.contactRepo.CreateContact(contact); err != nil {
		return model.Contact{}, err
	}

	return s.contactRepo.GetContactOnID(contact.ID)
}

// UpdateContact applies the provided fields to an existing contact.
// Only non-nil request fields are changed.
func (s *ContactService) UpdateContact(contactID string, req request.UpdateContactRequest) (model.Contact, error) {
	contact, err := s.contactRepo.GetContactOnID(contactID)
	if err != nil {
		return model.Contact{}, err
	}

	if req.Name != nil {
		contact.Name = *req.Name
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.Phone != nil {
		contact.Phone = *req.Phone
	}
	if req.Role != nil {
		contact.Role = *req.Role
	}

	if err := s.contactRepo.UpdateContact(contact); err != nil {
		return model.Contact{}, err
	}

	return contact, nil
}

// DeleteContact removes a contact.
func (s *ContactService) DeleteContact(contactID string) error {
	return s.contactRepo.DeleteContact(contactID)
}
