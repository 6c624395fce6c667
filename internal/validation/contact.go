package validation

import (
	"strings"

	"github.com/ba3ai/clarus-backend/internal/api/request"
)

func ValidateCreateContact(req request.CreateContactRequest) error {
	if err := ValidateUUID(req.InvestorID); err != nil {
		return err
	}

	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > 100 {
		errors["name"] = "name must be 100 characters or less"
	}

	if req.Email != "" && !strings.Contains(req.Email, "@") {
		errors["email"] = "email must be a valid address"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateContact(req request.UpdateContactRequest) error {
	errors := make(map[string]string)

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			errors["name"] = "name cannot be empty"
		} else if len(*req.Name) > 100 {
			errors["name"] = "name must be 100 characters or less"
		}
	}

	if req.Email != nil && *req.Email != "" && !strings.Contains(*req.Email, "@") {
		errors["email"] = "email must be a valid address"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
