package validation

import (
	"strings"
	"time"

	"github.com/ba3ai/clarus-backend/internal/api/request"
)

func ValidateCreateInvestor(req request.CreateInvestorRequest) error {
	errors := make(map[string]string)

	// Required field
	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > 100 {
		errors["name"] = "name must be 100 characters or less"
	}

	if strings.TrimSpace(req.Email) == "" {
		errors["email"] = "email is required"
	} else if !strings.Contains(req.Email, "@") {
		errors["email"] = "email must be a valid address"
	}

	if req.ParentID != nil {
		if err := ValidateUUID(*req.ParentID); err != nil {
			errors["parentId"] = "parentId must be a valid UUID"
		}
	}

	if req.JoinDate != "" {
		if _, err := time.Parse("2006-01-02", req.JoinDate); err != nil {
			errors["joinDate"] = "joinDate must be in YYYY-MM-DD format"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateInvestor(req request.UpdateInvestorRequest) error {
	errors := make(map[string]string)

	// Only validate provided fields
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			errors["name"] = "name cannot be empty"
		} else if len(*req.Name) > 100 {
			errors["name"] = "name must be 100 characters or less"
		}
	}

	if req.Email != nil {
		if strings.TrimSpace(*req.Email) == "" {
			errors["email"] = "email cannot be empty"
		} else if !strings.Contains(*req.Email, "@") {
			errors["email"] = "email must be a valid address"
		}
	}

	if req.ParentID != nil && *req.ParentID != "" {
		if err := ValidateUUID(*req.ParentID); err != nil {
			errors["parentId"] = "parentId must be a valid UUID"
		}
	}

	if req.JoinDate != nil && *req.JoinDate != "" {
		if _, err := time.Parse("2006-01-02", *req.JoinDate); err != nil {
			errors["joinDate"] = "joinDate must be in YYYY-MM-DD format"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
