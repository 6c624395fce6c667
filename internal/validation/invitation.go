package validation

import (
	"strings"

	"github.com/ba3ai/clarus-backend/internal/api/request"
)

func ValidateCreateInvitation(req request.CreateInvitationRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Email) == "" {
		errors["email"] = "email is required"
	} else if !strings.Contains(req.Email, "@") {
		errors["email"] = "email must be a valid address"
	}

	if req.InvestorID != nil {
		if err := ValidateUUID(*req.InvestorID); err != nil {
			errors["investorId"] = "investorId must be a valid UUID"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateAcceptInvitation(req request.AcceptInvitationRequest) error {
	if strings.TrimSpace(req.Token) == "" {
		return &Error{Fields: map[string]string{"token": "token is required"}}
	}
	return nil
}
