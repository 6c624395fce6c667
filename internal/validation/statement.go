package validation

import (
	"strings"

	"github.com/ba3ai/clarus-backend/internal/api/request"
)

func ValidateUpdateStatement(req request.UpdateStatementRequest) error {
	errors := make(map[string]string)

	if req.Period != nil {
		if err := ValidatePeriod(*req.Period); err != nil {
			errors["period"] = "period must be in YYYY-MM format"
		}
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			errors["title"] = "title cannot be empty"
		} else if len(*req.Title) > 255 {
			errors["title"] = "title must be 255 characters or less"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
