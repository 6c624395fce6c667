package validation

import (
	"strings"

	"github.com/ba3ai/clarus-backend/internal/api/request"
)

func ValidateCreateFolder(req request.CreateFolderRequest) error {
	if err := ValidateUUID(req.InvestorID); err != nil {
		return err
	}
	if req.ParentID != nil {
		if err := ValidateUUID(*req.ParentID); err != nil {
			return err
		}
	}

	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > 100 {
		errors["name"] = "name must be 100 characters or less"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateDocument(req request.UpdateDocumentRequest) error {
	errors := make(map[string]string)

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			errors["name"] = "name cannot be empty"
		} else if len(*req.Name) > 255 {
			errors["name"] = "name must be 255 characters or less"
		}
	}

	if req.FolderID != nil {
		if req.ToRoot {
			errors["folderId"] = "folderId and toRoot are mutually exclusive"
		} else if err := ValidateUUID(*req.FolderID); err != nil {
			errors["folderId"] = "folderId must be a valid UUID"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
