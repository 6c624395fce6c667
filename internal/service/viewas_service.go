package service

import (
	"errors"

	"github.com/ba3ai/clarus-backend/internal/apperrors"
	"github.com/ba3ai/clarus-backend/internal/model"
	"github.com/ba3ai/clarus-backend/internal/repository"
)

// ViewAsService resolves which investor's data a request should be scoped
// to: the caller themselves, an explicitly requested investor (the view-as
// header or query parameter), or the caller's stored last-selected hint.
//
// Precedence is deliberate and order-dependent:
//  1. An explicit investor on the request always wins.
//  2. The stored last-selected hint applies only to plain investors.
//     Group admins never inherit the stored hint without an explicit
//     request, so a stale selection cannot silently scope an admin into a
//     member's view.
//  3. Otherwise the caller views their own data.
type ViewAsService struct {
	preferenceRepo *repository.PreferenceRepository
	groupRepo      *repository.GroupRepository
}

// NewViewAsService creates a new ViewAsService with the provided repository dependencies.
func NewViewAsService(preferenceRepo *repository.PreferenceRepository, groupRepo *repository.GroupRepository) *ViewAsService {
	return &ViewAsService{
		preferenceRepo: preferenceRepo,
		groupRepo:      groupRepo,
	}
}

// ResolveInvestor applies the precedence rule and returns the investor ID
// the request is scoped to. explicitID is the view-as header or query
// parameter value, empty when absent.
func (s *ViewAsService) ResolveInvestor(callerID, explicitID string) (string, error) {
	if explicitID != "" {
		return explicitID, nil
	}

	isAdmin, err := s.groupRepo.IsGroupAdmin(callerID)
	if err != nil {
		return "", err
	}
	if isAdmin {
		return callerID, nil
	}

	pref, err := s.preferenceRepo.GetPreference(callerID, model.PrefLastSelectedInvestor)
	if errors.Is(err, apperrors.ErrPreferenceNotFound) {
		return callerID, nil
	}
	if err != nil {
		return "", err
	}
	if pref.Value == "" {
		return callerID, nil
	}

	return pref.Value, nil
}

// RememberSelection stores the caller's last-selected investor hint.
func (s *ViewAsService) RememberSelection(callerID, investorID string) error {
	return s.preferenceRepo.SetPreference(model.Preference{
		UserID: callerID,
		Name:   model.PrefLastSelectedInvestor,
		Value:  investorID,
	})
}

// ClearSelection removes the caller's last-selected investor hint. Called
// when a nested view exits so the override does not leak into later
// requests.
func (s *ViewAsService) ClearSelection(callerID string) error {
	return s.preferenceRepo.ClearPreference(callerID, model.PrefLastSelectedInvestor)
}
