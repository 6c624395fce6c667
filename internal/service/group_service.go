package service

import (
	"fmt"

	"github.com/ba3ai/clarus-backend/internal/model"
	"github.com/ba3ai/clarus-backend/internal/repository"
)

// GroupService handles group administrator membership business logic.
type GroupService struct {
	groupRepo    *repository.GroupRepository
	investorRepo *repository.InvestorRepository
}

// NewGroupService creates a new GroupService with the provided repository dependencies.
func NewGroupService(groupRepo *repository.GroupRepository, investorRepo *repository.InvestorRepository) *GroupService {
	return &GroupService{
		groupRepo:    groupRepo,
		investorRepo: investorRepo,
	}
}

// GetGroup retrieves the group administered by an investor.
// An investor with no members is simply not a group admin; the members
// slice is empty and that is a legitimate state, not an error.
func (s *GroupService) GetGroup(adminInvestorID string) (model.Group, error) {
	members, err := s.groupRepo.GetGroupMembers(adminInvestorID)
	if err != nil {
		return model.Group{}, err
	}

	return model.Group{
		AdminInvestorID: adminInvestorID,
		Members:         members,
	}, nil
}

// IsGroupAdmin reports whether the investor administers at least one member.
func (s *GroupService) IsGroupAdmin(investorID string) (bool, error) {
	return s.groupRepo.IsGroupAdmin(investorID)
}

// AddMember links a member investor under a group administrator. Both
// investors must exist.
func (s *GroupService) AddMember(adminInvestorID, memberInvestorID string) error {
	if _, err := s.investorRepo.GetInvestorOnID(adminInvestorID); err != nil {
		return fmt.Errorf("admin investor lookup failed: %w", err)
	}
	if _, err := s.investorRepo.GetInvestorOnID(memberInvestorID); err != nil {
		return fmt.Errorf("member investor lookup failed: %w", err)
	}

	return s.groupRepo.AddGroupMember(adminInvestorID, memberInvestorID)
}

// RemoveMember unlinks a member investor from a group administrator.
func (s *GroupService) RemoveMember(adminInvestorID, memberInvestorID string) error {
	return s.groupRepo.RemoveGroupMember(adminInvestorID, memberInvestorID)
}
