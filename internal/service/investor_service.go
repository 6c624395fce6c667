package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ba3ai/clarus-backend/internal/api/request"
	"github.com/ba3ai/clarus-backend/internal/export"
	"github.com/ba3ai/clarus-backend/internal/model"
	"github.com/ba3ai/clarus-backend/internal/repository"
)

// InvestorService handles investor account business logic: top-level
// accounts, dependent accounts linked under a parent, and archival.
type InvestorService struct {
	investorRepo *repository.InvestorRepository
}

// NewInvestorService creates a new InvestorService with the provided repository dependency.
func NewInvestorService(investorRepo *repository.InvestorRepository) *InvestorService {
	return &InvestorService{
		investorRepo: investorRepo,
	}
}

// GetAllInvestors retrieves all top-level investors, archived included.
func (s *InvestorService) GetAllInvestors() ([]model.Investor, error) {
	return s.investorRepo.GetInvestors(model.InvestorFilter{
		IncludeArchived: true,
	})
}

// GetInvestor retrieves a single investor by ID.
func (s *InvestorService) GetInvestor(investorID string) (model.Investor, error) {
	return s.investorRepo.GetInvestorOnID(investorID)
}

// GetDependents retrieves the dependent accounts linked under a parent investor.
func (s *InvestorService) GetDependents(parentID string) ([]model.Investor, error) {
	return s.investorRepo.GetInvestors(model.InvestorFilter{
		IncludeArchived:   true,
		IncludeDependents: true,
		ParentID:          parentID,
	})
}

// CreateInvestor creates a new investor account from the request.
// A dependent account is created by supplying a parent investor ID, which
// must reference an existing investor.
func (s *InvestorService) CreateInvestor(req request.CreateInvestorRequest) (model.Investor, error) {
	investor := model.Investor{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Email:    req.Email,
		ParentID: req.ParentID,
	}

	if req.ParentID != nil {
		if _, err := s.investorRepo.GetInvestorOnID(*req.ParentID); err != nil {
			return model.Investor{}, fmt.Errorf("parent investor lookup failed: %w", err)
		}
	}

	if req.JoinDate != "" {
		joinDate, err := repository.ParseTime(req.JoinDate)
		if err != nil {
			return model.Investor{}, err
		}
		investor.JoinDate = &joinDate
	}

	if err := s.investorRepo.CreateInvestor(investor); err != nil {
		return model.Investor{}, err
	}

	return investor, nil
}

// UpdateInvestor applies the provided fields to an existing investor.
// Only non-nil request fields are changed.
func (s *InvestorService) UpdateInvestor(investorID string, req request.UpdateInvestorRequest) (model.Investor, error) {
	investor, err := s.investorRepo.GetInvestorOnID(investorID)
	if err != nil {
		return model.Investor{}, err
	}

	if req.Name != nil {
		investor.Name = *req.Name
	}
	if req.Email != nil {
		investor.Email = *req.Email
	}
	if req.ParentID != nil {
		investor.ParentID = req.ParentID
	}
	if req.JoinDate != nil {
		joinDate, err := repository.ParseTime(*req.JoinDate)
		if err != nil {
			return model.Investor{}, err
		}
		investor.JoinDate = &joinDate
	}
	if req.IsArchived != nil {
		investor.IsArchived = *req.IsArchived
	}

	if err := s.investorRepo.UpdateInvestor(investor); err != nil {
		return model.Investor{}, err
	}

	return investor, nil
}

// DeleteInvestor removes an investor account. Dependent rows (contacts,
// documents, statements, balances, memberships) cascade at the database level.
func (s *InvestorService) DeleteInvestor(investorID string) error {
	return s.investorRepo.DeleteInvestor(investorID)
}

// ExportCSV renders the top-level investor table as CSV for download.
func (s *InvestorService) ExportCSV() ([]byte, error) {
	investors, err := s.GetAllInvestors()
	if err != nil {
		return nil, err
	}

	return export.InvestorsCSV(investors)
}
