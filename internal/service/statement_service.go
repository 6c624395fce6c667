package service

import (
	"github.com/google/uuid"

	"github.com/ba3ai/clarus-backend/internal/api/request"
	"github.com/ba3ai/clarus-backend/internal/export"
	"github.com/ba3ai/clarus-backend/internal/model"
	"github.com/ba3ai/clarus-backend/internal/repository"
)

// StatementService handles periodic account statement business logic,
// including file downloads and CSV export of the statement table.
type StatementService struct {
	statementRepo *repository.StatementRepository
}

// NewStatementService creates a new StatementService with the provided repository dependency.
func NewStatementService(statementRepo *repository.StatementRepository) *StatementService {
	return &StatementService{
		statementRepo: statementRepo,
	}
}

// GetStatementsForInvestor retrieves statement metadata for an investor.
func (s *StatementService) GetStatementsForInvestor(investorID string) ([]model.Statement, error) {
	return s.statementRepo.GetStatementsOnInvestorID(investorID)
}

// GetStatement retrieves statement metadata by ID.
func (s *StatementService) GetStatement(statementID string) (model.Statement, error) {
	return s.statementRepo.GetStatementOnID(statementID)
}

// GetStatementWithData retrieves statement metadata with file content
// populated, for download responses.
func (s *StatementService) GetStatementWithData(statementID string) (model.Statement, error) {
	statement, err := s.statementRepo.GetStatementOnID(statementID)
	if err != nil {
		return model.Statement{}, err
	}

	statement.Data, err = s.statementRepo.GetStatementData(statementID)
	if err != nil {
		return model.Statement{}, err
	}

	return statement, nil
}

// PublishStatement stores a new statement with its file content.
func (s *StatementService) PublishStatement(investorID, period, title, fileName, contentType string, data []byte) (model.Statement, error) {
	statement := model.Statement{
		ID:          uuid.NewString(),
		InvestorID:  investorID,
		Period:      period,
		Title:       title,
		FileName:    fileName,
		ContentType: contentType,
		Data:        data,
	}

	if err := s.statementRepo.CreateStatement(statement); err != nil {
		return model.Statement{}, err
	}

	return s.statementRepo.GetStatementOnID(statement.ID)
}

// UpdateStatement applies the provided fields to an existing statement.
// Only non-nil request fields are changed.
func (s *StatementService) UpdateStatement(statementID string, req request.UpdateStatementRequest) (model.Statement, error) {
	statement, err := s.statementRepo.GetStatementOnID(statementID)
	if err != nil {
		return model.Statement{}, err
	}

	if req.Period != nil {
		statement.Period = *req.Period
	}
	if req.Title != nil {
		statement.Title = *req.Title
	}

	if err := s.statementRepo.UpdateStatement(statement); err != nil {
		return model.Statement{}, err
	}

	return statement, nil
}

// DeleteStatement removes a statement.
func (s *StatementService) DeleteStatement(statementID string) error {
	return s.statementRepo.DeleteStatement(statementID)
}

// ExportCSV renders an investor's statement table as CSV for download.
func (s *StatementService) ExportCSV(investorID string) ([]byte, error) {
	statements, err := s.statementRepo.GetStatementsOnInvestorID(investorID)
	if err != nil {
		return nil, err
	}

	return export.StatementsCSV(statements)
}
