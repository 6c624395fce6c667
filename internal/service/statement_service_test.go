package service_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ba3ai/clarus-backend/internal/api/request"
	"github.com/ba3ai/clarus-backend/internal/apperrors"
	"github.com/ba3ai/clarus-backend/internal/testutil"
)

// TestStatementService_PublishStatement tests statement publishing.
func TestStatementService_PublishStatement(t *testing.T) {
	// Setup
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestStatementService(t, db)

	investor := testutil.NewInvestor().Build(t, db)
	content := []byte("%PDF-1.4 statement")

	// Execute
	statement, err := svc.PublishStatement(investor.ID, "2024-03", "Q1 Statement", "q1.pdf", "application/pdf", content)

	// Assert
	if err != nil {
		t.Fatalf("PublishStatement() returned unexpected error: %v", err)
	}
	if statement.Period != "2024-03" {
		t.Errorf("Expected period 2024-03, got %q", statement.Period)
	}
	if statement.PublishedAt.IsZero() {
		t.Error("Expected a publish timestamp")
	}

	withData, err := svc.GetStatementWithData(statement.ID)
	if err != nil {
		t.Fatalf("GetStatementWithData() returned unexpected error: %v", err)
	}
	if !bytes.Equal(withData.Data, content) {
		t.Error("Expected stored content to round-trip")
	}
}

// TestStatementService_GetStatementsForInvestor tests listing order.
//
// WHY: The statements tab shows the newest reporting period first.
func TestStatementService_GetStatementsForInvestor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestStatementService(t, db)

	investor := testutil.NewInvestor().Build(t, db)
	testutil.CreateStatement(t, db, investor.ID, "2023-12", "December")
	testutil.CreateStatement(t, db, investor.ID, "2024-06", "June")
	testutil.CreateStatement(t, db, investor.ID, "2024-01", "January")

	statements, err := svc.GetStatementsForInvestor(investor.ID)
	if err != nil {
		t.Fatalf("GetStatementsForInvestor() returned unexpected error: %v", err)
	}
	if len(statements) != 3 {
		t.Fatalf("Expected 3 statements, got %d", len(statements))
	}

	periods := []string{statements[0].Period, statements[1].Period, statements[2].Period}
	want := []string{"2024-06", "2024-01", "2023-12"}
	for i := range want {
		if periods[i] != want[i] {
			t.Errorf("Expected period %s at position %d, got %s", want[i], i, periods[i])
		}
	}
}

// TestStatementService_UpdateStatement tests metadata updates.
func TestStatementService_UpdateStatement(t *testing.T) {
	t.Run("updates only the provided fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestStatementService(t, db)

		investor := testutil.NewInvestor().Build(t, db)
		statementID := testutil.CreateStatement(t, db, investor.ID, "2024-01", "Draft")

		title := "Final"
		updated, err := svc.UpdateStatement(statementID, request.UpdateStatementRequest{Title: &title})
		if err != nil {
			t.Fatalf("UpdateStatement() returned unexpected error: %v", err)
		}
		if updated.Title != "Final" {
			t.Errorf("Expected updated title, got %q", updated.Title)
		}
		if updated.Period != "2024-01" {
			t.Errorf("Expected period to be untouched, got %q", updated.Period)
		}
	})

	t.Run("returns not found for an unknown statement", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestStatementService(t, db)

		title := "Nothing"
		_, err := svc.UpdateStatement(testutil.MakeID(), request.UpdateStatementRequest{Title: &title})
		if !errors.Is(err, apperrors.ErrStatementNotFound) {
			t.Errorf("Expected ErrStatementNotFound, got %v", err)
		}
	})
}

// TestStatementService_DeleteStatement tests statement removal.
func TestStatementService_DeleteStatement(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestStatementService(t, db)

	investor := testutil.NewInvestor().Build(t, db)
	statementID := testutil.CreateStatement(t, db, investor.ID, "2024-01", "Temp")

	if err := svc.DeleteStatement(statementID); err != nil {
		t.Fatalf("DeleteStatement() returned unexpected error: %v", err)
	}

	if _, err := svc.GetStatement(statementID); !errors.Is(err, apperrors.ErrStatementNotFound) {
		t.Errorf("Expected ErrStatementNotFound after delete, got %v", err)
	}
}

// TestStatementService_ExportCSV tests the CSV download.
//
// WHY: The export feeds spreadsheets outside the application, so the
// header row and field escaping must stay stable.
func TestStatementService_ExportCSV(t *testing.T) {
	t.Run("renders header and rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestStatementService(t, db)

		investor := testutil.NewInvestor().Build(t, db)
		testutil.CreateStatement(t, db, investor.ID, "2024-02", "February")

		data, err := svc.ExportCSV(investor.ID)
		if err != nil {
			t.Fatalf("ExportCSV() returned unexpected error: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 2 {
			t.Fatalf("Expected header plus 1 row, got %d lines", len(lines))
		}
		if lines[0] != "period,title,file_name,published_at" {
			t.Errorf("Unexpected CSV header: %q", lines[0])
		}
		if !strings.HasPrefix(lines[1], "2024-02,February,February.pdf,") {
			t.Errorf("Unexpected CSV row: %q", lines[1])
		}
	})

	t.Run("quotes fields containing commas", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestStatementService(t, db)

		investor := testutil.NewInvestor().Build(t, db)
		testutil.CreateStatement(t, db, investor.ID, "2024-03", "Quarterly, audited")

		data, err := svc.ExportCSV(investor.ID)
		if err != nil {
			t.Fatalf("ExportCSV() returned unexpected error: %v", err)
		}
		if !strings.Contains(string(data), `"Quarterly, audited"`) {
			t.Errorf("Expected the title to be quoted, got %q", string(data))
		}
	})

	t.Run("empty export still carries the header", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestStatementService(t, db)

		investor := testutil.NewInvestor().Build(t, db)

		data, err := svc.ExportCSV(investor.ID)
		if err != nil {
			t.Fatalf("ExportCSV() returned unexpected error: %v", err)
		}
		if strings.TrimSpace(string(data)) != "period,title,file_name,published_at" {
			t.Errorf("Expected only the header row, got %q", string(data))
		}
	})
}
