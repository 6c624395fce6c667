package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ba3ai/clarus-backend/internal/model"
)

// InvestorBuilder provides a fluent interface for creating test investors.
//
// Example usage:
//
//	// Simple creation with defaults
//	investor := testutil.NewInvestor().Build(t, db)
//
//	// Customized investor
//	investor := testutil.NewInvestor().
//	    WithName("Alice Example").
//	    WithJoinDate(time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)).
//	    Archived().
//	    Build(t, db)
type InvestorBuilder struct {
	ID         string
	Name       string
	Email      string
	ParentID   *string
	JoinDate   *time.Time
	IsArchived bool
}

// NewInvestor creates an InvestorBuilder with sensible defaults.
func NewInvestor() *InvestorBuilder {
	return &InvestorBuilder{
		ID:    MakeID(),
		Name:  MakeInvestorName("Test Investor"),
		Email: MakeEmail(),
	}
}

// WithID sets a custom ID.
func (b *InvestorBuilder) WithID(id string) *InvestorBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *InvestorBuilder) WithName(name string) *InvestorBuilder {
	b.Name = name
	return b
}

// WithEmail sets a custom email.
func (b *InvestorBuilder) WithEmail(email string) *InvestorBuilder {
	b.Email = email
	return b
}

// WithParent files the investor under a parent investor.
func (b *InvestorBuilder) WithParent(parentID string) *InvestorBuilder {
	b.ParentID = &parentID
	return b
}

// WithJoinDate sets the join date.
func (b *InvestorBuilder) WithJoinDate(joinDate time.Time) *InvestorBuilder {
	b.JoinDate = &joinDate
	return b
}

// Archived marks the investor as archived.
func (b *InvestorBuilder) Archived() *InvestorBuilder {
	b.IsArchived = true
	return b
}

// Build inserts the investor and returns the model.
func (b *InvestorBuilder) Build(t *testing.T, db *sql.DB) model.Investor {
	t.Helper()

	query := `
		INSERT INTO investor (id, name, email, parent_id, join_date, is_archived)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	var joinDate interface{}
	if b.JoinDate != nil {
		joinDate = b.JoinDate.Format("2006-01-02")
	}

	_, err := db.Exec(query, b.ID, b.Name, b.Email, b.ParentID, joinDate, b.IsArchived)
	if err != nil {
		t.Fatalf("Failed to create test investor: %v", err)
	}

	return model.Investor{
		ID:         b.ID,
		Name:       b.Name,
		Email:      b.Email,
		ParentID:   b.ParentID,
		JoinDate:   b.JoinDate,
		IsArchived: b.IsArchived,
	}
}

// PeriodBalanceBuilder provides a fluent interface for creating test
// monthly balance records.
//
// Example usage:
//
//	testutil.NewPeriodBalance(investor.ID, "2024-01").
//	    WithBalances(1000, 1100).
//	    Build(t, db)
type PeriodBalanceBuilder struct {
	ID               string
	InvestorID       string
	AsOfDate         time.Time
	BeginningBalance float64
	EndingBalance    float64
	HasData          bool
}

// NewPeriodBalance creates a PeriodBalanceBuilder for the given investor
// and YYYY-MM month.
func NewPeriodBalance(investorID, month string) *PeriodBalanceBuilder {
	asOf, err := time.Parse("2006-01", month)
	if err != nil {
		panic("invalid month key in test: " + month)
	}
	return &PeriodBalanceBuilder{
		ID:               MakeID(),
		InvestorID:       investorID,
		AsOfDate:         asOf,
		BeginningBalance: 1000,
		EndingBalance:    1000,
		HasData:          true,
	}
}

// WithBalances sets the beginning and ending balances.
func (b *PeriodBalanceBuilder) WithBalances(beginning, ending float64) *PeriodBalanceBuilder {
	b.BeginningBalance = beginning
	b.EndingBalance = ending
	return b
}

// WithoutData flags the month as having no underlying data.
func (b *PeriodBalanceBuilder) WithoutData() *PeriodBalanceBuilder {
	b.HasData = false
	return b
}

// Build inserts the balance record and returns the model.
func (b *PeriodBalanceBuilder) Build(t *testing.T, db *sql.DB) model.PeriodBalance {
	t.Helper()

	query := `
		INSERT INTO period_balance (id, investor_id, as_of_date, beginning_balance, ending_balance, has_data)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.InvestorID, b.AsOfDate.Format("2006-01-02"),
		b.BeginningBalance, b.EndingBalance, b.HasData)
	if err != nil {
		t.Fatalf("Failed to create test period balance: %v", err)
	}

	return model.PeriodBalance{
		ID:               b.ID,
		InvestorID:       b.InvestorID,
		AsOfDate:         b.AsOfDate,
		BeginningBalance: b.BeginningBalance,
		EndingBalance:    b.EndingBalance,
		HasData:          b.HasData,
	}
}

// Convenience functions

// CreateAllocation inserts one allocation breakdown row.
func CreateAllocation(t *testing.T, db *sql.DB, investorID, month, category string, percent float64) {
	t.Helper()

	query := `
		INSERT INTO allocation (id, investor_id, month, category, percent)
		VALUES (?, ?, ?, ?, ?)
	`

	if _, err := db.Exec(query, MakeID(), investorID, month, category, percent); err != nil {
		t.Fatalf("Failed to create test allocation: %v", err)
	}
}

// CreateGroupMember links a member investor under a group administrator.
func CreateGroupMember(t *testing.T, db *sql.DB, adminID, memberID string) {
	t.Helper()

	query := `
		INSERT INTO group_member (admin_investor_id, member_investor_id)
		VALUES (?, ?)
	`

	if _, err := db.Exec(query, adminID, memberID); err != nil {
		t.Fatalf("Failed to create test group member: %v", err)
	}
}

// CreateBenchmarkMonth inserts one cached benchmark month.
func CreateBenchmarkMonth(t *testing.T, db *sql.DB, symbol, month string, roiPct float64) {
	t.Helper()

	query := `
		INSERT INTO benchmark_month (symbol, month, roi_pct)
		VALUES (?, ?, ?)
	`

	if _, err := db.Exec(query, symbol, month, roiPct); err != nil {
		t.Fatalf("Failed to create test benchmark month: %v", err)
	}
}

// CreateContact inserts a contact with the given name for an investor and
// returns its ID.
func CreateContact(t *testing.T, db *sql.DB, investorID, name string) string {
	t.Helper()

	id := MakeID()
	query := `
		INSERT INTO contact (id, investor_id, name, email, phone, role)
		VALUES (?, ?, ?, ?, '', '')
	`

	if _, err := db.Exec(query, id, investorID, name, MakeEmail()); err != nil {
		t.Fatalf("Failed to create test contact: %v", err)
	}
	return id
}

// CreateStatement inserts a statement for an investor and returns its ID.
func CreateStatement(t *testing.T, db *sql.DB, investorID, period, title string) string {
	t.Helper()

	id := MakeID()
	query := `
		INSERT INTO statement (id, investor_id, period, title, file_name, content_type, data)
		VALUES (?, ?, ?, ?, ?, 'application/pdf', ?)
	`

	if _, err := db.Exec(query, id, investorID, period, title, title+".pdf", []byte("test")); err != nil {
		t.Fatalf("Failed to create test statement: %v", err)
	}
	return id
}

// CreateFolder inserts a document folder and returns its ID.
func CreateFolder(t *testing.T, db *sql.DB, investorID string, parentID *string, name string) string {
	t.Helper()

	id := MakeID()
	query := `
		INSERT INTO document_folder (id, investor_id, parent_id, name)
		VALUES (?, ?, ?, ?)
	`

	if _, err := db.Exec(query, id, investorID, parentID, name); err != nil {
		t.Fatalf("Failed to create test folder: %v", err)
	}
	return id
}

// CreateDocument inserts a document and returns its ID.
func CreateDocument(t *testing.T, db *sql.DB, investorID string, folderID *string, name string) string {
	t.Helper()

	id := MakeID()
	data := []byte("test content")
	query := `
		INSERT INTO document (id, investor_id, folder_id, name, content_type, size_bytes, data)
		VALUES (?, ?, ?, ?, 'application/octet-stream', ?, ?)
	`

	if _, err := db.Exec(query, id, investorID, folderID, name, len(data), data); err != nil {
		t.Fatalf("Failed to create test document: %v", err)
	}
	return id
}
