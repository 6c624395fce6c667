package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ba3ai/clarus-backend/internal/model"
)

// MetricsRepository provides data access methods for the period_balance and
// allocation tables, the read-side inputs of the overview aggregation.
type MetricsRepository struct {
	db *sql.DB
}

// NewMetricsRepository creates a new MetricsRepository with the provided database connection.
func NewMetricsRepository(db *sql.DB) *MetricsRepository {
	return &MetricsRepository{db: db}
}

// GetPeriodBalances retrieves an investor's monthly balance records within
// the inclusive [from, to] month range, ordered by month ascending.
// Returns an empty slice when the investor has no records in range.
func (s *MetricsRepository) GetPeriodBalances(investorID string, from, to time.Time) ([]model.PeriodBalance, error) {
	query := `
		SELECT id, investor_id, as_of_date, beginning_balance, ending_balance, has_data
		FROM period_balance
		WHERE investor_id = ? AND as_of_date >= ? AND as_of_date <= ?
		ORDER BY as_of_date ASC
	`

	rows, err := s.db.Query(query, investorID,
		from.UTC().Format("2006-01-02"), to.UTC().Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query period_balance table: %w", err)
	}
	defer rows.Close()

	balances := []model.PeriodBalance{}

	for rows.Next() {
		var b model.PeriodBalance
		var asOfDateStr string

		err := rows.Scan(
			&b.ID,
			&b.InvestorID,
			&asOfDateStr,
			&b.BeginningBalance,
			&b.EndingBalance,
			&b.HasData,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period_balance table results: %w", err)
		}

		b.AsOfDate, err = ParseTime(asOfDateStr)
		if err != nil {
			return nil, err
		}

		balances = append(balances, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating period_balance table: %w", err)
	}

	return balances, nil
}

// GetPeriods retrieves the distinct reporting months present in the
// period_balance table, ascending, as "2006-01" month keys. This is the
// server-provided list valid range selections are drawn from.
func (s *MetricsRepository) GetPeriods() ([]string, error) {
	query := `
		SELECT DISTINCT as_of_date
		FROM period_balance
		ORDER BY as_of_date ASC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query period_balance table: %w", err)
	}
	defer rows.Close()

	periods := []string{}
	seen := map[string]bool{}

	for rows.Next() {
		var asOfDateStr string
		if err := rows.Scan(&asOfDateStr); err != nil {
			return nil, fmt.Errorf("failed to scan period_balance table results: %w", err)
		}

		asOfDate, err := ParseTime(asOfDateStr)
		if err != nil {
			return nil, err
		}

		key := MonthKey(asOfDate)
		if !seen[key] {
			seen[key] = true
			periods = append(periods, key)
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating period_balance table: %w", err)
	}

	return periods, nil
}

// CreatePeriodBalance inserts a monthly balance record.
func (s *MetricsRepository) CreatePeriodBalance(balance model.PeriodBalance) error {
	query := `
		INSERT INTO period_balance (id, investor_id, as_of_date, beginning_balance, ending_balance, has_data)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query, balance.ID, balance.InvestorID,
		balance.AsOfDate.UTC().Format("2006-01-02"),
		balance.BeginningBalance, balance.EndingBalance, balance.HasData)
	if err != nil {
		return fmt.Errorf("failed to insert period balance: %w", err)
	}
	return nil
}

// GetAllocation retrieves an investor's holdings breakdown for a month key.
// Returns an empty slice when no breakdown exists for that month.
func (s *MetricsRepository) GetAllocation(investorID, month string) ([]model.AllocationSlice, error) {
	query := `
		SELECT category, percent
		FROM allocation
		WHERE investor_id = ? AND month = ?
		ORDER BY percent DESC
	`

	rows, err := s.db.Query(query, investorID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocation table: %w", err)
	}
	defer rows.Close()

	slices := []model.AllocationSlice{}

	for rows.Next() {
		var a model.AllocationSlice

		err := rows.Scan(
			&a.Category,
			&a.Percent,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allocation table results: %w", err)
		}

		slices = append(slices, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocation table: %w", err)
	}

	return slices, nil
}

// CreateAllocation inserts one category of an investor's monthly breakdown.
func (s *MetricsRepository) CreateAllocation(id, investorID, month, category string, percent float64) error {
	query := `
		INSERT INTO allocation (id, investor_id, month, category, percent)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query, id, investorID, month, category, percent)
	if err != nil {
		return fmt.Errorf("failed to insert allocation: %w", err)
	}
	return nil
}
