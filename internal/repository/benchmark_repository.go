package repository

import (
	"database/sql"
	"fmt"

	"github.com/ba3ai/clarus-backend/internal/model"
)

// BenchmarkRepository provides data access methods for the benchmark_month
// table, the local cache of market benchmark ROI series.
type BenchmarkRepository struct {
	db *sql.DB
}

// NewBenchmarkRepository creates a new BenchmarkRepository with the provided database connection.
func NewBenchmarkRepository(db *sql.DB) *BenchmarkRepository {
	return &BenchmarkRepository{db: db}
}

// GetSeries retrieves the cached monthly ROI series for a symbol within the
// inclusive [from, to] month-key range, ordered by month ascending.
func (s *BenchmarkRepository) GetSeries(symbol, from, to string) ([]model.BenchmarkPoint, error) {
	query := `
		SELECT symbol, month, roi_pct
		FROM benchmark_month
		WHERE symbol = ? AND month >= ? AND month <= ?
		ORDER BY month ASC
	`

	rows, err := s.db.Query(query, symbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query benchmark_month table: %w", err)
	}
	defer rows.Close()

	points := []model.BenchmarkPoint{}

	for rows.Next() {
		var p model.BenchmarkPoint

		err := rows.Scan(
			&p.Symbol,
			&p.Month,
			&p.ROIPct,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan benchmark_month table results: %w", err)
		}

		points = append(points, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating benchmark_month table: %w", err)
	}

	return points, nil
}

// ReplaceSeries atomically replaces the cached series for a symbol with the
// provided points. The delete and inserts run in one transaction so readers
// never observe a partially refreshed series.
func (s *BenchmarkRepository) ReplaceSeries(symbol string, points []model.BenchmarkPoint) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin benchmark refresh transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM benchmark_month WHERE symbol = ?", symbol); err != nil {
		return fmt.Errorf("failed to clear benchmark series: %w", err)
	}

	for _, p := range points {
		_, err := tx.Exec(
			"INSERT INTO benchmark_month (symbol, month, roi_pct) VALUES (?, ?, ?)",
			symbol, p.Month, p.ROIPct,
		)
		if err != nil {
			return fmt.Errorf("failed to insert benchmark point: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit benchmark refresh: %w", err)
	}

	return nil
}
