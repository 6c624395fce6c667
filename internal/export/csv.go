// Package export renders table data as downloadable CSV. Output uses
// standard comma/quote escaping so it round-trips through any conforming
// CSV parser.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/ba3ai/clarus-backend/internal/model"
)

// StatementsCSV renders the visible statement columns as CSV.
func StatementsCSV(statements []model.Statement) ([]byte, error) {
	records := make([][]string, 0, len(statements)+1)
	records = append(records, []string{"period", "title", "file_name", "published_at"})

	for _, st := range statements {
		records = append(records, []string{
			st.Period,
			st.Title,
			st.FileName,
			st.PublishedAt.UTC().Format("2006-01-02"),
		})
	}

	return write(records)
}

// InvestorsCSV renders the visible investor columns as CSV.
func InvestorsCSV(investors []model.Investor) ([]byte, error) {
	records := make([][]string, 0, len(investors)+1)
	records = append(records, []string{"name", "email", "join_date", "archived"})

	for _, investor := range investors {
		joinDate := ""
		if investor.JoinDate != nil {
			joinDate = investor.JoinDate.UTC().Format("2006-01-02")
		}
		records = append(records, []string{
			investor.Name,
			investor.Email,
			joinDate,
			fmt.Sprintf("%t", investor.IsArchived),
		})
	}

	return write(records)
}

func write(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}

	return buf.Bytes(), nil
}
