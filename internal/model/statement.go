package model

import "time"

// Statement represents a periodic account statement for an investor.
// Period is the reporting month in YYYY-MM format. Data holds the statement
// file content and is only populated for download requests.
type Statement struct {
	ID          string    `json:"id"`
	InvestorID  string    `json:"investor_id"`
	Period      string    `json:"period"`
	Title       string    `json:"title"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Data        []byte    `json:"-"`
	PublishedAt time.Time `json:"published_at"`
}
