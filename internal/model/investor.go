package model

import "time"

// Investor represents an investor account from the database.
// Dependent investors carry a ParentID referencing the investor they are
// linked under; top-level investors have a nil ParentID.
type Investor struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	ParentID   *string    `json:"parent_id,omitempty"`
	JoinDate   *time.Time `json:"join_date,omitempty"`
	IsArchived bool       `json:"isArchived"`
}

// InvestorFilter for querying investors
type InvestorFilter struct {
	IncludeArchived   bool
	IncludeDependents bool
	ParentID          string // when set, only dependents of this investor
}
