package model

import "time"

// Contact represents a contact person attached to an investor account.
type Contact struct {
	ID         string    `json:"id"`
	InvestorID string    `json:"investor_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
}
