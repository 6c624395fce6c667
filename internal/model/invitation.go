package model

import "time"

// Invitation statuses
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationRevoked  = "revoked"
)

// Invitation represents a pending or resolved invitation to join the
// platform. Token is a fernet-sealed payload carrying the invitation ID;
// its TTL is enforced at acceptance time.
type Invitation struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	InvestorID *string    `json:"investor_id,omitempty"`
	Token      string     `json:"token,omitempty"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
}
