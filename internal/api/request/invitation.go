package request

// CreateInvitationRequest represents the request body for issuing an invitation
type CreateInvitationRequest struct {
	Email      string  `json:"email"`
	InvestorID *string `json:"investorId,omitempty"`
}

// AcceptInvitationRequest carries the fernet token from the invitation link
type AcceptInvitationRequest struct {
	Token string `json:"token"`
}
