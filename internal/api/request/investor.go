package request

// CreateInvestorRequest represents the request body for creating an investor
type CreateInvestorRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	ParentID *string `json:"parentId,omitempty"`
	JoinDate string  `json:"joinDate,omitempty"`
}

type UpdateInvestorRequest struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	ParentID   *string `json:"parentId,omitempty"`
	JoinDate   *string `json:"joinDate,omitempty"`
	IsArchived *bool   `json:"isArchived,omitempty"`
}
