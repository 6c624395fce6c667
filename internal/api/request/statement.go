package request

// UpdateStatementRequest represents the request body for updating a statement
type UpdateStatementRequest struct {
	Period *string `json:"period,omitempty"`
	Title  *string `json:"title,omitempty"`
}
