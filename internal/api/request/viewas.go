package request

// SetViewAsRequest represents the request body for remembering a view-as selection
type SetViewAsRequest struct {
	InvestorID string `json:"investorId"`
}
