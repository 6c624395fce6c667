package request

// AddGroupMemberRequest represents the request body for linking a member
// investor under a group administrator
type AddGroupMemberRequest struct {
	InvestorID string `json:"investorId"`
}
