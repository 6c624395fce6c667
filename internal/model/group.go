package model

// GroupMember represents one member investor of a group administrator's
// group. Name is denormalized from the investor table for display.
type GroupMember struct {
	InvestorID string `json:"investor_id"`
	Name       string `json:"name"`
}

// Group represents the full membership of a group administrator.
type Group struct {
	AdminInvestorID string        `json:"admin_investor_id"`
	Members         []GroupMember `json:"members"`
}
