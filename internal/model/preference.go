package model

// Preference names used by the view-as context resolution.
const (
	PrefLastSelectedInvestor = "last_selected_investor"
)

// Preference is a per-user key/value hint persisted server-side, the
// backend rendition of the dashboard's browser-local storage.
type Preference struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Value  string `json:"value"`
}
