package roster

type RosterResponse struct {
	Date    string         `json:"date"`
	Morning []RosterMember `json:"morning"`
	Evening []RosterMember `json:"evening"`
	Off     []RosterMember `json:"off"`
	OnLeave []RosterMember `json:"on_leave"`
}

type CoverageResponse struct {
	Date       string      `json:"date"`
	Compliant  bool        `json:"compliant"`
	Violations []Violation `json:"violations"`
}

type SuggestionResponse struct {
	Date        string      `json:"date"`
	Suggestion  *Suggestion `json:"suggestion"`
	Explanation string      `json:"explanation"`
}
