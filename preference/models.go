package preference

// ConnectionRequest is a player's expressed interest in scout outreach.
// One request is kept per user; a new submission overwrites the prior one.
type ConnectionRequest struct {
	PreferredRegions []string `json:"preferredRegions" validate:"required,min=1"`
	TeamsOfInterest  string   `json:"teamsOfInterest"`
	Availability     string   `json:"availability" validate:"required"`
	ContactMethod    string   `json:"contactMethod"`
}
