package session

// Role selects which side of the platform the identity acts on.
type Role string

const (
	RoleScout  Role = "scout"
	RolePlayer Role = "player"
)

// Identity is the profile bound to the active session. The JSON tags fix
// the durable record shape stored under the session namespace.
type Identity struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	Region       string   `json:"region"`
	PrimaryGames []string `json:"primaryGames"`
	DiscordID    string   `json:"discordId,omitempty"`
	SteamID      string   `json:"steamId,omitempty"`
	GameID       string   `json:"gameId,omitempty"`
	Role         Role     `json:"role,omitempty"`
}

// RegisterInput contains registration data supplied by callers.
type RegisterInput struct {
	Username        string   `json:"username" validate:"required"`
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required"`
	ConfirmPassword string   `json:"confirmPassword" validate:"required"`
	Region          string   `json:"region"`
	PrimaryGames    []string `json:"primaryGames"`
	DiscordID       string   `json:"discordId,omitempty"`
	SteamID         string   `json:"steamId,omitempty"`
	GameID          string   `json:"gameId,omitempty"`
	AgreeToTerms    bool     `json:"agreeToTerms"`
}
