package model

import "time"

// Credentials holds the OAuth2 tokens obtained from the last successful
// code exchange. Only one set exists per process and it lives in memory.
type Credentials struct {
	AccessToken   string    `json:"-"`
	RefreshToken  string    `json:"-"`
	TokenType     string    `json:"token_type"`
	Expiry        time.Time `json:"expiry,omitempty"`
	GrantedScopes []string  `json:"granted_scopes"`
	ObtainedAt    time.Time `json:"obtained_at"`
}

// Usable reports whether the credentials can authorize an outbound call.
func (c *Credentials) Usable() bool {
	return c != nil && c.AccessToken != ""
}

// VideoDetailParts are the video sections returned by the details endpoint.
var VideoDetailParts = []string{"snippet", "statistics", "status"}

// AuthStatus is the public view of the credential state.
type AuthStatus struct {
	Authenticated bool `json:"authenticated"`
}

// VideoUpdatedEvent is published after the managed video's snippet changed.
type VideoUpdatedEvent struct {
	ID          string    `json:"id"`
	VideoID     string    `json:"video_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CategoryID  string    `json:"category_id"`
	Fields      []string  `json:"fields"`
	UpdatedAt   time.Time `json:"updated_at"`
}
