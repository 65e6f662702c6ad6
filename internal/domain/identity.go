package domain

// Identity is the signed-in user's public profile as held by the client.
type Identity struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	ProfileURL string `json:"profileUrl,omitempty"`
}

// AuthResult is what signin and register hand back on success.
type AuthResult struct {
	Token string
	User  Identity
}

// ProfileImage is an optional avatar attached at registration.
type ProfileImage struct {
	Path        string
	FileName    string
	ContentType string
}
