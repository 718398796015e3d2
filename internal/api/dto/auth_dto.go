package dto

// CredentialsRequest is the payload for both signup and login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is the standard response for auth endpoints.
type AuthResponse struct {
	Token            string `json:"token"`
	ExpiresInSeconds int64  `json:"expiresInSeconds"`
}
