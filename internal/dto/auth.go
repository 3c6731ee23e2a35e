package dto

// LoginRequest carries the single-operator password.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// TokenResponse returns the issued bearer token.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"` // seconds
}
