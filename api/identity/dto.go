package identity

// TokenRequest carries the operator API key.
type TokenRequest struct {
	APIKey string `json:"api_key" binding:"required"`
}

// TokenResponse carries the issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}
