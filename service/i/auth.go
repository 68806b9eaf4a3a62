package i

// Authenticator exchanges the operator API key for an access token.
type Authenticator interface {
	IssueToken(apiKey string) (string, error)
}
