package service

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-rl/service/i"
	"golang.org/x/crypto/bcrypt"
)

const (
	operatorSubject = "operator"
	tokenLifetime   = 12 * time.Hour
)

var (
	ErrInvalidAPIKey = errors.New("invalid api key")
)

var _ i.Authenticator = &Auth{}

// Auth exchanges the operator API key for a bearer token.
type Auth struct {
	apiKeyHash []byte
	tokenizer  i.Tokenizer
}

// NewAuthService creates an Auth service verifying keys against a bcrypt hash.
func NewAuthService(apiKeyHash string, t i.Tokenizer) (*Auth, error) {
	if _, err := bcrypt.Cost([]byte(apiKeyHash)); err != nil {
		return nil, err
	}
	return &Auth{
		apiKeyHash: []byte(apiKeyHash),
		tokenizer:  t,
	}, nil
}

// IssueToken returns a token for the operator if apiKey matches the configured hash.
func (a *Auth) IssueToken(apiKey string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(a.apiKeyHash, []byte(apiKey)); err != nil {
		return "", ErrInvalidAPIKey
	}

	return a.tokenizer.Generate(operatorSubject, map[string]interface{}{"role": operatorSubject}, tokenLifetime)
}
