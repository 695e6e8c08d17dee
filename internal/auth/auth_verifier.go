package auth

import (
	"strings"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
)

// TokenVerifier checks an externally issued ID token and returns the
// verified email address.
type TokenVerifier interface {
	VerifyEmail(idToken string) (string, error)
}

type googleVerifier struct {
	clientIDs []string
}

func NewGoogleVerifier(clientID string) TokenVerifier {
	return &googleVerifier{clientIDs: []string{clientID}}
}

func (v *googleVerifier) VerifyEmail(idToken string) (string, error) {
	verifier := googleAuthIDTokenVerifier.Verifier{}
	if err := verifier.VerifyIDToken(idToken, v.clientIDs); err != nil {
		return "", err
	}

	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(claimSet.Email)), nil
}
