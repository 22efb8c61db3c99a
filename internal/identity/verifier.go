// Package identity validates third-party identity assertions (ID tokens)
// for federated sign-in.
package identity

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"
)

// Claims is the decoded subset of a verified ID token the auth flow needs.
type Claims struct {
	Subject string
	Email   string
	Name    string
}

var ErrAssertionInvalid = errors.New("identity assertion is invalid")

// Verifier validates an ID token and returns its decoded claims.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (*Claims, error)
}

// GoogleVerifier validates Google/Firebase ID tokens against the configured
// OAuth client ID.
type GoogleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*Claims, error) {
	payload, err := idtoken.Validate(ctx, token, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssertionInvalid, err)
	}

	claims := &Claims{Subject: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		claims.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		claims.Name = name
	}

	if claims.Email == "" {
		return nil, fmt.Errorf("%w: token carries no email claim", ErrAssertionInvalid)
	}
	return claims, nil
}
