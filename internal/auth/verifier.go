// Package auth verifies bearer tokens issued by the identity provider.
package auth

import (
	"fmt"
	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
	"github.com/pkg/errors"
	"time"
)

var (
	ErrNotConfigured = errors.New("token secret is not configured")
	ErrMissingToken  = errors.New("missing bearer token")
	ErrInvalidToken  = errors.New("invalid token")
)

const defaultLeeway = 30 * time.Second

type Identity struct {
	UserID string
	Email  string
}

type extraClaims struct {
	Email string `json:"email"`
}

// Verifier checks HS256-signed JWTs. The subject claim is the user id and
// every token must carry an expiry.
type Verifier struct {
	secret []byte
	issuer string
	leeway time.Duration
	now    func() time.Time
}

func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		issuer: issuer,
		leeway: defaultLeeway,
		now:    time.Now,
	}
}

func (v *Verifier) Verify(token string) (Identity, error) {
	if len(v.secret) == 0 {
		return Identity{}, ErrNotConfigured
	}
	if token == "" {
		return Identity{}, ErrMissingToken
	}

	parsed, err := jwt.ParseSigned(token, []jose.SignatureAlgorithm{jose.HS256})
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var registered jwt.Claims
	var extra extraClaims
	if err := parsed.Claims(v.secret, &registered, &extra); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	expected := jwt.Expected{Issuer: v.issuer, Time: v.now()}
	if err := registered.ValidateWithLeeway(expected, v.leeway); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if registered.Expiry == nil {
		return Identity{}, fmt.Errorf("%w: missing expiry", ErrInvalidToken)
	}
	if registered.Subject == "" {
		return Identity{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return Identity{UserID: registered.Subject, Email: extra.Email}, nil
}
