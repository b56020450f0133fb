// Package sessionjwt verifies the identity provider's session tokens without
// a network round trip: RS256 against the instance public key, or HS256
// against a shared secret for local setups.
package sessionjwt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-health-records/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

type Config struct {
	PublicKeyPEM      string
	Secret            string
	AuthorizedParties []string
	Leeway            time.Duration
}

type sessionClaims struct {
	jwt.RegisteredClaims
	SessionID       string `json:"sid,omitempty"`
	AuthorizedParty string `json:"azp,omitempty"`
	Email           string `json:"email,omitempty"`
}

type Verifier struct {
	key    any
	parser *jwt.Parser
	azp    map[string]struct{}
}

var _ auth.AuthVerifier = (*Verifier)(nil)

func New(cfg Config) (*Verifier, error) {
	var (
		key any
		alg string
	)
	switch {
	case strings.TrimSpace(cfg.PublicKeyPEM) != "":
		pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(normalizePEM(cfg.PublicKeyPEM)))
		if err != nil {
			return nil, fmt.Errorf("parse session public key: %w", err)
		}
		key, alg = pub, jwt.SigningMethodRS256.Alg()
	case strings.TrimSpace(cfg.Secret) != "":
		key, alg = []byte(cfg.Secret), jwt.SigningMethodHS256.Alg()
	default:
		return nil, errors.New("sessionjwt: public key or secret required")
	}

	azp := make(map[string]struct{}, len(cfg.AuthorizedParties))
	for _, p := range cfg.AuthorizedParties {
		if p = strings.TrimSpace(p); p != "" {
			azp[p] = struct{}{}
		}
	}

	return &Verifier{
		key: key,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{alg}),
			jwt.WithLeeway(cfg.Leeway),
			jwt.WithExpirationRequired(),
		),
		azp: azp,
	}, nil
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	claims := &sessionClaims{}
	t, err := v.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	})
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}
	if !t.Valid || strings.TrimSpace(claims.Subject) == "" {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	// azp is only enforced when both sides set it.
	if len(v.azp) > 0 && claims.AuthorizedParty != "" {
		if _, ok := v.azp[claims.AuthorizedParty]; !ok {
			return auth.Claims{}, fmt.Errorf("%w: unexpected azp %q", auth.ErrInvalidToken, claims.AuthorizedParty)
		}
	}

	return auth.Claims{
		UserID:    claims.Subject,
		SessionID: claims.SessionID,
		Email:     claims.Email,
	}, nil
}

// Issue mints an HS256 session token. Used by the dev CLI and tests.
func Issue(secret []byte, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		SessionID: "sess_dev",
	})
	return token.SignedString(secret)
}

// normalizePEM accepts keys pasted into env vars with literal "\n".
func normalizePEM(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), `\n`, "\n")
}
