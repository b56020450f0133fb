package sessionjwt

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"testing"
	"time"

	"pet-health-records/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_HS256(t *testing.T) {
	secret := []byte("test-secret")
	v, err := New(Config{Secret: string(secret)})
	require.NoError(t, err)

	token, err := Issue(secret, "user_123", time.Minute)
	require.NoError(t, err)

	claims, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user_123", claims.UserID)
	assert.Equal(t, "sess_dev", claims.SessionID)
}

func TestVerify_Rejects(t *testing.T) {
	secret := []byte("test-secret")
	v, err := New(Config{Secret: string(secret)})
	require.NoError(t, err)

	wrongKey, err := Issue([]byte("other"), "user_123", time.Minute)
	require.NoError(t, err)
	expired, err := Issue(secret, "user_123", -time.Minute)
	require.NoError(t, err)
	noSubject, err := Issue(secret, "", time.Minute)
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"wrong key":  wrongKey,
		"expired":    expired,
		"no subject": noSubject,
		"garbage":    "not.a.jwt",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), tok)
			require.Error(t, err)
			assert.True(t, errors.Is(err, auth.ErrInvalidToken))
		})
	}
}

func TestVerify_RS256AndAuthorizedParty(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	v, err := New(Config{
		PublicKeyPEM:      string(pubPEM),
		AuthorizedParties: []string{"https://app.example"},
	})
	require.NoError(t, err)

	sign := func(azp string) string {
		tok := jwt.NewWithClaims(jwt.SigningMethodRS256, sessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user_rs",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			},
			AuthorizedParty: azp,
		})
		s, err := tok.SignedString(priv)
		require.NoError(t, err)
		return s
	}

	claims, err := v.Verify(context.Background(), sign("https://app.example"))
	require.NoError(t, err)
	assert.Equal(t, "user_rs", claims.UserID)

	_, err = v.Verify(context.Background(), sign("https://evil.example"))
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	// HS256 token must not be accepted by an RS256 verifier
	hs, err := Issue([]byte("x"), "user_rs", time.Minute)
	require.NoError(t, err)
	_, err = v.Verify(context.Background(), hs)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)

	_, err = New(Config{PublicKeyPEM: "-----BEGIN PUBLIC KEY-----\nnope\n-----END PUBLIC KEY-----"})
	require.Error(t, err)
}
