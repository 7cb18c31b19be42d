package jwt_test

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/identity/pkg/jwt"
)

const testSigningKey = "test-secret-key-at-least-32-bytes-long"

type accessClaims struct {
	jwt.StandardClaims
	Email string `json:"email,omitempty"`
}

func newService(t *testing.T) *jwt.Service {
	t.Helper()
	service, err := jwt.NewFromString(testSigningKey)
	require.NoError(t, err)
	return service
}

func TestNew(t *testing.T) {
	t.Run("rejects empty key", func(t *testing.T) {
		_, err := jwt.New(nil)
		assert.ErrorIs(t, err, jwt.ErrMissingSigningKey)
	})

	t.Run("rejects short key", func(t *testing.T) {
		_, err := jwt.NewFromString("too-short")
		assert.ErrorIs(t, err, jwt.ErrInvalidSigningKey)
	})

	t.Run("accepts 32 byte key", func(t *testing.T) {
		_, err := jwt.New(make([]byte, 32))
		assert.NoError(t, err)
	})
}

func TestGenerateParse(t *testing.T) {
	service := newService(t)

	t.Run("round trip preserves claims", func(t *testing.T) {
		claims := accessClaims{
			StandardClaims: jwt.StandardClaims{
				ID:        "jti-123",
				Subject:   "user_001",
				IssuedAt:  time.Now().Unix(),
				ExpiresAt: time.Now().Add(15 * time.Minute).Unix(),
			},
			Email: "demo@example.com",
		}

		token, err := service.Generate(claims)
		require.NoError(t, err)
		assert.Len(t, strings.Split(token, "."), 3)

		var parsed accessClaims
		require.NoError(t, service.Parse(token, &parsed))
		assert.Equal(t, claims.Subject, parsed.Subject)
		assert.Equal(t, claims.Email, parsed.Email)
		assert.Equal(t, claims.ID, parsed.ID)
	})

	t.Run("nil claims rejected", func(t *testing.T) {
		_, err := service.Generate(nil)
		assert.ErrorIs(t, err, jwt.ErrMissingClaims)
	})
}

func TestParseRejections(t *testing.T) {
	service := newService(t)

	validToken := func(exp time.Time) string {
		token, err := service.Generate(accessClaims{
			StandardClaims: jwt.StandardClaims{
				Subject:   "user_001",
				IssuedAt:  time.Now().Unix(),
				ExpiresAt: exp.Unix(),
			},
		})
		require.NoError(t, err)
		return token
	}

	t.Run("wrong segment count", func(t *testing.T) {
		var claims accessClaims
		err := service.Parse("only.two", &claims)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("garbage header", func(t *testing.T) {
		var claims accessClaims
		err := service.Parse("!!!.payload.sig", &claims)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("tampered signature", func(t *testing.T) {
		token := validToken(time.Now().Add(time.Hour))
		tampered := token[:len(token)-2] + "xx"

		var claims accessClaims
		err := service.Parse(tampered, &claims)
		assert.ErrorIs(t, err, jwt.ErrInvalidSignature)
	})

	t.Run("tampered payload", func(t *testing.T) {
		token := validToken(time.Now().Add(time.Hour))
		parts := strings.Split(token, ".")
		parts[1] = base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"attacker"}`))

		var claims accessClaims
		err := service.Parse(strings.Join(parts, "."), &claims)
		assert.ErrorIs(t, err, jwt.ErrInvalidSignature)
	})

	t.Run("wrong key", func(t *testing.T) {
		other, err := jwt.NewFromString("another-secret-key-32-bytes-minimum!!")
		require.NoError(t, err)

		token := validToken(time.Now().Add(time.Hour))
		var claims accessClaims
		assert.ErrorIs(t, other.Parse(token, &claims), jwt.ErrInvalidSignature)
	})

	t.Run("expired token", func(t *testing.T) {
		token := validToken(time.Now().Add(-time.Second))
		var claims accessClaims
		assert.ErrorIs(t, service.Parse(token, &claims), jwt.ErrExpiredToken)
	})

	t.Run("exp equal to now is expired", func(t *testing.T) {
		token := validToken(time.Now())
		var claims accessClaims
		assert.ErrorIs(t, service.Parse(token, &claims), jwt.ErrExpiredToken)
	})

	t.Run("not yet valid", func(t *testing.T) {
		token, err := service.Generate(accessClaims{
			StandardClaims: jwt.StandardClaims{
				Subject:   "user_001",
				NotBefore: time.Now().Add(time.Hour).Unix(),
				ExpiresAt: time.Now().Add(2 * time.Hour).Unix(),
			},
		})
		require.NoError(t, err)

		var claims accessClaims
		assert.ErrorIs(t, service.Parse(token, &claims), jwt.ErrInvalidToken)
	})
}

// forgeToken builds a token with an arbitrary header, reusing the payload and
// key of a legitimately generated token.
func forgeToken(t *testing.T, service *jwt.Service, headerJSON string) string {
	t.Helper()

	token, err := service.Generate(accessClaims{
		StandardClaims: jwt.StandardClaims{
			Subject:   "user_001",
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	parts[0] = base64.RawURLEncoding.EncodeToString([]byte(headerJSON))
	return strings.Join(parts, ".")
}

func TestAlgorithmConfusion(t *testing.T) {
	service := newService(t)

	t.Run("alg none rejected before signature check", func(t *testing.T) {
		forged := forgeToken(t, service, `{"alg":"none","typ":"JWT"}`)

		var claims accessClaims
		err := service.Parse(forged, &claims)
		assert.ErrorIs(t, err, jwt.ErrUnexpectedSigningMethod)
	})

	t.Run("alg RS256 rejected", func(t *testing.T) {
		forged := forgeToken(t, service, `{"alg":"RS256","typ":"JWT"}`)

		var claims accessClaims
		err := service.Parse(forged, &claims)
		assert.ErrorIs(t, err, jwt.ErrUnexpectedSigningMethod)
	})

	t.Run("crit header rejected", func(t *testing.T) {
		forged := forgeToken(t, service, `{"alg":"HS256","typ":"JWT","crit":["exp"]}`)

		var claims accessClaims
		err := service.Parse(forged, &claims)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
