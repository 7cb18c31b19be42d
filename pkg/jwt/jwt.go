package jwt

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// minKeySize is the minimum HS256 key length in bytes.
const minKeySize = 32

// signingMethod is the only algorithm this service produces or accepts.
const signingMethod = "HS256"

type header struct {
	Alg  string   `json:"alg"`
	Typ  string   `json:"typ,omitempty"`
	Crit []string `json:"crit,omitempty"`
}

// Service generates and parses HMAC-SHA256 signed tokens.
type Service struct {
	signingKey []byte
}

// New creates a JWT service with the given signing key.
// The key must be at least 32 bytes for HS256.
func New(signingKey []byte) (*Service, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}
	if len(signingKey) < minKeySize {
		return nil, fmt.Errorf("%w: need at least %d bytes, got %d", ErrInvalidSigningKey, minKeySize, len(signingKey))
	}
	return &Service{signingKey: signingKey}, nil
}

// NewFromString creates a JWT service from a string key.
func NewFromString(signingKey string) (*Service, error) {
	return New([]byte(signingKey))
}

// Generate creates a signed compact JWS from the given claims.
func (s *Service) Generate(claims any) (string, error) {
	if claims == nil {
		return "", ErrMissingClaims
	}

	headerJSON, err := json.Marshal(header{Alg: signingMethod, Typ: "JWT"})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}
	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}

	signingInput := base64.RawURLEncoding.EncodeToString(headerJSON) +
		"." + base64.RawURLEncoding.EncodeToString(claimsJSON)

	return signingInput + "." + s.sign(signingInput), nil
}

// Parse verifies the token and unmarshals its payload into claims.
//
// The declared algorithm is checked before any MAC computation so an
// attacker-controlled header can never downgrade verification. Tokens
// carrying a crit header are rejected: this service understands no
// extensions. Temporal claims are validated with zero clock skew.
func (s *Service) Parse(token string, claims any) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return fmt.Errorf("%w: expected 3 segments, got %d", ErrInvalidToken, len(parts))
	}

	headerJSON, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return fmt.Errorf("%w: malformed header segment", ErrInvalidToken)
	}
	var h header
	if err := json.Unmarshal(headerJSON, &h); err != nil {
		return fmt.Errorf("%w: malformed header", ErrInvalidToken)
	}
	if h.Alg != signingMethod {
		return fmt.Errorf("%w: %q", ErrUnexpectedSigningMethod, h.Alg)
	}
	if len(h.Crit) > 0 {
		return fmt.Errorf("%w: unsupported crit header", ErrInvalidToken)
	}

	signingInput := parts[0] + "." + parts[1]
	if !hmac.Equal([]byte(s.sign(signingInput)), []byte(parts[2])) {
		return ErrInvalidSignature
	}

	claimsJSON, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return fmt.Errorf("%w: malformed claims segment", ErrInvalidToken)
	}
	if err := json.Unmarshal(claimsJSON, claims); err != nil {
		return fmt.Errorf("%w: malformed claims", ErrInvalidToken)
	}

	var std StandardClaims
	if err := json.Unmarshal(claimsJSON, &std); err != nil {
		return fmt.Errorf("%w: malformed claims", ErrInvalidToken)
	}
	return std.Valid(time.Now().UTC())
}

func (s *Service) sign(signingInput string) string {
	mac := hmac.New(sha256.New, s.signingKey)
	mac.Write([]byte(signingInput))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
