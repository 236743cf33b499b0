package service

import (
	"errors"
	"fmt"
	"time"

	"linkfeed/internal/common"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the bcrypt work factor used when none is configured.
const DefaultBcryptCost = 10

// maxPasswordBytes is bcrypt's input limit; longer passwords are truncated.
const maxPasswordBytes = 72

// CredentialsConfig configures a Credentials instance. Secret is required.
// A zero TokenTTL issues tokens that never expire.
type CredentialsConfig struct {
	Secret     string
	BcryptCost int
	TokenTTL   time.Duration
}

// Credentials hashes passwords and signs session tokens with one secret.
type Credentials struct {
	secret []byte
	cost   int
	ttl    time.Duration
	now    func() time.Time
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"userId"`
}

func NewCredentials(cfg CredentialsConfig) (*Credentials, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token signing secret is required")
	}
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &Credentials{
		secret: []byte(cfg.Secret),
		cost:   cost,
		ttl:    cfg.TokenTTL,
		now:    time.Now,
	}, nil
}

// Hash returns a salted bcrypt hash of password. Only the first 72 bytes
// take part.
func (c *Credentials) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(passwordBytes(password), c.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w: %w", common.ErrInvalidArgument, err)
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. A malformed hash never matches.
func (c *Credentials) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), passwordBytes(password)) == nil
}

func passwordBytes(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

// IssueToken signs an HS256 token carrying userID.
func (c *Credentials) IssueToken(userID int) (string, error) {
	now := c.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
		UserID: userID,
	}
	if c.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// VerifyToken checks the signature (and expiry, if any) and returns the user id.
// Every failure is reported as common.ErrInvalidToken.
func (c *Credentials) VerifyToken(token string) (int, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.UserID <= 0 {
		return 0, common.ErrInvalidToken
	}
	return claims.UserID, nil
}
