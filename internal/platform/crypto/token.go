package crypto

import (
	"fmt"
	"time"

	"photodrive/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// TokenGenerator defines the interface for creating and verifying JWTs.
type TokenGenerator interface {
	NewPair(user *domain.User) (accessToken, refreshToken string, err error)
	Verify(accessToken string) (*Claims, error)
}

// JWTGenerator is a concrete implementation of TokenGenerator using HS256 JWTs.
type JWTGenerator struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTGenerator creates a new JWTGenerator from the signing secrets and
// time-to-live durations.
func NewJWTGenerator(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTGenerator {
	return &JWTGenerator{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// Claims represents the standard JWT claims for the application. Email is the
// identity string recorded on folder records.
type Claims struct {
	UserID bson.ObjectID `json:"userId"`
	Email  string        `json:"email"`
	jwt.RegisteredClaims
}

// NewPair generates a new access and refresh token for the given user.
func (g *JWTGenerator) NewPair(user *domain.User) (string, string, error) {
	accessToken, err := g.sign(user, g.accessSecret, g.accessTTL)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := g.sign(user, g.refreshSecret, g.refreshTTL)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

func (g *JWTGenerator) sign(user *domain.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Verify parses and validates an access token, returning its claims.
func (g *JWTGenerator) Verify(accessToken string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(accessToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return g.accessSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse access token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid access token")
	}
	return claims, nil
}
