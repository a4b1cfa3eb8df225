package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"paint-catalog-service/internal/domain"
)

var (
	// ErrInvalidToken is returned when the token is malformed, unsigned by
	// us, or otherwise not acceptable.
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrExpiredToken is returned when the token has expired.
	ErrExpiredToken = errors.New("auth: token has expired")
)

// Config holds session token settings.
type Config struct {
	SecretKey     string
	TokenDuration time.Duration
	Issuer        string
}

// Claims are the session claims embedded in each token. Role gates which
// route subtree the holder may reach.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// EffectiveRole resolves the role claim, defaulting to CUSTOMER when the
// identity carries none.
func (c *Claims) EffectiveRole() string {
	if c.Role == domain.RoleAdmin {
		return domain.RoleAdmin
	}
	return domain.RoleCustomer
}

// TokenManager issues and validates session tokens.
type TokenManager struct {
	config Config
}

// NewTokenManager creates a TokenManager with the given configuration.
func NewTokenManager(config Config) *TokenManager {
	return &TokenManager{config: config}
}

// Generate signs a session token for the given identity.
func (m *TokenManager) Generate(userID, email, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.config.Issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.TokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.SecretKey))
}

// Validate checks the token signature and lifetime and returns its claims.
func (m *TokenManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(m.config.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TokenDuration returns the configured token lifetime in seconds.
func (m *TokenManager) TokenDuration() int64 {
	return int64(m.config.TokenDuration.Seconds())
}
