package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rohan/workout-buddy/internal/apperrors"
)

// TokenTTL is the fixed validity window of a session token.
const TokenTTL = 72 * time.Hour

// NowFunc returns the current time. It can be overridden in tests.
var NowFunc = time.Now

// Claims is the session-token payload: the registered claims plus the
// user identifier the token asserts.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// TokenService mints and verifies HS256 session tokens. The signing
// secret is fixed at construction.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: TokenTTL}
}

// Mint signs a token asserting userID, expiring after the fixed TTL.
func (t *TokenService) Mint(userID string) (string, error) {
	now := NowFunc()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			ID:        uuid.New().String(),
		},
		UserID: userID,
	})
	return token.SignedString(t.secret)
}

// Verify checks signature and expiry and returns the embedded user id.
// Any failure collapses into a single AuthError; callers never learn
// whether the token was malformed, forged, or expired.
func (t *TokenService) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", apperrors.Auth("Request is not authorized")
	}
	return claims.UserID, nil
}
