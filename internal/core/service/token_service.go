package service

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chatapp/chat-api/internal/core/domain"
	"github.com/chatapp/chat-api/internal/core/ports"
)

// sessionClaims is the wire shape of a session token.
type sessionClaims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256-signed session tokens.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	tokenTTL time.Duration
}

func NewTokenService(secret, issuer, audience string, tokenTTL time.Duration) *TokenService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &TokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		tokenTTL: tokenTTL,
	}
}

// Issue signs a token carrying the user's id, username, and email. The token
// expires tokenTTL after issuance and is never revoked server-side.
func (s *TokenService) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Validate parses and verifies a token string. Malformed encoding, a bad
// signature, a wrong issuer or audience, expiry, and a missing subject all
// collapse into domain.ErrInvalidToken.
func (s *TokenService) Validate(token string) (*ports.Claims, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithAudience(s.audience))
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, domain.ErrInvalidToken
	}

	out := &ports.Claims{
		UserID:   userID,
		Username: claims.Username,
		Email:    claims.Email,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.Expiry = claims.ExpiresAt.Time
	}
	return out, nil
}

var _ ports.TokenService = (*TokenService)(nil)
