package store

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const jwtIssuer = "vidsage"

// JWTSessionStore issues and validates HS256 session tokens. A revoker
// makes logout effective before token expiry; without one DeleteSession
// is a no-op.
type JWTSessionStore struct {
	secret  []byte
	ttl     time.Duration
	revoker TokenRevoker
}

// NewJWTSessionStore builds a JWT session store. revoker may be nil.
func NewJWTSessionStore(secret string, ttl time.Duration, revoker TokenRevoker) *JWTSessionStore {
	return &JWTSessionStore{
		secret:  []byte(secret),
		ttl:     ttl,
		revoker: revoker,
	}
}

// NewSession creates a signed JWT for the user ID.
func (s *JWTSessionStore) NewSession(userID string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    jwtIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// GetUserIDByToken validates a JWT, checks revocation, and returns the
// subject.
func (s *JWTSessionStore) GetUserIDByToken(tokenString string) (string, bool, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return s.secret, nil
		},
		jwt.WithIssuer(jwtIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", false, err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", false, errors.New("invalid claims")
	}
	if s.revoker != nil {
		revoked, err := s.revoker.IsRevoked(tokenString)
		if err != nil {
			return "", false, err
		}
		if revoked {
			return "", false, nil
		}
	}
	return claims.Subject, true, nil
}

// DeleteSession revokes the token for the remainder of its lifetime.
func (s *JWTSessionStore) DeleteSession(tokenString string) error {
	if s.revoker == nil {
		return nil
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil
	}
	if claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	return s.revoker.Revoke(tokenString, ttl)
}
