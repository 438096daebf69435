package session

import (
	"fmt"
	"time"

	"travia-admin/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// IssueToken creates the access token handed to the dashboard at login.
// The token carries the session id; authority over the session remains
// with the stored record, so logout invalidates the token immediately.
// No exp claim: sessions have no token-level expiry, only the optional
// record TTL.
func (s *Store) IssueToken(sid string, p *domain.Principal) (string, error) {
	claims := jwt.MapClaims{
		"sid":  sid,
		"sub":  p.ID,
		"role": string(p.Role),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("session: sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a token signature and returns the session id.
func (s *Store) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("session: parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("session: invalid token")
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", fmt.Errorf("session: invalid sid in token")
	}
	return sid, nil
}
