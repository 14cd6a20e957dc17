// Package auth issues and parses the signed session tokens the HTTP API
// uses. The token carries the whole authorized session, so request handling
// never re-reads the credential directory.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/ssrdocs/internal/common"
	"github.com/dmitrijs2005/ssrdocs/internal/gate"
)

// Claims extends the registered claims with the session payload.
type Claims struct {
	jwt.RegisteredClaims
	Username string   `json:"username"`
	Projects []string `json:"projects"`
	Admin    bool     `json:"admin,omitempty"`
}

// GenerateToken signs a session into an HS256 token with the given
// validity.
func GenerateToken(s *gate.Session, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID,
			IssuedAt:  jwt.NewNumericDate(s.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Username: s.Username,
		Projects: s.Projects,
		Admin:    s.Admin,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseSession validates a token and reconstructs the session it carries.
// Expired tokens map to common.ErrTokenExpired, anything else invalid to
// common.ErrInvalidToken.
func ParseSession(tokenString string, secretKey []byte) (*gate.Session, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	s := &gate.Session{
		ID:       claims.ID,
		Username: claims.Username,
		Projects: claims.Projects,
		Admin:    claims.Admin,
	}
	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time
	}
	return s, nil
}
