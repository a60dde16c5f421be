// Package auth implements token minting/validation and password hashing for
// the trackIt server.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/trackit/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered claims plus the trackIt identity fields.
// Subject holds the account email (or the synthetic guest email). Guest
// tokens have UserID zero and IsGuest set.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	IsGuest  bool   `json:"is_guest,omitempty"`
}

// GenerateToken signs claims with HS256. The expiry is set here from
// validityDuration so callers cannot mint tokens without one.
func GenerateToken(claims Claims, secretKey []byte, validityDuration time.Duration) (string, error) {
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(validityDuration))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken validates a signed token and returns its claims. Expired tokens
// map to common.ErrTokenExpired, everything else invalid to
// common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
