package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/konega2/portfolio-sub001/internal/common"
)

// Identity is what a session token asserts about its bearer.
type Identity struct {
	ID      string
	Usuario string
	Rol     string
}

// Claims is the token payload: the standard registered claims plus the
// account identity.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string `json:"id"`
	Usuario   string `json:"usuario"`
	Rol       string `json:"rol"`
}

// Identity returns the account identity carried by the claims.
func (c *Claims) Identity() Identity {
	return Identity{ID: c.AccountID, Usuario: c.Usuario, Rol: c.Rol}
}

func GenerateToken(id Identity, secretKey []byte, validityDuration time.Duration, now time.Time) (string, error) {
	if len(secretKey) == 0 {
		return "", errors.New("empty signing secret")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		AccountID: id.ID,
		Usuario:   id.Usuario,
		Rol:       id.Rol,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}

// ParseToken verifies tokenString at the instant now. Only HS256 is accepted
// and exp is mandatory. Expiry maps to common.ErrTokenExpired; every other
// failure maps to common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte, now time.Time) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.AccountID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
