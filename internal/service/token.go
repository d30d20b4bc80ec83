package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

type TokenService struct {
	Secret []byte
}

// Issue signs a token carrying only the user id. Tokens have no
// expiry claim, validity is signature + payload only.
func (t *TokenService) Issue(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(t.Secret)
}

func (t *TokenService) Verify(raw string) (uint, error) {
	tok, err := jwt.Parse(raw, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signature method: %v", tok.Header["alg"])
		}
		return t.Secret, nil
	})
	if err != nil || !tok.Valid {
		return 0, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("cannot parse claims")
	}

	id, ok := claims["userId"].(float64)
	if !ok {
		return 0, fmt.Errorf("token missing userId claim")
	}

	return uint(id), nil
}
