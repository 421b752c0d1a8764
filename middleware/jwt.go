package middleware

import (
	models "Mixtape/models/postgres"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry keeps a login valid for the whole game week.
const TokenExpiry = 7 * 24 * time.Hour

// Claims is everything the game trusts about an authenticated participant.
type Claims struct {
	ParticipantID string `json:"participantId"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	IsAdmin       bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	if key := os.Getenv("SESSION_SECRET"); key != "" {
		return []byte(key)
	}
	return []byte("default-secret-key-change-in-production-32")
}

// GenerateToken mints the signed session token handed out at login. The
// admin flag comes from the participant row, not from configuration.
func GenerateToken(p *models.Participant) (string, error) {
	claims := Claims{
		ParticipantID: p.ID,
		Email:         p.Email,
		Name:          p.Name,
		IsAdmin:       p.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "mixtape",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ValidateToken parses and verifies a session token.
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
