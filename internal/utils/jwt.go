package utils

import (
	"time"

	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID       uint           `json:"user_id"`
	RollNumber   string         `json:"roll_number"`
	Role         model.UserRole `json:"role"`
	AdminClubIDs []uint         `json:"admin_club_ids,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken signs a week-long session token carrying the user identity,
// the platform role, and the clubs the user administers.
func GenerateToken(secret []byte, user model.User, adminClubIDs []uint) (string, error) {
	claims := Claims{
		UserID:       user.ID,
		RollNumber:   user.RollNumber,
		Role:         user.Role,
		AdminClubIDs: adminClubIDs,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ParseToken(secret []byte, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}
