package services

import (
	"fmt"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

type Claims struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	UserType string `json:"user_type"`
	jwt.StandardClaims
}

func VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(settingsData.JWT_SECRET_KEY), nil
		},
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func ExtractToken(authorization string) (string, error) {
	splitted := strings.Split(authorization, " ")
	if len(splitted) != 2 || splitted[0] != "Bearer" {
		return "", fmt.Errorf("invalid authorization header")
	}
	return splitted[1], nil
}

func NewClaimsFromContext(ctx *gin.Context) (*Claims, bool) {
	value, exists := ctx.Get("user")
	if !exists {
		return nil, false
	}
	claims, ok := value.(*Claims)
	return claims, ok
}
