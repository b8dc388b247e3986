package middlewares

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// Auth validates the Bearer token on the Authorization header and stores the
// decoded identity on the request context under "user_id" and "role". Token
// validity is purely cryptographic plus the exp claim; no store access here.
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			abort(c, "no authorization token provided.")
			return
		}

		parts := strings.Fields(auth)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abort(c, "token formatting invalid.")
			return
		}

		claims, err := DecodeToken(parts[1], secret)
		if err != nil {
			log.Println(err)
			abort(c, strings.ToLower(err.Error()))
			return
		}

		id, ok := claims["id"].(float64)
		role, okRole := claims["role"].(string)
		if !ok || !okRole {
			abort(c, "token payload invalid.")
			return
		}

		c.Set("user_id", int64(id))
		c.Set("role", role)
		c.Next()
	}
}

// AdminOnly must run after Auth; it reads the role Auth attached to the
// context and never re-parses the token.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("role")
		if r, ok := role.(string); !ok || r != "admin" {
			abort(c, "admin role access is required.")
			return
		}
		c.Next()
	}
}

func DecodeToken(tokenString string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("token is invalid")
	}

	return claims, nil
}

func abort(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg})
}
