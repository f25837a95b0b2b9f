package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload the gateway cares about: the standard claims
// plus the permissions granted to the caller.
type Claims struct {
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

var (
	errMissingAuth = errors.New("authorization header is expected")
	errMalformed   = errors.New("authorization header must be Bearer token")
)

// bearerToken extracts the token from the Authorization header.
func bearerToken(c *gin.Context) (string, error) {
	auth := c.GetHeader("Authorization")
	if auth == "" {
		return "", errMissingAuth
	}
	parts := strings.Fields(auth)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errMalformed
	}
	return parts[1], nil
}

// RequirePermission validates the bearer token and checks that its
// permissions claim contains the given permission. Requests without a valid
// token get 401; valid tokens missing the permission get 403.
func RequirePermission(secret []byte, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := bearerToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token is invalid"})
			return
		}

		for _, p := range claims.Permissions {
			if p == permission {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "permission not found"})
	}
}
