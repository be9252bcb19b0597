package auth

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

type tokenKey struct{}

// WithToken stores the caller's bearer token for the gateway.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the bearer token, or "" for anonymous calls.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// BearerToken copies the Authorization bearer token into the request
// context. Requests without one continue anonymously.
func BearerToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") && strings.TrimSpace(token) != "" {
			c.Request = c.Request.WithContext(WithToken(c.Request.Context(), strings.TrimSpace(token)))
		}
		c.Next()
	}
}
