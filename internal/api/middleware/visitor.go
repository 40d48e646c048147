package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// VisitorHeader carries the visitor token in both directions.
	VisitorHeader = "X-Visitor-Token"
	// VisitorKey is the gin context key holding the visitor id.
	VisitorKey = "visitor_id"

	visitorTTL = 30 * 24 * time.Hour
)

// IssueVisitorToken signs a token for the given visitor id.
func IssueVisitorToken(secret []byte, visitorID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   visitorID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(visitorTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseVisitorToken validates a token and returns the visitor id.
func ParseVisitorToken(secret []byte, tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid visitor token: %w", err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("visitor token has no subject")
	}
	return claims.Subject, nil
}

// Visitor identifies the anonymous caller. The token is read from the
// Authorization header, the X-Visitor-Token header or the ?token= query.
// Callers without a valid token get a fresh identity, returned in
// X-Visitor-Token, instead of being rejected.
func Visitor(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			tokenString = strings.TrimPrefix(h, "Bearer ")
		}
		if tokenString == "" {
			tokenString = c.GetHeader(VisitorHeader)
		}
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString != "" {
			id, err := ParseVisitorToken(secret, tokenString)
			if err == nil {
				c.Set(VisitorKey, id)
				c.Header(VisitorHeader, tokenString)
				c.Next()
				return
			}
			slog.Debug("discarding visitor token", "error", err)
		}

		id := uuid.New().String()
		token, err := IssueVisitorToken(secret, id)
		if err != nil {
			slog.Error("issue visitor token", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue visitor token"})
			return
		}
		c.Set(VisitorKey, id)
		c.Header(VisitorHeader, token)
		c.Next()
	}
}

// VisitorID returns the id set by Visitor.
func VisitorID(c *gin.Context) string {
	return c.GetString(VisitorKey)
}
