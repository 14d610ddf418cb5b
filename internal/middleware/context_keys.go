package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// contextKey is a private type for context keys set by this package. Using a
// custom type prevents collisions.
type contextKey string

const (
	// loggerCtxKey stores the request-scoped logger in the request context.
	loggerCtxKey = contextKey("logger")
	// accountIDKey stores the authenticated caller's account ID.
	accountIDKey = contextKey("accountID")
)

// GetLoggerFromCtx retrieves the request-scoped logger from a standard
// context. It returns the default logger if none is found.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// GetAccountIDFromContext retrieves the authenticated caller's account ID
// from the Gin context. It returns the account ID and a boolean indicating
// whether it was found.
func GetAccountIDFromContext(c *gin.Context) (string, bool) {
	if accountIDVal, exists := c.Get(string(accountIDKey)); exists {
		if accountID, ok := accountIDVal.(string); ok {
			return accountID, true
		}
		return "", false
	}
	// check in the request context as well
	if accountIDVal := c.Request.Context().Value(accountIDKey); accountIDVal != nil {
		if accountID, ok := accountIDVal.(string); ok {
			return accountID, true
		}
	}
	return "", false
}
