// Package response writes the API's wire-level bodies. The error taxonomy
// is fixed: not-found and store failures carry {"error": message}, auth
// flows carry {"message": message}, and validation failures carry the bare
// field-to-message map.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes any success payload as-is.
func JSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// NoContent writes an empty 204 body.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// NotFound writes a 404 with a human-readable message naming the lookup key.
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"error": msg})
}

// ValidationFailed writes a 400 carrying every field violation at once.
func ValidationFailed(c *gin.Context, details map[string]string) {
	c.JSON(http.StatusBadRequest, details)
}

// PersistenceFailed writes a 500 with the underlying store error message.
func PersistenceFailed(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// Unauthorized writes a 401 with a generic message that never reveals
// which credential was wrong.
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"message": msg})
}

// Internal writes a 500 for unexpected failures in auth flows.
func Internal(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
}

// TooManyRequests is used by the rate-limit middleware.
func TooManyRequests(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
}
