package middleware

import "github.com/gin-gonic/gin"

const (
	// userIDKey is the key used to store the authenticated user's ID.
	userIDKey = contextKey("userID")

	// tenantsKey holds the tenants granted by the token.
	tenantsKey = contextKey("tenants")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userIDVal, exists := c.Get(string(userIDKey)); exists {
		userID, ok := userIDVal.(string)
		return userID, ok && userID != ""
	}

	// check in the request context as well
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	return userID, ok && userID != ""
}
