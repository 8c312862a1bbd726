package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/signalist/signalist/internal/watchlist"
)

const identityKey = "identity"

// Identity is a gin middleware that reads the caller identity set by the
// upstream auth proxy. The values are trusted as-is; session verification
// happens before requests reach this service.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := watchlist.Identity{
			UserID: c.GetHeader("X-User-Id"),
			Email:  c.GetHeader("X-User-Email"),
			Name:   c.GetHeader("X-User-Name"),
		}
		if ident.UserID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		c.Set(identityKey, ident)
		c.Next()
	}
}

func identityFrom(c *gin.Context) watchlist.Identity {
	ident, _ := c.MustGet(identityKey).(watchlist.Identity)
	return ident
}
