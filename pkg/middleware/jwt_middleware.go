package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"studiocrm/pkg/memcache"
	"studiocrm/pkg/utils"
)

// Context keys set by JWTAuthMiddleware.
const (
	CtxUserID         = "user_id"
	CtxEmail          = "email"
	CtxRole           = "Role"
	CtxTokenID        = "token_id"
	CtxTokenExpiresAt = "token_expires_at"
)

func JWTAuthMiddleware(issuer *utils.TokenIssuer, revoked memcache.RevokedTokenStore) gin.HandlerFunc {

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := issuer.ValidateToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		if revoked.IsRevoked(claims.ID) {
			utils.RespondError(c, http.StatusUnauthorized, "Token is logged out")
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxTokenID, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(CtxTokenExpiresAt, claims.ExpiresAt.Time)
		} else {
			c.Set(CtxTokenExpiresAt, time.Time{})
		}
		c.Next()
	}
}

// RoleMiddleware lets the request through when the caller holds any of roles.
func RoleMiddleware(roles ...string) gin.HandlerFunc {

	return func(c *gin.Context) {
		role := c.GetString(CtxRole)

		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
		c.Abort()
	}
}
