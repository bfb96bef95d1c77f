package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"adces/internal/policy"
	"adces/pkg/jwt"
	"adces/pkg/redis"
	"adces/pkg/response"
)

// Context keys set by JWTAuth.
const (
	CtxUserID       = "user_id"
	CtxRole         = "role"
	CtxDepartmentID = "department_id"
	CtxTokenID      = "token_id"
	CtxTokenExpiry  = "token_expiry"
)

// JWTAuth validates the bearer token and puts the session identity on
// the gin context. Revoked tokens are rejected when Redis is available.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, response.CodeUnauthorized, "missing authorization header")
			c.Abort()
			return
		}

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			response.Unauthorized(c, response.CodeUnauthorized, "authorization header must be a bearer token")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(tokenString)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				response.Unauthorized(c, response.CodeUnauthorized, "token expired")
			} else {
				response.Unauthorized(c, response.CodeUnauthorized, "invalid token")
			}
			c.Abort()
			return
		}
		if claims.TokenType != "access" {
			response.Unauthorized(c, response.CodeUnauthorized, "not an access token")
			c.Abort()
			return
		}

		if rdb != nil {
			revoked, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				logger.Warn("blacklist check failed, continuing", zap.Error(err))
			} else if revoked {
				response.Unauthorized(c, response.CodeUnauthorized, "token revoked")
				c.Abort()
				return
			}
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxDepartmentID, claims.DepartmentID)
		c.Set(CtxTokenID, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(CtxTokenExpiry, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

// Permission gates a route on the policy table. Must run after JWTAuth.
func Permission(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		if !policy.Can(role, action) {
			response.Forbidden(c, response.CodeForbidden, "permission denied")
			c.Abort()
			return
		}
		c.Next()
	}
}
