package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"adces/internal/api/middleware"
	"adces/internal/policy"
)

func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.CtxUserID)
}

func currentActor(c *gin.Context) policy.Actor {
	return policy.Actor{
		ID:           c.GetString(middleware.CtxUserID),
		Role:         c.GetString(middleware.CtxRole),
		DepartmentID: c.GetString(middleware.CtxDepartmentID),
	}
}

func currentTokenID(c *gin.Context) (string, time.Time) {
	jti := c.GetString(middleware.CtxTokenID)
	expiry, _ := c.Get(middleware.CtxTokenExpiry)
	if t, ok := expiry.(time.Time); ok {
		return jti, t
	}
	return jti, time.Time{}
}
