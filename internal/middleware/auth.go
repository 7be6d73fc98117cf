package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imanrao90/doctor-appointment-backend/internal/utils"
)

// Context keys populated by the guards.
const (
	CtxDoctorID = "docId"
	CtxUserID   = "userId"
)

// Token headers are part of the wire contract with the existing frontends:
// atoken for admin, dtoken for doctor, token for user.
const (
	HeaderAdminToken  = "atoken"
	HeaderDoctorToken = "dtoken"
	HeaderUserToken   = "token"
)

func reject(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": message})
}

// AdminAuth verifies the admin token header.
func AdminAuth(secret, adminEmail string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.GetHeader(HeaderAdminToken)
		if tokenStr == "" {
			reject(c, "Not Authorized login again")
			return
		}
		claims, err := utils.ValidateJWT(secret, tokenStr)
		if err != nil || claims.Role != utils.RoleAdmin || claims.ID != adminEmail {
			reject(c, "Not Authorized login again")
			return
		}
		c.Next()
	}
}

// DoctorAuth verifies the doctor token header and exposes the doctor id to
// handlers via the context.
func DoctorAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.GetHeader(HeaderDoctorToken)
		if tokenStr == "" {
			reject(c, "Not Authorized login again")
			return
		}
		claims, err := utils.ValidateJWT(secret, tokenStr)
		if err != nil || claims.Role != utils.RoleDoctor {
			reject(c, "Not Authorized login again")
			return
		}
		c.Set(CtxDoctorID, claims.ID)
		c.Next()
	}
}

// UserAuth verifies the user token header and exposes the user id to
// handlers via the context.
func UserAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.GetHeader(HeaderUserToken)
		if tokenStr == "" {
			reject(c, "Not Authorized login again")
			return
		}
		claims, err := utils.ValidateJWT(secret, tokenStr)
		if err != nil || claims.Role != utils.RoleUser {
			reject(c, "Not Authorized login again")
			return
		}
		c.Set(CtxUserID, claims.ID)
		c.Next()
	}
}
