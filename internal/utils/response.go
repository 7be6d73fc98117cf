package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imanrao90/doctor-appointment-backend/internal/apperr"
)

// OK writes the success envelope, merging any extra payload fields.
func OK(c *gin.Context, extra gin.H) {
	body := gin.H{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Fail writes the failure envelope with the status code mapped from the
// error's kind. The envelope shape is fixed for client compatibility.
func Fail(c *gin.Context, err error) {
	c.JSON(apperr.Status(err), gin.H{"success": false, "message": apperr.Message(err)})
}

// FailMsg writes the failure envelope with an explicit status and message.
func FailMsg(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}
