package handler

import (
	"log"
	"net/http"

	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/apperr"

	"github.com/gin-gonic/gin"
)

// respondError maps an engine failure to its HTTP status. Internal errors are
// logged server-side and surfaced with a generic message only.
func respondError(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, gin.H{"error": apperr.Message(err)})
}
