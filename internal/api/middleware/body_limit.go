package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pptq-absensi/pkg/response"
)

// BodyLimit caps multipart bodies (spreadsheet uploads) at uploadMax and
// every other body at otherMax. A non-positive otherMax falls back to uploadMax.
func BodyLimit(uploadMax, otherMax int64) gin.HandlerFunc {
	if otherMax <= 0 {
		otherMax = uploadMax
	}
	return func(c *gin.Context) {
		maxBytes := otherMax
		if strings.HasPrefix(c.ContentType(), "multipart/") {
			maxBytes = uploadMax
		}

		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "request body too large")
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
