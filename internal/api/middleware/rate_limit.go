package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"pptq-absensi/pkg/redis"
	"pptq-absensi/pkg/response"
)

// RateLimit sliding-window limit on a login route, kept in Redis. Attempts
// count per client IP and, when the body names an account, per account
// across all IPs. With rdb nil, or when Redis errors, requests pass.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}

		keys := []string{fmt.Sprintf("rate_limit:%s:ip:%s", c.FullPath(), c.ClientIP())}
		if account := loginAccount(c); account != "" {
			keys = append(keys, fmt.Sprintf("rate_limit:%s:account:%s", c.FullPath(), account))
		}

		for _, key := range keys {
			allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
			if err != nil {
				break
			}
			if !allowed {
				c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
				response.Error(c, http.StatusTooManyRequests, 10004, "too many requests, try again later")
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

// loginAccount peeks the username (admin login) or id_pembina (supervisor
// login) from a JSON body and puts the body back for the handler.
func loginAccount(c *gin.Context) string {
	if c.Request.Body == nil {
		return ""
	}
	raw, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil {
		return ""
	}

	var body struct {
		Username  string `json:"username"`
		IDPembina string `json:"id_pembina"`
	}
	if json.Unmarshal(raw, &body) != nil {
		return ""
	}
	if u := strings.ToLower(strings.TrimSpace(body.Username)); u != "" {
		return "admin:" + u
	}
	if id := strings.TrimSpace(body.IDPembina); id != "" {
		return "pembina:" + id
	}
	return ""
}
