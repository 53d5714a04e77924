package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shuttersense/backend/pkg/response"
)

// BodyLimit 全局请求体大小限制中间件
// 超限由 MaxBytesReader 在读取时触发，这里统一转为业务响应
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()

		if c.IsAborted() {
			return
		}
		for _, ginErr := range c.Errors {
			var maxBytesErr *http.MaxBytesError
			if errors.As(ginErr.Err, &maxBytesErr) {
				response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
				return
			}
		}
	}
}
