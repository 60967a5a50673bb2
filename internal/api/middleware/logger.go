package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"issue-hub/internal/pkg/logger"
	"issue-hub/pkg/constants"
	"issue-hub/pkg/errors"
)

// LoggerMiddleware 日志中间件
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		cost := time.Since(start)
		fields := []zap.Field{
			zap.Int("code", BusinessCode(c)),
			zap.String("ip", c.ClientIP()),
			zap.String("user-agent", c.Request.UserAgent()),
		}
		if user := CurrentUser(c); user != nil {
			fields = append(fields, zap.String("user_id", user.ID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		logger.Info(fmt.Sprintf("%s %s %s %v %.3fs %v", c.Request.Proto, c.Request.Method, path, c.Writer.Status(), cost.Seconds(), query), fields...)
	}
}

// BusinessCode 响应体中的业务码，未经过统一响应的请求按 HTTP 状态处理
func BusinessCode(c *gin.Context) int {
	if code, ok := c.Get(constants.ContextCodeKey); ok {
		if v, ok := code.(int); ok {
			return v
		}
	}
	if c.Writer.Status() >= 500 {
		return errors.CodeInternalError
	}
	return c.Writer.Status()
}
