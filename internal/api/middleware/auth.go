package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"issue-hub/internal/dto"
	"issue-hub/internal/pkg/logger"
	"issue-hub/pkg/constants"
)

// TokenVerifier 把 access token 解析为调用者身份
type TokenVerifier interface {
	VerifyToken(token string) (*dto.UserInfo, error)
}

// AuthMiddleware JWT认证中间件
// 只负责解析身份，不拦截请求：没有或无效的 token 时不设置用户，由业务层返回未登录
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, constants.HeaderBearerPrefix) {
			c.Next()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, constants.HeaderBearerPrefix))
		if token == "" {
			c.Next()
			return
		}

		userInfo, err := verifier.VerifyToken(token)
		if err != nil {
			logger.Debug("token 校验失败", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.Next()
			return
		}

		c.Set(constants.ContextUserKey, userInfo)
		c.Next()
	}
}

// CurrentUser 读取当前调用者，未登录时返回 nil
func CurrentUser(c *gin.Context) *dto.UserInfo {
	v, ok := c.Get(constants.ContextUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*dto.UserInfo)
	return user
}
