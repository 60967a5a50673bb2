package handler

import (
	"github.com/gin-gonic/gin"

	"issue-hub/internal/api/middleware"
	"issue-hub/internal/dto"
	"issue-hub/pkg/utils"
)

// currentUser 认证中间件设置的调用者，未登录时为 nil
func currentUser(c *gin.Context) *dto.UserInfo {
	return middleware.CurrentUser(c)
}

// bindJSON 绑定请求体，失败时直接写入400响应
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		utils.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return false
	}
	return true
}

// bindQuery 绑定查询参数，失败时直接写入400响应
func bindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		utils.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return false
	}
	return true
}
