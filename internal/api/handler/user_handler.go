package handler

import (
	"github.com/gin-gonic/gin"

	"issue-hub/internal/dto"
	"issue-hub/internal/service"
	"issue-hub/pkg/utils"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Search 搜索用户
// @Summary 按邮箱或姓名搜索用户
// @Description 用于添加项目成员、指派问题时选择用户
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Param keyword query string false "关键字"
// @Param limit query int false "返回数量(默认20)"
// @Success 200 {object} utils.Response{data=[]dto.UserResponse}
// @Router /api/v1/users/search [get]
func (h *UserHandler) Search(c *gin.Context) {
	var query dto.UserSearchQuery
	if !bindQuery(c, &query) {
		return
	}

	users, err := h.userService.Search(&query, currentUser(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, users)
}
