package handler

import (
	"github.com/gin-gonic/gin"

	"issue-hub/internal/dto"
	"issue-hub/internal/service"
	"issue-hub/pkg/utils"
)

type IssueHandler struct {
	issueService service.IssueService
}

func NewIssueHandler(issueService service.IssueService) *IssueHandler {
	return &IssueHandler{issueService: issueService}
}

// Get 获取问题详情
// @Summary 获取问题详情
// @Tags 问题
// @Produce json
// @Security ApiKeyAuth
// @Param id query string true "问题ID"
// @Success 200 {object} utils.Response{data=dto.IssueResponse}
// @Router /api/v1/issue [get]
func (h *IssueHandler) Get(c *gin.Context) {
	var query dto.IDQuery
	if !bindQuery(c, &query) {
		return
	}

	issue, err := h.issueService.Get(query.ID, currentUser(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, issue)
}

// Create 创建问题
// @Summary 创建问题
// @Description 当前用户为报告人，状态默认为 OPEN
// @Tags 问题
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateIssueRequest true "问题信息"
// @Success 200 {object} utils.Response{data=dto.IssueResponse}
// @Router /api/v1/issue [post]
func (h *IssueHandler) Create(c *gin.Context) {
	var req dto.CreateIssueRequest
	if !bindJSON(c, &req) {
		return
	}

	issue, err := h.issueService.Create(&req, currentUser(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, issue)
}

// Update 更新问题
// @Summary 更新问题
// @Description 只更新请求中出现的字段
// @Tags 问题
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.UpdateIssueRequest true "问题信息"
// @Success 200 {object} utils.Response{data=dto.IssueResponse}
// @Router /api/v1/issue [put]
func (h *IssueHandler) Update(c *gin.Context) {
	var req dto.UpdateIssueRequest
	if !bindJSON(c, &req) {
		return
	}

	issue, err := h.issueService.Update(req.ID, req.IssueUpdate, currentUser(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, issue)
}

// Delete 删除问题
// @Summary 删除问题
// @Tags 问题
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "问题ID"
// @Success 200 {object} utils.Response{data=dto.DeleteResponse}
// @Router /api/v1/issue/{id} [delete]
func (h *IssueHandler) Delete(c *gin.Context) {
	deleted, err := h.issueService.Delete(c.Param("id"), currentUser(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, dto.DeleteResponse{Deleted: deleted})
}

// AssignUsers 指派用户
// @Summary 指派用户到问题
// @Description 非项目成员及已指派的用户会被忽略
// @Tags 问题
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "问题ID"
// @Param request body dto.AssignUsersRequest true "用户ID列表"
// @Success 200 {object} utils.Response{data=dto.IssueResponse}
// @Router /api/v1/issue/{id}/assignees [post]
func (h *IssueHandler) AssignUsers(c *gin.Context) {
	var req dto.AssignUsersRequest
	if !bindJSON(c, &req) {
		return
	}

	issue, err := h.issueService.AssignUsers(c.Param("id"), req.UserIDs, currentUser(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, issue)
}

// RemoveAssignee 取消指派
// @Summary 从问题中移除指派用户
// @Tags 问题
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "问题ID"
// @Param user_id path string true "用户ID"
// @Success 200 {object} utils.Response{data=dto.IssueResponse}
// @Router /api/v1/issue/{id}/assignees/{user_id} [delete]
func (h *IssueHandler) RemoveAssignee(c *gin.Context) {
	issue, err := h.issueService.RemoveAssignee(c.Param("id"), c.Param("user_id"), currentUser(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, issue)
}
