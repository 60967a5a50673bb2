package handler

import (
	"github.com/gin-gonic/gin"

	"issue-hub/internal/dto"
	"issue-hub/internal/service"
	"issue-hub/pkg/utils"
)

type ProjectHandler struct {
	projectService service.ProjectService
	issueService   service.IssueService
}

func NewProjectHandler(projectService service.ProjectService, issueService service.IssueService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		issueService:   issueService,
	}
}

// ListMine 我的项目
// @Summary 获取当前用户参与的项目
// @Description 返回当前用户作为负责人或成员的全部项目
// @Tags 项目
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=[]dto.ProjectResponse}
// @Router /api/v1/projects [get]
func (h *ProjectHandler) ListMine(c *gin.Context) {
	projects, err := h.projectService.ListMine(currentUser(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, projects)
}

// Search 搜索项目
// @Summary 在可访问的项目中搜索
// @Description 按标题或描述匹配，不区分大小写
// @Tags 项目
// @Produce json
// @Security ApiKeyAuth
// @Param keyword query string false "关键字"
// @Success 200 {object} utils.Response{data=[]dto.ProjectResponse}
// @Router /api/v1/projects/search [get]
func (h *ProjectHandler) Search(c *gin.Context) {
	var query dto.KeywordQuery
	if !bindQuery(c, &query) {
		return
	}

	projects, err := h.projectService.Search(query.Keyword, currentUser(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, projects)
}

// Get 获取项目详情
// @Summary 获取项目详情
// @Tags 项目
// @Produce json
// @Security ApiKeyAuth
// @Param id query string true "项目ID"
// @Success 200 {object} utils.Response{data=dto.ProjectResponse}
// @Router /api/v1/project [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	var query dto.IDQuery
	if !bindQuery(c, &query) {
		return
	}

	project, err := h.projectService.Get(query.ID, currentUser(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, project)
}

// Create 创建项目
// @Summary 创建项目
// @Description 当前用户成为项目负责人
// @Tags 项目
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateProjectRequest true "项目信息"
// @Success 200 {object} utils.Response{data=dto.ProjectResponse}
// @Router /api/v1/project [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req dto.CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.Create(&req, currentUser(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, project)
}

// Update 更新项目
// @Summary 更新项目
// @Description 只更新请求中出现的字段，仅负责人可操作
// @Tags 项目
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.UpdateProjectRequest true "项目信息"
// @Success 200 {object} utils.Response{data=dto.ProjectResponse}
// @Router /api/v1/project [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	var req dto.UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.Update(req.ID, req.ProjectUpdate, currentUser(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, project)
}

// Delete 删除项目
// @Summary 删除项目
// @Description 仅负责人可操作，项目下的问题不会被删除
// @Tags 项目
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "项目ID"
// @Success 200 {object} utils.Response{data=dto.DeleteResponse}
// @Router /api/v1/project/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	deleted, err := h.projectService.Delete(c.Param("id"), currentUser(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, dto.DeleteResponse{Deleted: deleted})
}

// AddMember 添加项目成员
// @Summary 添加项目成员
// @Tags 项目
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "项目ID"
// @Param request body dto.AddMemberRequest true "成员"
// @Success 200 {object} utils.Response{data=dto.ProjectResponse}
// @Router /api/v1/project/{id}/members [post]
func (h *ProjectHandler) AddMember(c *gin.Context) {
	var req dto.AddMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.AddMember(c.Param("id"), req.UserID, currentUser(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, project)
}

// RemoveMember 移除项目成员
// @Summary 移除项目成员
// @Description 已指派给该成员的问题保持不变
// @Tags 项目
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "项目ID"
// @Param user_id path string true "用户ID"
// @Success 200 {object} utils.Response{data=dto.ProjectResponse}
// @Router /api/v1/project/{id}/members/{user_id} [delete]
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	project, err := h.projectService.RemoveMember(c.Param("id"), c.Param("user_id"), currentUser(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, project)
}

// ListIssues 项目下的问题
// @Summary 获取项目下的问题列表
// @Tags 项目
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "项目ID"
// @Success 200 {object} utils.Response{data=[]dto.IssueResponse}
// @Router /api/v1/project/{id}/issues [get]
func (h *ProjectHandler) ListIssues(c *gin.Context) {
	issues, err := h.issueService.List(c.Param("id"), currentUser(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, issues)
}
