package dto

import "time"

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Title       string  `json:"title" binding:"max=200"`
	Description *string `json:"description"`
}

// ProjectUpdate 项目部分更新字段
type ProjectUpdate struct {
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`
}

// UpdateProjectRequest 更新项目请求
type UpdateProjectRequest struct {
	ID string `json:"id"`
	ProjectUpdate
}

// AddMemberRequest 添加项目成员请求
type AddMemberRequest struct {
	UserID string `json:"user_id"`
}

// ProjectResponse 项目响应，host/members 已解析为用户
type ProjectResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Host        *UserResponse   `json:"host"`
	Members     []*UserResponse `json:"members"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
