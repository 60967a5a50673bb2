package dto

import (
	"time"

	"issue-hub/internal/model"
)

// UserSearchQuery 用户搜索请求
type UserSearchQuery struct {
	Keyword string `form:"keyword"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// UserResponse 用户信息（不含密码）
type UserResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	AuthType  string    `json:"auth_type"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse 转换用户模型
func NewUserResponse(u *model.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		AuthType:  u.AuthType,
		CreatedAt: u.CreatedAt,
	}
}

// ToUserInfo 转换为调用者身份
func ToUserInfo(u *model.User) *UserInfo {
	return &UserInfo{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		AuthType:  u.AuthType,
	}
}
