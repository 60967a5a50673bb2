package auth

import (
	"strings"

	"github.com/samber/lo"

	"issue-hub/internal/dto"
	pkgErrors "issue-hub/pkg/errors"
)

// Resource 可授权资源，提供已取出的 host 与成员ID
type Resource interface {
	GetHostID() string
	GetMemberIDs() []string
}

// RequireAuthenticated 要求调用者已登录
func RequireAuthenticated(caller *dto.UserInfo) error {
	if caller == nil || caller.ID == "" {
		return pkgErrors.ErrUnauthorized
	}
	return nil
}

// IsHost 是否为资源的 host
func IsHost(r Resource, userID string) bool {
	return r != nil && userID != "" && r.GetHostID() == userID
}

// IsMember 是否为资源成员
func IsMember(r Resource, userID string) bool {
	return r != nil && userID != "" && lo.Contains(r.GetMemberIDs(), userID)
}

// HasProjectAccess host 或成员
func HasProjectAccess(r Resource, userID string) bool {
	return IsHost(r, userID) || IsMember(r, userID)
}

// HasHostAccess 仅 host
func HasHostAccess(r Resource, userID string) bool {
	return IsHost(r, userID)
}

// Role 资源内角色
type Role string

const (
	RoleHost   Role = "host"
	RoleMember Role = "member"
)

// Permission 内置权限
type Permission string

const (
	PermProjectView         Permission = "project:view"
	PermProjectUpdate       Permission = "project:update"
	PermProjectDelete       Permission = "project:delete"
	PermProjectMemberManage Permission = "project:member:manage"

	PermIssueView   Permission = "issue:view"
	PermIssueCreate Permission = "issue:create"
	PermIssueUpdate Permission = "issue:update"
	PermIssueDelete Permission = "issue:delete"
	PermIssueAssign Permission = "issue:assign"
)

// RolePermissions 每个角色拥有的权限集合
var RolePermissions = map[Role][]Permission{
	RoleHost: {
		"*",
	},
	RoleMember: {
		"project:view",
		"issue:*",
	},
}

// RolesFor 用户在资源上的角色
func RolesFor(r Resource, userID string) []Role {
	roles := make([]Role, 0, 2)
	if IsHost(r, userID) {
		roles = append(roles, RoleHost)
	}
	if IsMember(r, userID) {
		roles = append(roles, RoleMember)
	}
	return roles
}

// Allow 判断一组角色是否包含所需权限，支持通配符
func Allow(roles []Role, need Permission) bool {
	for _, r := range roles {
		for _, p := range RolePermissions[r] {
			if match(p, need) {
				return true
			}
		}
	}
	return false
}

// Can 用户能否在资源上执行操作
func Can(r Resource, userID string, need Permission) bool {
	return Allow(RolesFor(r, userID), need)
}

// match 按段匹配，"*" 段匹配剩余所有段
func match(have, need Permission) bool {
	if have == need || have == "*" {
		return true
	}

	haveParts := strings.Split(string(have), ":")
	needParts := strings.Split(string(need), ":")

	for i, part := range haveParts {
		if part == "*" {
			return i < len(needParts)
		}
		if i >= len(needParts) || part != needParts[i] {
			return false
		}
	}
	return len(haveParts) == len(needParts)
}
