package service

import (
	"errors"

	"go.uber.org/zap"

	pkgErrors "issue-hub/pkg/errors"
)

// 业务错误，消息直接返回给调用方
var (
	errNoFieldsToUpdate    = pkgErrors.New(pkgErrors.CodeBadRequest, "No fields to update")
	errProjectTitleEmpty   = pkgErrors.New(pkgErrors.CodeBadRequest, "Project title cannot be empty")
	errIssueTitleEmpty     = pkgErrors.New(pkgErrors.CodeBadRequest, "Issue title cannot be empty")
	errInvalidStatus       = pkgErrors.New(pkgErrors.CodeBadRequest, "Invalid issue status")
	errInvalidPriority     = pkgErrors.New(pkgErrors.CodeBadRequest, "Invalid issue priority")
	errInvalidEmail        = pkgErrors.New(pkgErrors.CodeBadRequest, "Invalid email format")
	errAlreadyMember       = pkgErrors.New(pkgErrors.CodeConflict, "User is already a member of this project")
	errNotMember           = pkgErrors.New(pkgErrors.CodeConflict, "User is not a member of this project")
	errProjectForbidden    = pkgErrors.New(pkgErrors.CodeForbidden, "Not authorized to access this project")
	errIssuesForbidden     = pkgErrors.New(pkgErrors.CodeForbidden, "Not authorized to access these issues")
	errIssueForbidden      = pkgErrors.New(pkgErrors.CodeForbidden, "Not authorized to access this issue")
	errCreateIssueDenied   = pkgErrors.New(pkgErrors.CodeForbidden, "Not authorized to create an issue for this project")
	errUpdateIssueDenied   = pkgErrors.New(pkgErrors.CodeForbidden, "Not authorized to update this issue")
	errDeleteIssueDenied   = pkgErrors.New(pkgErrors.CodeForbidden, "Not authorized to delete this issue")
	errAssignIssueDenied   = pkgErrors.New(pkgErrors.CodeForbidden, "Not authorized to assign users to this issue")
	errLocalAuthDisabled   = pkgErrors.New(pkgErrors.CodeAuthError, "Local authentication is disabled")
	errLDAPAuthDisabled    = pkgErrors.New(pkgErrors.CodeAuthError, "LDAP authentication is disabled")
	errUnsupportedAuthType = pkgErrors.New(pkgErrors.CodeBadRequest, "Unsupported auth type")
)

// storeErr 改写仓储错误：记录不存在映射为 notFound，其余按 internalErr 处理
func storeErr(log *zap.Logger, err error, notFound *pkgErrors.AppError) error {
	if errors.Is(err, pkgErrors.ErrRecordNotFound) {
		return notFound
	}
	return internalErr(log, err)
}

// internalErr 业务错误原样返回；数据库或未知错误记录日志后改写为通用错误
func internalErr(log *zap.Logger, err error) error {
	var appErr *pkgErrors.AppError
	if errors.As(err, &appErr) && appErr.Public() {
		return appErr
	}
	log.Error("unexpected error", zap.Error(err))
	return pkgErrors.ErrInternalError
}
