package errors

import "fmt"

// 错误码
const (
	CodeSuccess         = 200
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeForbidden       = 403
	CodeNotFound        = 404
	CodeConflict        = 409
	CodeInvalidID       = 4001 // 资源ID格式错误
	CodeInternalError   = 500
	CodeDatabaseError   = 501
	CodeAuthError       = 502
	CodeValidationError = 503
)

// AppError 应用错误
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码匹配，errors.Is(err, ErrForbidden) 对任意 403 错误成立
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Public 是否可以原样返回给调用方，数据库错误与内部错误需要改写
func (e *AppError) Public() bool {
	switch e.Code {
	case CodeInternalError, CodeDatabaseError:
		return false
	}
	return true
}

// New 创建新错误
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装错误
func Wrap(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// 预定义错误
var (
	ErrBadRequest      = New(CodeBadRequest, "Invalid request parameters")
	ErrUnauthorized    = New(CodeUnauthorized, "Not authenticated")
	ErrForbidden       = New(CodeForbidden, "Forbidden")
	ErrNotFound        = New(CodeNotFound, "Resource not found")
	ErrConflict        = New(CodeConflict, "Resource conflict")
	ErrInternalError   = New(CodeInternalError, "Something went wrong")
	ErrDatabaseError   = New(CodeDatabaseError, "Database error")
	ErrAuthError       = New(CodeAuthError, "Authentication failed")
	ErrValidationError = New(CodeValidationError, "Validation failed")

	// 具体业务错误
	ErrInvalidID          = New(CodeInvalidID, "Invalid ID submitted")
	ErrInvalidUserID      = New(CodeInvalidID, "Invalid UserID submitted")
	ErrInvalidCredentials = New(CodeAuthError, "Invalid email or password")
	ErrUserNotFound       = New(CodeNotFound, "User not found")
	ErrProjectNotFound    = New(CodeNotFound, "Project not found")
	ErrIssueNotFound      = New(CodeNotFound, "Issue not found")
	ErrNotAssignee        = New(CodeNotFound, "User not found in assignees")
	ErrEmailTaken         = New(CodeConflict, "This email is being used on an existing account")
	ErrInvalidToken       = New(CodeUnauthorized, "Invalid token")
	ErrTokenExpired       = New(CodeUnauthorized, "Token expired")
	ErrRecordNotFound     = New(CodeNotFound, "Record not found")
	ErrRecordExists       = New(CodeConflict, "Record already exists")
)
