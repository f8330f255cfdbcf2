package service

import "errors"

// Kind 对业务错误分类，HTTP 层据此决定状态码。
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindUnauthorized
	KindValidation
)

// Error 是带分类的业务错误。下面的哨兵错误都是 *Error，可用 errors.Is 比较。
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

var (
	ErrUserNotFound           = newError(KindNotFound, "User not found")
	ErrKnowledgePointNotFound = newError(KindNotFound, "Knowledge point not found")

	ErrUsernameTaken        = newError(KindConflict, "Username already registered")
	ErrKnowledgePointExists = newError(KindConflict, "Knowledge point already exists")

	ErrUsernameNotFound  = newError(KindUnauthorized, "用户名不存在")
	ErrIncorrectPassword = newError(KindUnauthorized, "密码错误")

	ErrUsernameRequired  = newError(KindValidation, "Username is required")
	ErrInvalidGrade      = newError(KindValidation, "Invalid grade value")
	ErrInvalidImportance = newError(KindValidation, "Invalid importance value")
	ErrInvalidDifficulty = newError(KindValidation, "Invalid difficulty value")

	ErrInternalServer = newError(KindInternal, "internal server error")
)

// KindOf 返回错误的分类，未分类的错误一律视为内部错误。
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
