package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidEnum 是所有枚举解析失败的公共错误，可用 errors.Is 判断。
var ErrInvalidEnum = errors.New("invalid enum value")

// EnumError 记录是哪个字段的哪个取值无法解析。
type EnumError struct {
	Field string
	Value string
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("invalid %s value %q", e.Field, e.Value)
}

func (e *EnumError) Is(target error) bool {
	return target == ErrInvalidEnum
}
