package service

import (
	"errors"
	"fmt"
)

// 业务错误，handler层据此映射HTTP状态码
var (
	ErrDuplicateName      = errors.New("duplicate name")
	ErrHasDependents      = errors.New("has dependent records")
	ErrNotOwner           = errors.New("not the owner")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user is deactivated")
	ErrWeekTaken          = errors.New("weekly menu already exists for this week")
)

// RequiredFieldError 必填字段缺失
type RequiredFieldError struct {
	Field string
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("%s field is required", e.Field)
}

// IsRequiredField 判断是否为必填字段错误
func IsRequiredField(err error) bool {
	var rf *RequiredFieldError
	return errors.As(err, &rf)
}

// DependencyError 删除守卫错误，携带面向用户的提示
type DependencyError struct {
	Message string
}

func (e *DependencyError) Error() string {
	return e.Message
}

func (e *DependencyError) Is(target error) bool {
	return target == ErrHasDependents
}

// DuplicateError 重名错误，携带面向用户的提示
type DuplicateError struct {
	Message string
}

func (e *DuplicateError) Error() string {
	return e.Message
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicateName
}
