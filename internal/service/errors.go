package service

import (
	"errors"
)

// 服务层公共错误，控制器据此映射HTTP状态码
var (
	// ErrNotFound 资源不存在
	ErrNotFound = errors.New("资源不存在")
	// ErrNoPermission 无权操作他人资源
	ErrNoPermission = errors.New("无权操作")
	// ErrInvalidParam 参数校验失败
	ErrInvalidParam = errors.New("参数校验失败")
	// ErrConflict 操作与当前状态冲突
	ErrConflict = errors.New("操作冲突")
)

// serviceError 带说明文字的服务层错误
// Error返回面向用户的说明，Unwrap保留公共错误供errors.Is判断
type serviceError struct {
	kind error
	msg  string
}

func (e *serviceError) Error() string {
	return e.msg
}

func (e *serviceError) Unwrap() error {
	return e.kind
}

// invalidParam 构造带说明的参数错误
func invalidParam(msg string) error {
	return &serviceError{kind: ErrInvalidParam, msg: msg}
}

// conflict 构造带说明的冲突错误
func conflict(msg string) error {
	return &serviceError{kind: ErrConflict, msg: msg}
}

// notFound 构造带说明的不存在错误
func notFound(msg string) error {
	return &serviceError{kind: ErrNotFound, msg: msg}
}

// noPermission 构造带说明的越权错误
func noPermission(msg string) error {
	return &serviceError{kind: ErrNoPermission, msg: msg}
}
