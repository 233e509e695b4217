package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound 链接不存在，或不属于当前用户
	// 两种情况对外不做区分，避免向其他用户泄露链接是否存在
	ErrNotFound = errors.New("链接不存在")

	// ErrDuplicateShortID 短 ID 与已有记录冲突，由存储层唯一索引触发
	ErrDuplicateShortID = errors.New("短 ID 冲突")
)

// ValidationError 输入校验失败，指明出错的字段
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("字段 %s 无效: %s", e.Field, e.Reason)
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
