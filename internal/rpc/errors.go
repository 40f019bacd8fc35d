package rpc

import (
	"errors"
	"net/http"

	domainErrors "fullstack-go-server/domain/errors"
)

// Code 过程调用错误码
type Code string

const (
	// CodeBadInput 输入校验失败（附逐字段错误信息）
	CodeBadInput Code = "BAD_INPUT"
	// CodeUnauthorized 受保护过程 + 匿名调用者
	CodeUnauthorized Code = "UNAUTHORIZED"
	// CodeNotFound 过程名不存在
	CodeNotFound Code = "NOT_FOUND"
	// CodeStorageUnavailable 存储瞬态故障，可安全重试
	CodeStorageUnavailable Code = "STORAGE_UNAVAILABLE"
	// CodeIntegrityViolation 引用完整性意外被破坏
	CodeIntegrityViolation Code = "INTEGRITY_VIOLATION"
	// CodeInternal 其他未归类失败
	CodeInternal Code = "INTERNAL_ERROR"
)

// Error 过程调用边界的结构化错误
// Fields 只在 BadInput 时存在：字段名 → 人类可读的失败原因
type Error struct {
	Code    Code              `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// NewError 构造指定错误码的错误
func NewError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// BadInput 构造校验失败错误（逐字段信息）
func BadInput(fields map[string]string) *Error {
	return &Error{
		Code:    CodeBadInput,
		Message: "input validation failed",
		Fields:  fields,
	}
}

// FromError 把任意错误归一化为 *Error
// 领域哨兵错误映射到对应错误码，未知错误归为 INTERNAL_ERROR
func FromError(err error) *Error {
	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	switch {
	case errors.Is(err, domainErrors.ErrUnauthorized):
		return NewError(CodeUnauthorized, err.Error())
	case errors.Is(err, domainErrors.ErrProcedureNotFound):
		return NewError(CodeNotFound, err.Error())
	case errors.Is(err, domainErrors.ErrStorageUnavailable):
		return NewError(CodeStorageUnavailable, err.Error())
	case errors.Is(err, domainErrors.ErrIntegrityViolation):
		return NewError(CodeIntegrityViolation, err.Error())
	}
	return NewError(CodeInternal, err.Error())
}

// HTTPStatus 错误码到 HTTP 状态码的映射
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeBadInput:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
