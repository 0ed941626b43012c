package errors

import (
	"errors"
	"fmt"
)

// AppError 携带业务错误码的错误，由 response.HandleError 转换为统一响应
type AppError struct {
	Code    int
	Message string
	Err     error
	Details string
}

func (e *AppError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	case e.Details != "":
		return fmt.Sprintf("[%d] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap 为 err 附加错误码；err 链上已有 AppError 时保留原错误码
func Wrap(err error, code int, details ...string) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := asAppError(err); ok {
		return appErr
	}

	appErr := &AppError{Code: code, Message: GetMessage(code), Err: err}
	if len(details) > 0 {
		appErr.Details = details[0]
	}
	return appErr
}

// ExtractCode 返回 err 的业务错误码，非 AppError 视为内部错误
func ExtractCode(err error) int {
	if appErr, ok := asAppError(err); ok {
		return appErr.Code
	}
	return ErrInternalServer
}

// GetDetails 返回错误详情，优先使用 Details，其次是底层错误信息
func GetDetails(err error) string {
	if err == nil {
		return ""
	}
	appErr, ok := asAppError(err)
	switch {
	case !ok:
		return err.Error()
	case appErr.Details != "":
		return appErr.Details
	case appErr.Err != nil:
		return appErr.Err.Error()
	}
	return ""
}

func asAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}
