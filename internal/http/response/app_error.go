package response

// AppError 携带响应码的错误，把返回给客户端的提示与底层原因挂在同一条错误链上
type AppError struct {
	Code    int    // 响应 envelope 的 status_code
	Message string // 返回给客户端的提示
	Err     error  // 底层原因，可为空
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 把底层错误包装为 AppError
func WrapError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
