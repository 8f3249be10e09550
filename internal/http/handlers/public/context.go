package public

import (
	"github.com/skillchain/skillchain-api/internal/http/response"
	"github.com/skillchain/skillchain-api/internal/logger"

	"github.com/gin-gonic/gin"
)

// respondError 输出错误响应并记录服务端错误日志
// 底层错误先包装成 AppError 再落日志，保留响应码与错误链
func respondError(c *gin.Context, code int, msg string, err error) {
	if err != nil {
		wrapped := response.WrapError(code, msg, err)
		_ = c.Error(wrapped)
		logger.Errorw("request_failed",
			"request_id", requestID(c),
			"path", c.Request.URL.Path,
			"code", code,
			"error", wrapped,
		)
	}
	response.Error(c, code, msg)
}

func requestID(c *gin.Context) string {
	value, ok := c.Get("request_id")
	if !ok {
		return ""
	}
	if id, ok := value.(string); ok {
		return id
	}
	return ""
}

// currentUserID 读取鉴权中间件写入的用户 ID
func currentUserID(c *gin.Context) uint {
	value, ok := c.Get("user_id")
	if !ok {
		return 0
	}
	if id, ok := value.(uint); ok {
		return id
	}
	return 0
}
