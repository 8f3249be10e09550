package queue

import (
	"encoding/json"

	"github.com/skillchain/skillchain-api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOtpEmail 邮箱验证码发送任务
	TaskOtpEmail = constants.TaskOtpEmail
)

// OtpEmailPayload 验证码邮件任务载荷
// 验证码明文只在任务载荷中短暂存在，数据库仅存哈希
type OtpEmailPayload struct {
	Email   string `json:"email"`
	Code    string `json:"code"`
	Purpose string `json:"purpose"`
}

// NewOtpEmailTask 创建验证码邮件任务
func NewOtpEmailTask(payload OtpEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOtpEmail, body), nil
}
