package models

import (
	"time"

	"gorm.io/gorm"
)

// OtpCode 邮箱验证码记录
// 同一用户可能存在多条记录，校验时只认按创建时间最新的一条
type OtpCode struct {
	ID           uint           `gorm:"primarykey" json:"id"`           // 主键
	UserID       uint           `gorm:"index;not null" json:"user_id"`  // 关联用户ID
	Purpose      string         `gorm:"index;not null" json:"purpose"`  // 用途（register/reset）
	CodeHash     string         `gorm:"not null" json:"-"`              // 验证码哈希（不存明文）
	ExpiresAt    time.Time      `gorm:"index" json:"expires_at"`        // 过期时间
	AttemptCount int            `gorm:"default:0" json:"attempt_count"` // 尝试次数
	SentAt       time.Time      `gorm:"index" json:"sent_at"`           // 发送时间
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`        // 创建时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                 // 软删除时间
}

// TableName 指定表名
func (OtpCode) TableName() string {
	return "otp_codes"
}
