package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表（学生/机构/企业/管理员共用，按角色区分可选字段）
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`              // 主键
	Role         string         `gorm:"index;not null" json:"role"`        // 角色（STUDENT/INSTITUTE/COMPANY/ADMIN）
	Name         string         `gorm:"not null" json:"name"`              // 姓名或机构名称
	Email        string         `gorm:"uniqueIndex;not null" json:"email"` // 邮箱
	PasswordHash string         `gorm:"not null" json:"-"`                 // 密码哈希（不返回给前端）
	Status       string         `gorm:"default:'pending'" json:"status"`   // 账号状态（pending/active/suspended）
	Phone        *string        `json:"phone,omitempty"`                   // 联系电话
	ApparID      *string        `gorm:"uniqueIndex" json:"appar_id"`       // 学生学历账户号（仅学生有值）
	DateOfBirth  *string        `json:"date_of_birth,omitempty"`           // 出生日期（学生）
	InstituteID  *string        `json:"institute_id,omitempty"`            // 机构注册编号（机构）
	Address      *string        `json:"address,omitempty"`                 // 机构地址（机构）
	Website      *string        `json:"website,omitempty"`                 // 官网地址（企业）
	Documents    *string        `json:"documents,omitempty"`               // 认证材料地址（机构/企业）
	IsVerified   bool           `gorm:"default:false" json:"is_verified"`  // 邮箱是否已验证
	LastLoginAt  *time.Time     `json:"last_login_at"`                     // 最后登录时间
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`           // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`           // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                    // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
