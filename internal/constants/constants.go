package constants

// 账号角色常量
const (
	RoleStudent   = "STUDENT"
	RoleInstitute = "INSTITUTE"
	RoleCompany   = "COMPANY"
	RoleAdmin     = "ADMIN"
)

// SupportedRoles 支持的注册角色顺序
var SupportedRoles = []string{RoleStudent, RoleInstitute, RoleCompany, RoleAdmin}

// 账号状态常量
const (
	UserStatusPending   = "pending"
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

// 验证码用途常量
const (
	OtpPurposeRegister = "register"
	OtpPurposeReset    = "reset"
)

// 队列常量
const (
	QueueDefault = "default"
	TaskOtpEmail = "otp:email"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "sk"
)
