package models

import (
	"time"

	"gorm.io/gorm"
)

// Certificate 证书表
// IPFS CID 与链上交易哈希只作为不透明字符串存储，不做真实上链
type Certificate struct {
	ID             uint           `gorm:"primarykey" json:"id"`                              // 主键
	CertificateID  string         `gorm:"uniqueIndex;not null" json:"certificate_id"`        // 对外证书编号
	StudentName    string         `gorm:"not null" json:"student_name"`                      // 学生姓名
	StudentApparID string         `gorm:"index;not null" json:"student_appar_id"`            // 学生学历账户号
	CourseName     string         `gorm:"not null" json:"course_name"`                       // 课程名称
	Grade          string         `gorm:"default:''" json:"grade"`                           // 成绩等级
	IssuerName     string         `gorm:"not null" json:"issuer_name"`                       // 颁发机构名称
	IssueDate      string         `gorm:"not null" json:"issue_date"`                        // 颁发日期（YYYY-MM-DD）
	IpfsCid        string         `gorm:"column:ipfs_cid;default:''" json:"ipfs_cid"`        // IPFS 内容标识
	BlockchainTx   string         `gorm:"column:blockchain_tx;default:''" json:"blockchain_tx"` // 链上交易哈希
	IsValid        bool           `gorm:"default:true" json:"is_valid"`                      // 是否有效
	ImageURL       string         `gorm:"default:''" json:"image_url"`                       // 证书图片地址
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                           // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                           // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                    // 软删除时间
}

// TableName 指定表名
func (Certificate) TableName() string {
	return "certificates"
}
