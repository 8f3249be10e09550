package repository

import (
	"errors"

	"github.com/skillchain/skillchain-api/internal/models"

	"gorm.io/gorm"
)

// OtpRepository 邮箱验证码数据访问接口
type OtpRepository interface {
	Create(code *models.OtpCode) error
	GetLatest(userID uint) (*models.OtpCode, error)
	IncrementAttempt(id uint) error
	DeleteByUser(db *gorm.DB, userID uint) error
}

// GormOtpRepository GORM 实现
type GormOtpRepository struct {
	db *gorm.DB
}

// NewOtpRepository 创建邮箱验证码仓库
func NewOtpRepository(db *gorm.DB) *GormOtpRepository {
	return &GormOtpRepository{db: db}
}

// Create 创建验证码记录
func (r *GormOtpRepository) Create(code *models.OtpCode) error {
	return r.db.Create(code).Error
}

// GetLatest 获取用户最新一条验证码记录
// 只认最新一条，purpose 仅作标记不参与检索
func (r *GormOtpRepository) GetLatest(userID uint) (*models.OtpCode, error) {
	var record models.OtpCode
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// IncrementAttempt 增加验证次数
func (r *GormOtpRepository) IncrementAttempt(id uint) error {
	return r.db.Model(&models.OtpCode{}).
		Where("id = ?", id).
		UpdateColumn("attempt_count", gorm.Expr("attempt_count + 1")).Error
}

// DeleteByUser 删除用户全部验证码记录（验证成功后整体消费）
// db 为 nil 时使用默认连接，事务内传入事务句柄
func (r *GormOtpRepository) DeleteByUser(db *gorm.DB, userID uint) error {
	if db == nil {
		db = r.db
	}
	return db.Unscoped().
		Where("user_id = ?", userID).
		Delete(&models.OtpCode{}).Error
}
