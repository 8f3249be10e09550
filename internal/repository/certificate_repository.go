package repository

import (
	"errors"

	"github.com/skillchain/skillchain-api/internal/models"

	"gorm.io/gorm"
)

// CertificateListFilter 证书列表筛选条件
type CertificateListFilter struct {
	Keyword        string
	StudentApparID string
	IssuerName     string
	Page           int
	PageSize       int
}

// CertificateRepository 证书数据访问接口
type CertificateRepository interface {
	Create(certificate *models.Certificate) error
	GetByCertificateID(certificateID string) (*models.Certificate, error)
	List(filter CertificateListFilter) ([]models.Certificate, int64, error)
	UpdateIssuerName(certificateID, issuerName string) (int64, error)
	Count() (int64, error)
}

// GormCertificateRepository GORM 实现
type GormCertificateRepository struct {
	db *gorm.DB
}

// NewCertificateRepository 创建证书仓库
func NewCertificateRepository(db *gorm.DB) *GormCertificateRepository {
	return &GormCertificateRepository{db: db}
}

// Create 创建证书
func (r *GormCertificateRepository) Create(certificate *models.Certificate) error {
	return r.db.Create(certificate).Error
}

// GetByCertificateID 根据证书编号获取证书
func (r *GormCertificateRepository) GetByCertificateID(certificateID string) (*models.Certificate, error) {
	var certificate models.Certificate
	if err := r.db.Where("certificate_id = ?", certificateID).First(&certificate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &certificate, nil
}

// List 证书列表
func (r *GormCertificateRepository) List(filter CertificateListFilter) ([]models.Certificate, int64, error) {
	query := r.db.Model(&models.Certificate{})

	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where("student_name LIKE ? OR course_name LIKE ? OR issuer_name LIKE ?", like, like, like)
	}
	if filter.StudentApparID != "" {
		query = query.Where("student_appar_id = ?", filter.StudentApparID)
	}
	if filter.IssuerName != "" {
		query = query.Where("issuer_name = ?", filter.IssuerName)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var certificates []models.Certificate
	if err := query.Order("created_at desc, id desc").Find(&certificates).Error; err != nil {
		return nil, 0, err
	}
	return certificates, total, nil
}

// UpdateIssuerName 更新证书颁发机构名称，返回受影响行数
func (r *GormCertificateRepository) UpdateIssuerName(certificateID, issuerName string) (int64, error) {
	result := r.db.Model(&models.Certificate{}).
		Where("certificate_id = ?", certificateID).
		Update("issuer_name", issuerName)
	return result.RowsAffected, result.Error
}

// Count 统计证书总数
func (r *GormCertificateRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Certificate{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
