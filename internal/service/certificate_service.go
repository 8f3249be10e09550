package service

import (
	"strings"

	"github.com/skillchain/skillchain-api/internal/models"
	"github.com/skillchain/skillchain-api/internal/repository"

	"github.com/google/uuid"
)

// CertificateService 证书服务
type CertificateService struct {
	certificateRepo repository.CertificateRepository
}

// NewCertificateService 创建证书服务
func NewCertificateService(certificateRepo repository.CertificateRepository) *CertificateService {
	return &CertificateService{
		certificateRepo: certificateRepo,
	}
}

// IssueCertificateInput 发证请求输入
type IssueCertificateInput struct {
	CertificateID  string // 为空时自动生成
	StudentName    string
	StudentApparID string
	CourseName     string
	Grade          string
	IssuerName     string
	IssueDate      string
	IpfsCid        string
	BlockchainTx   string
	ImageURL       string
}

// IssueCertificate 颁发证书
func (s *CertificateService) IssueCertificate(input IssueCertificateInput) (*models.Certificate, error) {
	studentName := strings.TrimSpace(input.StudentName)
	studentApparID := strings.TrimSpace(input.StudentApparID)
	courseName := strings.TrimSpace(input.CourseName)
	issuerName := strings.TrimSpace(input.IssuerName)
	issueDate := strings.TrimSpace(input.IssueDate)
	if studentName == "" || studentApparID == "" || courseName == "" || issuerName == "" || issueDate == "" {
		return nil, ErrCertificateInvalid
	}

	certificateID := strings.TrimSpace(input.CertificateID)
	if certificateID == "" {
		certificateID = "crt-" + uuid.New().String()
	} else {
		exist, err := s.certificateRepo.GetByCertificateID(certificateID)
		if err != nil {
			return nil, err
		}
		if exist != nil {
			return nil, ErrCertificateExists
		}
	}

	certificate := &models.Certificate{
		CertificateID:  certificateID,
		StudentName:    studentName,
		StudentApparID: studentApparID,
		CourseName:     courseName,
		Grade:          strings.TrimSpace(input.Grade),
		IssuerName:     issuerName,
		IssueDate:      issueDate,
		IpfsCid:        strings.TrimSpace(input.IpfsCid),
		BlockchainTx:   strings.TrimSpace(input.BlockchainTx),
		IsValid:        true,
		ImageURL:       strings.TrimSpace(input.ImageURL),
	}
	if err := s.certificateRepo.Create(certificate); err != nil {
		return nil, err
	}
	return certificate, nil
}

// GetByCertificateID 按证书编号查询
func (s *CertificateService) GetByCertificateID(certificateID string) (*models.Certificate, error) {
	certificate, err := s.certificateRepo.GetByCertificateID(strings.TrimSpace(certificateID))
	if err != nil {
		return nil, err
	}
	if certificate == nil {
		return nil, ErrNotFound
	}
	return certificate, nil
}

// List 证书列表
func (s *CertificateService) List(filter repository.CertificateListFilter) ([]models.Certificate, int64, error) {
	return s.certificateRepo.List(filter)
}

// ListByStudent 按学生学历账户号查询证书
func (s *CertificateService) ListByStudent(apparID string) ([]models.Certificate, error) {
	certificates, _, err := s.certificateRepo.List(repository.CertificateListFilter{
		StudentApparID: strings.TrimSpace(apparID),
	})
	return certificates, err
}

// UpdateIssuerName 更新证书颁发机构名称
func (s *CertificateService) UpdateIssuerName(certificateID, issuerName string) (*models.Certificate, error) {
	trimmedID := strings.TrimSpace(certificateID)
	trimmedName := strings.TrimSpace(issuerName)
	if trimmedName == "" {
		return nil, ErrCertificateInvalid
	}
	rows, err := s.certificateRepo.UpdateIssuerName(trimmedID, trimmedName)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotFound
	}
	return s.certificateRepo.GetByCertificateID(trimmedID)
}
