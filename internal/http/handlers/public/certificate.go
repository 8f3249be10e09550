package public

import (
	"errors"
	"strconv"

	"github.com/skillchain/skillchain-api/internal/http/response"
	"github.com/skillchain/skillchain-api/internal/repository"
	"github.com/skillchain/skillchain-api/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateCertificateRequest 发证请求
type CreateCertificateRequest struct {
	CertificateID  string `json:"certificateId"`
	StudentName    string `json:"studentName" binding:"required"`
	StudentApparID string `json:"studentApparId" binding:"required"`
	CourseName     string `json:"courseName" binding:"required"`
	Grade          string `json:"grade"`
	IssuerName     string `json:"issuerName" binding:"required"`
	IssueDate      string `json:"issueDate" binding:"required"`
	IpfsCid        string `json:"ipfsCid"`
	BlockchainTx   string `json:"blockchainTx"`
	ImageURL       string `json:"imageUrl"`
}

// CreateCertificate 颁发证书
func (h *Handler) CreateCertificate(c *gin.Context) {
	var req CreateCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	certificate, err := h.CertificateService.IssueCertificate(service.IssueCertificateInput{
		CertificateID:  req.CertificateID,
		StudentName:    req.StudentName,
		StudentApparID: req.StudentApparID,
		CourseName:     req.CourseName,
		Grade:          req.Grade,
		IssuerName:     req.IssuerName,
		IssueDate:      req.IssueDate,
		IpfsCid:        req.IpfsCid,
		BlockchainTx:   req.BlockchainTx,
		ImageURL:       req.ImageURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCertificateInvalid):
			respondError(c, response.CodeBadRequest, "Certificate fields missing", nil)
		case errors.Is(err, service.ErrCertificateExists):
			respondError(c, response.CodeConflict, "Certificate ID already exists", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to issue certificate", err)
		}
		return
	}

	response.Created(c, "Certificate issued successfully.", certificate)
}

// ListCertificates 证书列表
// 支持按学生学历账户号、颁发机构与关键字过滤
func (h *Handler) ListCertificates(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize > 100 {
		pageSize = 100
	}

	filter := repository.CertificateListFilter{
		Keyword:        c.Query("keyword"),
		StudentApparID: c.Query("apparId"),
		IssuerName:     c.Query("issuerName"),
		Page:           page,
		PageSize:       pageSize,
	}

	certificates, total, err := h.CertificateService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to list certificates", err)
		return
	}

	totalPage := int64(0)
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	response.SuccessWithPage(c, certificates, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// ListStudentCertificates 按学生学历账户号查询名下证书
func (h *Handler) ListStudentCertificates(c *gin.Context) {
	certificates, err := h.CertificateService.ListByStudent(c.Param("apparId"))
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to list certificates", err)
		return
	}
	response.Success(c, certificates)
}

// GetCertificate 按证书编号查询（用于扫码验真）
func (h *Handler) GetCertificate(c *gin.Context) {
	certificate, err := h.CertificateService.GetByCertificateID(c.Param("certificateId"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "Certificate not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "Failed to load certificate", err)
		return
	}
	response.Success(c, certificate)
}

// UpdateCertificateRequest 证书更新请求
type UpdateCertificateRequest struct {
	IssuerName string `json:"issuerName" binding:"required"`
}

// UpdateCertificate 更新证书颁发机构名称
func (h *Handler) UpdateCertificate(c *gin.Context) {
	var req UpdateCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	certificate, err := h.CertificateService.UpdateIssuerName(c.Param("certificateId"), req.IssuerName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCertificateInvalid):
			respondError(c, response.CodeBadRequest, "Issuer name is required", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "Certificate not found", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to update certificate", err)
		}
		return
	}
	response.SuccessWithMsg(c, "Certificate updated successfully.", certificate)
}
