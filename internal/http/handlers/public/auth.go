package public

import (
	"errors"

	"github.com/skillchain/skillchain-api/internal/http/response"
	"github.com/skillchain/skillchain-api/internal/models"
	"github.com/skillchain/skillchain-api/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Role        string `json:"role" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Phone       string `json:"phone"`
	ApparID     string `json:"apparId"`
	DateOfBirth string `json:"dateOfBirth"`
	InstituteID string `json:"instituteId"`
	Address     string `json:"address"`
	Website     string `json:"website"`
	Documents   string `json:"documents"`
}

// Register 注册账号
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.AuthService.Register(service.RegisterInput{
		Role:        req.Role,
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Phone:       req.Phone,
		ApparID:     req.ApparID,
		DateOfBirth: req.DateOfBirth,
		InstituteID: req.InstituteID,
		Address:     req.Address,
		Website:     req.Website,
		Documents:   req.Documents,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			respondError(c, response.CodeBadRequest, "Unsupported role", nil)
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "Invalid email address", nil)
		case errors.Is(err, service.ErrPasswordTooShort),
			errors.Is(err, service.ErrPasswordNeedUpper),
			errors.Is(err, service.ErrPasswordNeedLower),
			errors.Is(err, service.ErrPasswordNeedNumber),
			errors.Is(err, service.ErrPasswordNeedSpecial):
			respondError(c, response.CodeBadRequest, "Password does not meet the policy", nil)
		case errors.Is(err, service.ErrEmailExists):
			respondError(c, response.CodeConflict, "Email already registered", nil)
		case errors.Is(err, service.ErrApparIDExists):
			respondError(c, response.CodeConflict, "APPAR ID already registered", nil)
		case errors.Is(err, service.ErrOtpTooFrequent):
			respondError(c, response.CodeTooManyRequests, "OTP requested too frequently", nil)
		default:
			respondError(c, response.CodeInternal, "Registration failed", err)
		}
		return
	}

	response.Created(c, "Registration successful. Please check your email for the OTP.", gin.H{
		"userId": user.ID,
		"email":  user.Email,
		"status": user.Status,
	})
}

// VerifyOtpRequest 验证码校验请求
type VerifyOtpRequest struct {
	UserID uint   `json:"userId" binding:"required"`
	Otp    string `json:"otp" binding:"required"`
}

// VerifyOtp 校验验证码并激活账号
func (h *Handler) VerifyOtp(c *gin.Context) {
	var req VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.AuthService.VerifyOtp(req.UserID, req.Otp)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "User not found", nil)
		case errors.Is(err, service.ErrAccountAlreadyVerified):
			respondError(c, response.CodeBadRequest, "Account already verified", nil)
		case errors.Is(err, service.ErrOtpInvalid):
			respondError(c, response.CodeBadRequest, "Invalid OTP", nil)
		case errors.Is(err, service.ErrOtpExpired):
			respondError(c, response.CodeBadRequest, "OTP expired", nil)
		case errors.Is(err, service.ErrOtpAttemptsExceeded):
			respondError(c, response.CodeTooManyRequests, "Too many OTP attempts, request a new code", nil)
		default:
			respondError(c, response.CodeInternal, "OTP verification failed", err)
		}
		return
	}

	// 激活后直接下发 Token，前端无需再跳转登录
	token, expiresAt, err := h.AuthService.GenerateJWT(user)
	if err != nil {
		respondError(c, response.CodeInternal, "OTP verification failed", err)
		return
	}
	response.SuccessWithMsg(c, "Account verified successfully. You can now login.", gin.H{
		"token":      token,
		"expires_at": expiresAt.Format("2006-01-02T15:04:05Z07:00"),
		"user":       buildUserPayload(user),
	})
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 账号登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	user, token, expiresAt, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "Invalid email address", nil)
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "Invalid email or password", nil)
		case errors.Is(err, service.ErrAccountNotVerified):
			// 未激活账号返回用户 ID，便于前端跳转验证页
			data := gin.H{"status": "pending"}
			if user != nil {
				data["userId"] = user.ID
			}
			response.ErrorWithData(c, response.CodeForbidden, "Account not verified. Please verify your email.", data)
		case errors.Is(err, service.ErrAccountSuspended):
			data := gin.H{"status": "suspended"}
			if user != nil {
				data["userId"] = user.ID
			}
			response.ErrorWithData(c, response.CodeForbidden, "Account suspended", data)
		default:
			respondError(c, response.CodeInternal, "Login failed", err)
		}
		return
	}

	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt.Format("2006-01-02T15:04:05Z07:00"),
		"user":       buildUserPayload(user),
	})
}

// ResendOtpRequest 重发验证码请求
type ResendOtpRequest struct {
	UserID uint `json:"userId" binding:"required"`
}

// ResendOtp 重发注册验证码
func (h *Handler) ResendOtp(c *gin.Context) {
	var req ResendOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	if err := h.AuthService.ResendOtp(req.UserID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "User not found", nil)
		case errors.Is(err, service.ErrAccountAlreadyVerified):
			respondError(c, response.CodeBadRequest, "Account already verified", nil)
		case errors.Is(err, service.ErrOtpTooFrequent):
			respondError(c, response.CodeTooManyRequests, "OTP requested too frequently, try again later", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to send OTP", err)
		}
		return
	}

	response.SuccessWithMsg(c, "A new OTP has been sent to your email.", nil)
}

// ForgotPasswordRequest 忘记密码请求
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ForgotPassword 发起密码重置
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	if err := h.AuthService.ForgotPassword(req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "Invalid email address", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to process request", err)
		}
		return
	}

	// 无论邮箱是否注册都返回相同提示
	response.SuccessWithMsg(c, "If an account exists with this email, a reset code has been sent.", nil)
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	Otp         string `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// ResetPassword 校验验证码并重置密码
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	if err := h.AuthService.ResetPassword(req.Email, req.Otp, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "Invalid email address", nil)
		case errors.Is(err, service.ErrPasswordTooShort),
			errors.Is(err, service.ErrPasswordNeedUpper),
			errors.Is(err, service.ErrPasswordNeedLower),
			errors.Is(err, service.ErrPasswordNeedNumber),
			errors.Is(err, service.ErrPasswordNeedSpecial):
			respondError(c, response.CodeBadRequest, "Password does not meet the policy", nil)
		case errors.Is(err, service.ErrOtpInvalid):
			respondError(c, response.CodeBadRequest, "Invalid OTP", nil)
		case errors.Is(err, service.ErrOtpExpired):
			respondError(c, response.CodeBadRequest, "OTP expired", nil)
		case errors.Is(err, service.ErrOtpAttemptsExceeded):
			respondError(c, response.CodeTooManyRequests, "Too many OTP attempts, request a new code", nil)
		default:
			respondError(c, response.CodeInternal, "Password reset failed", err)
		}
		return
	}

	response.SuccessWithMsg(c, "Password reset successfully.", nil)
}

// GetCurrentUser 获取当前登录用户
func (h *Handler) GetCurrentUser(c *gin.Context) {
	userID := currentUserID(c)
	user, err := h.AuthService.GetUserByID(userID)
	if err != nil || user == nil {
		respondError(c, response.CodeUnauthorized, "Invalid token", err)
		return
	}
	response.Success(c, buildUserPayload(user))
}

func buildUserPayload(user *models.User) gin.H {
	if user == nil {
		return gin.H{}
	}
	payload := gin.H{
		"id":         user.ID,
		"role":       user.Role,
		"name":       user.Name,
		"email":      user.Email,
		"status":     user.Status,
		"isVerified": user.IsVerified,
	}
	if user.ApparID != nil {
		payload["apparId"] = *user.ApparID
	}
	if user.InstituteID != nil {
		payload["instituteId"] = *user.InstituteID
	}
	return payload
}
