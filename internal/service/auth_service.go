package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/skillchain/skillchain-api/internal/cache"
	"github.com/skillchain/skillchain-api/internal/config"
	"github.com/skillchain/skillchain-api/internal/constants"
	"github.com/skillchain/skillchain-api/internal/models"
	"github.com/skillchain/skillchain-api/internal/queue"
	"github.com/skillchain/skillchain-api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService 账号认证服务
type AuthService struct {
	cfg          *config.Config
	db           *gorm.DB
	userRepo     repository.UserRepository
	otpRepo      repository.OtpRepository
	emailService *EmailService
	queueClient  *queue.Client
}

// NewAuthService 创建认证服务
func NewAuthService(cfg *config.Config, db *gorm.DB, userRepo repository.UserRepository, otpRepo repository.OtpRepository, emailService *EmailService, queueClient *queue.Client) *AuthService {
	return &AuthService{
		cfg:          cfg,
		db:           db,
		userRepo:     userRepo,
		otpRepo:      otpRepo,
		emailService: emailService,
		queueClient:  queueClient,
	}
}

// UserJWTClaims 用户 JWT 声明
type UserJWTClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// RegisterInput 注册请求输入
type RegisterInput struct {
	Role        string
	Name        string
	Email       string
	Password    string
	Phone       string
	ApparID     string // 学生学历账户号
	DateOfBirth string // 学生出生日期
	InstituteID string // 机构注册编号
	Address     string // 机构地址
	Website     string // 企业官网
	Documents   string // 机构/企业认证材料地址
}

// GenerateJWT 生成用户 JWT Token
func (s *AuthService) GenerateJWT(user *models.User) (string, time.Time, error) {
	expireHours := s.cfg.JWT.ExpireHours
	if expireHours <= 0 {
		expireHours = 168
	}
	expiresAt := time.Now().Add(time.Duration(expireHours) * time.Hour)
	claims := UserJWTClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT 解析用户 JWT Token
func (s *AuthService) ParseJWT(tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*UserJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// Register 注册账号并发送激活验证码
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	role := strings.ToUpper(strings.TrimSpace(input.Role))
	if !isRegisterRoleSupported(role) {
		return nil, ErrInvalidRole
	}
	normalized, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}

	exist, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrEmailExists
	}

	apparID := strings.TrimSpace(input.ApparID)
	if role == constants.RoleStudent && apparID != "" {
		existAppar, err := s.userRepo.GetByApparID(apparID)
		if err != nil {
			return nil, err
		}
		if existAppar != nil {
			return nil, ErrApparIDExists
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		Role:         role,
		Name:         strings.TrimSpace(input.Name),
		Email:        normalized,
		PasswordHash: string(hashedPassword),
		Status:       constants.UserStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		user.Phone = &phone
	}
	if role == constants.RoleStudent {
		if apparID != "" {
			user.ApparID = &apparID
		}
		if dob := strings.TrimSpace(input.DateOfBirth); dob != "" {
			user.DateOfBirth = &dob
		}
	}
	if role == constants.RoleInstitute {
		if instituteID := strings.TrimSpace(input.InstituteID); instituteID != "" {
			user.InstituteID = &instituteID
		}
		if address := strings.TrimSpace(input.Address); address != "" {
			user.Address = &address
		}
	}
	if role == constants.RoleCompany {
		if website := strings.TrimSpace(input.Website); website != "" {
			user.Website = &website
		}
	}
	if role == constants.RoleInstitute || role == constants.RoleCompany {
		if documents := strings.TrimSpace(input.Documents); documents != "" {
			user.Documents = &documents
		}
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	if err := s.issueOtp(user, constants.OtpPurposeRegister); err != nil {
		return nil, err
	}
	return user, nil
}

// VerifyOtp 校验注册验证码并激活账号
func (s *AuthService) VerifyOtp(userID uint, code string) (*models.User, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if strings.ToLower(user.Status) == constants.UserStatusActive {
		return nil, ErrAccountAlreadyVerified
	}

	if err := s.verifyCode(user.ID, code); err != nil {
		return nil, err
	}

	// 激活与验证码清理放在同一事务，避免半激活状态
	now := time.Now()
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("id = ?", user.ID).
			Updates(map[string]interface{}{
				"status":      constants.UserStatusActive,
				"is_verified": true,
				"updated_at":  now,
			}).Error; err != nil {
			return err
		}
		return s.otpRepo.DeleteByUser(tx, user.ID)
	}); err != nil {
		return nil, err
	}

	user.Status = constants.UserStatusActive
	user.IsVerified = true
	user.UpdatedAt = now
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return user, nil
}

// Login 账号登录
// 账号非 active 时同时返回用户与对应错误，便于前端按状态提示
func (s *AuthService) Login(email, password string) (*models.User, string, time.Time, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	switch strings.ToLower(user.Status) {
	case constants.UserStatusActive:
	case constants.UserStatusPending:
		return user, "", time.Time{}, ErrAccountNotVerified
	default:
		return user, "", time.Time{}, ErrAccountSuspended
	}

	token, expiresAt, err := s.GenerateJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))

	return user, token, expiresAt, nil
}

// ResendOtp 重发注册验证码
func (s *AuthService) ResendOtp(userID uint) error {
	if userID == 0 {
		return ErrNotFound
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if strings.ToLower(user.Status) == constants.UserStatusActive {
		return ErrAccountAlreadyVerified
	}
	return s.issueOtp(user, constants.OtpPurposeRegister)
}

// ForgotPassword 发起密码重置
// 无论邮箱是否存在都返回成功，避免账号枚举
func (s *AuthService) ForgotPassword(email string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	if err := s.issueOtp(user, constants.OtpPurposeReset); err != nil {
		// 冷却期内静默不重发，已注册与未注册邮箱的响应保持一致
		if errors.Is(err, ErrOtpTooFrequent) {
			return nil
		}
		return err
	}
	return nil
}

// ResetPassword 校验重置验证码并更新密码
func (s *AuthService) ResetPassword(email, code, newPassword string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if user == nil {
		// 与验证码错误同样处理，避免账号枚举
		return ErrOtpInvalid
	}

	if err := s.verifyCode(user.ID, code); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("id = ?", user.ID).
			Updates(map[string]interface{}{
				"password_hash": string(hashedPassword),
				"updated_at":    now,
			}).Error; err != nil {
			return err
		}
		return s.otpRepo.DeleteByUser(tx, user.ID)
	}); err != nil {
		return err
	}

	user.PasswordHash = string(hashedPassword)
	user.UpdatedAt = now
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return nil
}

// GetUserByID 获取用户信息
func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	return s.userRepo.GetByID(id)
}

// verifyCode 校验最新一条验证码记录
// 失败尝试落库计数，达到上限后即使验证码正确也拒绝
func (s *AuthService) verifyCode(userID uint, code string) error {
	record, err := s.otpRepo.GetLatest(userID)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrOtpInvalid
	}

	maxAttempts := resolveMaxAttempts(s.cfg.Email.VerifyCode)
	if maxAttempts > 0 && record.AttemptCount >= maxAttempts {
		return ErrOtpAttemptsExceeded
	}

	if record.ExpiresAt.Before(time.Now()) {
		return ErrOtpExpired
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.CodeHash), []byte(strings.TrimSpace(code))); err != nil {
		if err := s.otpRepo.IncrementAttempt(record.ID); err != nil {
			return err
		}
		return ErrOtpInvalid
	}
	return nil
}

// issueOtp 生成并发送验证码
func (s *AuthService) issueOtp(user *models.User, purpose string) error {
	latest, err := s.otpRepo.GetLatest(user.ID)
	if err != nil {
		return err
	}
	now := time.Now()
	if latest != nil {
		interval := time.Duration(resolveSendIntervalSeconds(s.cfg.Email.VerifyCode)) * time.Second
		if !latest.SentAt.IsZero() && now.Sub(latest.SentAt) < interval {
			return ErrOtpTooFrequent
		}
	}

	code, err := randomNumericCode(resolveCodeLength(s.cfg.Email.VerifyCode))
	if err != nil {
		return err
	}
	codeHash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	record := &models.OtpCode{
		UserID:    user.ID,
		Purpose:   strings.ToLower(purpose),
		CodeHash:  string(codeHash),
		ExpiresAt: now.Add(time.Duration(resolveExpireMinutes(s.cfg.Email.VerifyCode)) * time.Minute),
		SentAt:    now,
		CreatedAt: now,
	}
	if err := s.otpRepo.Create(record); err != nil {
		return err
	}

	if s.queueClient.Enabled() {
		return s.queueClient.EnqueueOtpEmail(queue.OtpEmailPayload{
			Email:   user.Email,
			Code:    code,
			Purpose: record.Purpose,
		})
	}
	return s.emailService.SendOtpEmail(user.Email, code, record.Purpose)
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

// NormalizeEmail 统一邮箱格式
func NormalizeEmail(email string) (string, error) {
	return normalizeEmail(email)
}

func isRegisterRoleSupported(role string) bool {
	switch role {
	case constants.RoleStudent, constants.RoleInstitute, constants.RoleCompany:
		return true
	default:
		return false
	}
}

func resolveExpireMinutes(cfg config.VerifyCodeConfig) int {
	if cfg.ExpireMinutes <= 0 {
		return 10
	}
	return cfg.ExpireMinutes
}

func resolveSendIntervalSeconds(cfg config.VerifyCodeConfig) int {
	if cfg.SendIntervalSeconds <= 0 {
		return 60
	}
	return cfg.SendIntervalSeconds
}

func resolveMaxAttempts(cfg config.VerifyCodeConfig) int {
	if cfg.MaxAttempts <= 0 {
		return 5
	}
	return cfg.MaxAttempts
}

func resolveCodeLength(cfg config.VerifyCodeConfig) int {
	if cfg.Length < 4 || cfg.Length > 10 {
		return 6
	}
	return cfg.Length
}

func randomNumericCode(length int) (string, error) {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String(), nil
}
