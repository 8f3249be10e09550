package service

import "errors"

// 服务层业务错误，由 handler 映射为对应的 HTTP 状态码
var (
	ErrNotFound                  = errors.New("resource not found")
	ErrInvalidEmail              = errors.New("invalid email address")
	ErrInvalidRole               = errors.New("invalid role")
	ErrEmailExists               = errors.New("email already registered")
	ErrApparIDExists             = errors.New("appar id already registered")
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrAccountNotVerified        = errors.New("account not verified")
	ErrAccountSuspended          = errors.New("account suspended")
	ErrAccountAlreadyVerified    = errors.New("account already verified")
	ErrOtpInvalid                = errors.New("invalid otp")
	ErrOtpExpired                = errors.New("otp expired")
	ErrOtpAttemptsExceeded       = errors.New("otp attempts exceeded")
	ErrOtpTooFrequent            = errors.New("otp requested too frequently")
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
	ErrCertificateExists         = errors.New("certificate already exists")
	ErrCertificateInvalid        = errors.New("certificate fields missing")
	ErrPasswordTooShort          = errors.New("password too short")
	ErrPasswordNeedUpper         = errors.New("password requires uppercase letter")
	ErrPasswordNeedLower         = errors.New("password requires lowercase letter")
	ErrPasswordNeedNumber        = errors.New("password requires number")
	ErrPasswordNeedSpecial       = errors.New("password requires special character")
)
