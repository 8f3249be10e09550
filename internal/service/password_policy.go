package service

import (
	"unicode"

	"github.com/skillchain/skillchain-api/internal/config"
)

// validatePassword 按配置的密码策略校验明文密码
func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	minLength := policy.MinLength
	if minLength <= 0 {
		minLength = 6
	}
	if len(password) < minLength {
		return ErrPasswordTooShort
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if policy.RequireUpper && !hasUpper {
		return ErrPasswordNeedUpper
	}
	if policy.RequireLower && !hasLower {
		return ErrPasswordNeedLower
	}
	if policy.RequireNumber && !hasNumber {
		return ErrPasswordNeedNumber
	}
	if policy.RequireSpecial && !hasSpecial {
		return ErrPasswordNeedSpecial
	}
	return nil
}
