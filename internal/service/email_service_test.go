package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/skillchain/skillchain-api/internal/config"
	"github.com/skillchain/skillchain-api/internal/constants"
)

func TestBuildOtpEmailContent(t *testing.T) {
	tests := []struct {
		name                string
		purpose             string
		wantSubjectContains string
		wantBodyContains    []string
	}{
		{
			name:                "register",
			purpose:             constants.OtpPurposeRegister,
			wantSubjectContains: "Verification Code",
			wantBodyContains:    []string{"123456", "10 minutes"},
		},
		{
			name:                "reset",
			purpose:             constants.OtpPurposeReset,
			wantSubjectContains: "Password Reset",
			wantBodyContains:    []string{"123456", "10 minutes"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			subject, body := buildOtpEmailContent("123456", tc.purpose)
			if !strings.Contains(subject, tc.wantSubjectContains) {
				t.Fatalf("subject %q should contain %q", subject, tc.wantSubjectContains)
			}
			for _, want := range tc.wantBodyContains {
				if !strings.Contains(body, want) {
					t.Fatalf("body %q should contain %q", body, want)
				}
			}
		})
	}
}

func TestSendOtpEmailDisabledFallsBackToLog(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: false})
	if err := svc.SendOtpEmail("dev@example.com", "123456", constants.OtpPurposeRegister); err != nil {
		t.Fatalf("expected nil with disabled smtp, got: %v", err)
	}
}

func TestSendCustomEmailDisabledReturnsError(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: false})
	err := svc.SendCustomEmail("dev@example.com", "subject", "body")
	if !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("expected ErrEmailServiceDisabled, got: %v", err)
	}
}

func TestIsEmailRecipientRejected(t *testing.T) {
	if !isEmailRecipientRejected(errors.New("550 5.1.1 user unknown")) {
		t.Fatalf("expected recipient-rejected detection")
	}
	if isEmailRecipientRejected(errors.New("connection refused")) {
		t.Fatalf("connection error should not be recipient rejection")
	}
}
