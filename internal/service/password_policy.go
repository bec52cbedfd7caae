package service

import (
	"fmt"
	"unicode"

	"github.com/jagoron-news/internal/config"
)

// passwordPolicyError names the violated rule and matches ErrWeakPassword
type passwordPolicyError struct {
	rule string
}

func (e passwordPolicyError) Error() string {
	return "password is too weak: " + e.rule
}

func (e passwordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		return passwordPolicyError{rule: fmt.Sprintf("at least %d characters", policy.MinLength)}
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
		default:
			hasSpecial = true
		}
	}

	if policy.RequireUpper && !hasUpper {
		return passwordPolicyError{rule: "an uppercase letter"}
	}
	if policy.RequireLower && !hasLower {
		return passwordPolicyError{rule: "a lowercase letter"}
	}
	if policy.RequireNumber && !hasNumber {
		return passwordPolicyError{rule: "a digit"}
	}
	if policy.RequireSpecial && !hasSpecial {
		return passwordPolicyError{rule: "a special character"}
	}
	return nil
}
