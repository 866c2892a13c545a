package util

import "errors"

var (
	ErrUsernameTaken       = errors.New("该用户名已被注册")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrSessionNotFound     = errors.New("session not found")
	ErrWizardNotFound      = errors.New("signup flow not found or expired")
	ErrViewNotMounted      = errors.New("view not mounted")
	ErrWrongWizardStep     = errors.New("action not valid for current signup step")
	ErrVerificationFailed  = errors.New("verification code does not match")
	ErrFileTypeUnsupported = errors.New("file type not supported")
	ErrFileTooLarge        = errors.New("file too large")
	ErrRequiredFields      = errors.New("required fields missing")
	ErrInvalidDateFormat   = errors.New("invalid date format")
	ErrInvalidScore        = errors.New("score must be between 0 and 10")
)
