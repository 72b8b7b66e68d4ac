package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")
	ErrDuplicateEmail     = errors.New("email already registered")

	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")

	// Analysis pipeline errors. The handler maps these to caller-facing codes;
	// rate-limited extraction and failed extraction are distinct because the two
	// demand different user action.
	ErrInvalidAnalysisInput  = errors.New("either report text or a report file is required")
	ErrExtractionRateLimited = errors.New("text extraction rate limited")
	ErrExtractionFailed      = errors.New("text extraction failed")
	ErrGenerationFailed      = errors.New("analysis generation failed")

	ErrApplicationPending = errors.New("a pending application already exists")
	ErrAlreadyAssistant   = errors.New("user is already a healthcare assistant")
	ErrApplicationDecided = errors.New("application has already been decided")
	ErrChatNotFound       = errors.New("chat not found")
)
