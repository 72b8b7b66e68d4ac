package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"hia/internal/domain"
	"hia/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"duplicate email", domain.ErrDuplicateEmail, http.StatusConflict, "DUPLICATE_EMAIL"},
		{"unsupported file", domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{"file too large", domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{"invalid analysis input", domain.ErrInvalidAnalysisInput, http.StatusBadRequest, "INVALID_INPUT"},
		{"extraction rate limited", domain.ErrExtractionRateLimited, http.StatusTooManyRequests, "EXTRACTION_RATE_LIMITED"},
		{"extraction failed", domain.ErrExtractionFailed, http.StatusUnprocessableEntity, "EXTRACTION_FAILED"},
		{"generation failed", domain.ErrGenerationFailed, http.StatusBadGateway, "GENERATION_FAILED"},
		{"application pending", domain.ErrApplicationPending, http.StatusConflict, "APPLICATION_PENDING"},
		{"application decided", domain.ErrApplicationDecided, http.StatusConflict, "APPLICATION_DECIDED"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, msg := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestMapDomainError_WrappedErrors(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), domain.ErrExtractionRateLimited)
	status, code, _ := handler.MapDomainError(wrapped)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "EXTRACTION_RATE_LIMITED", code)
}
