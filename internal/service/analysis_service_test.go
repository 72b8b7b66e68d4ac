package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hia/internal/analysis"
	"hia/internal/config"
	"hia/internal/domain"
	"hia/internal/service"
	"hia/mocks"
)

func newAnalysisService(completer *mocks.MockChatCompleter, extractor *mocks.MockTextExtractor, reportRepo *mocks.MockReportRepo) service.AnalysisService {
	sanitizer := analysis.NewSanitizer(config.SanitizerConfig{MinLength: 50, MaxLength: 5000})
	analyzer := analysis.NewAnalyzer(completer, extractor, sanitizer, "test/text-model")
	return service.NewAnalysisService(analyzer, reportRepo)
}

func TestAnalysisService_Analyze_RecordsReport(t *testing.T) {
	completer := new(mocks.MockChatCompleter)
	extractor := new(mocks.MockTextExtractor)
	reportRepo := new(mocks.MockReportRepo)
	svc := newAnalysisService(completer, extractor, reportRepo)

	completer.On("Complete", mock.Anything, "test/text-model", mock.Anything).
		Return("📊 **Blood Sugar**\n• **Glucose**: 88 mg/dL - NORMAL\n• **HbA1c**: 5.4 % - NORMAL", nil)

	userID := uuid.New()
	var recorded *domain.Report
	reportRepo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			recorded = args.Get(1).(*domain.Report)
		}).
		Return(nil)

	result, err := svc.Analyze(context.Background(), service.AnalyzeInput{
		UserID: userID,
		Role:   domain.RoleUser,
		Text:   "glucose 88",
	})

	require.NoError(t, err)
	assert.True(t, result.Succeeded)

	require.NotNil(t, recorded)
	assert.Equal(t, userID, recorded.UserID)
	assert.Equal(t, "text", recorded.InputKind)
	assert.True(t, recorded.Succeeded)
	assert.Equal(t, "test/text-model", recorded.ModelUsed)
	assert.Equal(t, result.Text, recorded.ResultText)
}

func TestAnalysisService_Analyze_ReportWriteFailureNotSurfaced(t *testing.T) {
	completer := new(mocks.MockChatCompleter)
	extractor := new(mocks.MockTextExtractor)
	reportRepo := new(mocks.MockReportRepo)
	svc := newAnalysisService(completer, extractor, reportRepo)

	completer.On("Complete", mock.Anything, "test/text-model", mock.Anything).
		Return("📊 **Blood Sugar**\n• **Glucose**: 88 mg/dL - NORMAL\n• **HbA1c**: 5.4 % - NORMAL", nil)
	reportRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	result, err := svc.Analyze(context.Background(), service.AnalyzeInput{
		UserID: uuid.New(),
		Role:   domain.RoleUser,
		Text:   "glucose 88",
	})

	require.NoError(t, err)
	assert.True(t, result.Succeeded)
}

func TestAnalysisService_Analyze_PipelineErrorNotRecorded(t *testing.T) {
	completer := new(mocks.MockChatCompleter)
	extractor := new(mocks.MockTextExtractor)
	reportRepo := new(mocks.MockReportRepo)
	svc := newAnalysisService(completer, extractor, reportRepo)

	_, err := svc.Analyze(context.Background(), service.AnalyzeInput{
		UserID: uuid.New(),
		Role:   domain.RoleUser,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidAnalysisInput)
	reportRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAnalysisService_History(t *testing.T) {
	completer := new(mocks.MockChatCompleter)
	extractor := new(mocks.MockTextExtractor)
	reportRepo := new(mocks.MockReportRepo)
	svc := newAnalysisService(completer, extractor, reportRepo)

	userID := uuid.New()
	reports := []domain.Report{{ID: uuid.New(), UserID: userID}}
	reportRepo.On("ListByUser", mock.Anything, userID, 0, 20).Return(reports, 1, nil)

	got, total, err := svc.History(context.Background(), userID, 0, 20)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, reports, got)
}
