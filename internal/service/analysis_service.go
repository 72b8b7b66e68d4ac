package service

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"hia/internal/analysis"
	"hia/internal/domain"
	"hia/internal/port"
)

// AnalyzeInput is the DTO for report analysis requests.
type AnalyzeInput struct {
	UserID          uuid.UUID
	Role            domain.Role
	Text            string
	FileBytes       []byte
	FileContentType string
}

// AnalysisService runs the report pipeline and records each invocation.
type AnalysisService interface {
	Analyze(ctx context.Context, input AnalyzeInput) (*analysis.Result, error)
	History(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Report, int, error)
}

type analysisService struct {
	analyzer   *analysis.Analyzer
	reportRepo port.ReportRepository
}

// NewAnalysisService creates a new AnalysisService implementation.
func NewAnalysisService(analyzer *analysis.Analyzer, reportRepo port.ReportRepository) AnalysisService {
	return &analysisService{analyzer: analyzer, reportRepo: reportRepo}
}

func (s *analysisService) Analyze(ctx context.Context, input AnalyzeInput) (*analysis.Result, error) {
	req := analysis.Request{
		Text:            input.Text,
		FileBytes:       input.FileBytes,
		FileContentType: input.FileContentType,
		Role:            input.Role,
	}

	result, err := s.analyzer.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		UserID:     input.UserID,
		InputKind:  req.InputKind(),
		ResultText: result.Text,
		Succeeded:  result.Succeeded,
		Warnings:   strings.Join(result.Warnings, "; "),
		ModelUsed:  result.ModelUsed,
	}
	// The caller already has a result; a history write failure is logged, not surfaced.
	if err := s.reportRepo.Create(ctx, report); err != nil {
		log.Printf("analysisService: failed to record report for user %s: %v", input.UserID, err)
	}

	return result, nil
}

func (s *analysisService) History(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Report, int, error) {
	return s.reportRepo.ListByUser(ctx, userID, offset, limit)
}
