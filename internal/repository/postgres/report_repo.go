package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"hia/internal/domain"
	"hia/internal/port"
)

type reportRepo struct {
	db *sqlx.DB
}

// NewReportRepo creates a new PostgreSQL-backed ReportRepository.
func NewReportRepo(db *sqlx.DB) port.ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) Create(ctx context.Context, report *domain.Report) error {
	report.ID = uuid.New()
	report.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reports (id, user_id, input_kind, result_text, succeeded, warnings, model_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		report.ID, report.UserID, report.InputKind, report.ResultText,
		report.Succeeded, report.Warnings, report.ModelUsed, report.CreatedAt)
	if err != nil {
		return fmt.Errorf("reportRepo.Create: %w", err)
	}
	return nil
}

func (r *reportRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Report, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM reports WHERE user_id = $1", userID)
	if err != nil {
		return nil, 0, fmt.Errorf("reportRepo.ListByUser count: %w", err)
	}

	var reports []domain.Report
	err = r.db.SelectContext(ctx, &reports,
		"SELECT * FROM reports WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("reportRepo.ListByUser: %w", err)
	}
	return reports, total, nil
}

func (r *reportRepo) ListAll(ctx context.Context, offset, limit int) ([]domain.Report, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM reports"); err != nil {
		return nil, 0, fmt.Errorf("reportRepo.ListAll count: %w", err)
	}

	var reports []domain.Report
	err := r.db.SelectContext(ctx, &reports,
		"SELECT * FROM reports ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("reportRepo.ListAll: %w", err)
	}
	return reports, total, nil
}
