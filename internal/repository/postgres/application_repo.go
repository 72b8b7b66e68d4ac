package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"hia/internal/domain"
	"hia/internal/port"
)

type applicationRepo struct {
	db *sqlx.DB
}

// NewApplicationRepo creates a new PostgreSQL-backed ApplicationRepository.
func NewApplicationRepo(db *sqlx.DB) port.ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.HCApplication) error {
	app.ID = uuid.New()
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO hc_applications (id, user_id, full_name, email, qualification, company_name,
			profile_picture_key, id_document_key, status, review_note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		app.ID, app.UserID, app.FullName, app.Email, app.Qualification, app.CompanyName,
		app.ProfilePictureKey, app.IDDocumentKey, app.Status, app.ReviewNote,
		app.CreatedAt, app.UpdatedAt)
	if err != nil {
		return fmt.Errorf("applicationRepo.Create: %w", err)
	}
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.HCApplication, error) {
	var app domain.HCApplication
	err := r.db.GetContext(ctx, &app, "SELECT * FROM hc_applications WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("applicationRepo.GetByID: %w", err)
	}
	return &app, nil
}

func (r *applicationRepo) GetByUser(ctx context.Context, userID uuid.UUID) (*domain.HCApplication, error) {
	var app domain.HCApplication
	err := r.db.GetContext(ctx, &app,
		"SELECT * FROM hc_applications WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("applicationRepo.GetByUser: %w", err)
	}
	return &app, nil
}

func (r *applicationRepo) List(ctx context.Context, status *domain.ApplicationStatus, offset, limit int) ([]domain.HCApplication, int, error) {
	countQuery := "SELECT COUNT(*) FROM hc_applications"
	listQuery := "SELECT * FROM hc_applications ORDER BY created_at DESC LIMIT $1 OFFSET $2"
	args := []interface{}{limit, offset}

	if status != nil {
		countQuery = "SELECT COUNT(*) FROM hc_applications WHERE status = $1"
		listQuery = "SELECT * FROM hc_applications WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3"
		args = []interface{}{*status, limit, offset}
	}

	var total int
	var err error
	if status != nil {
		err = r.db.GetContext(ctx, &total, countQuery, *status)
	} else {
		err = r.db.GetContext(ctx, &total, countQuery)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("applicationRepo.List count: %w", err)
	}

	var apps []domain.HCApplication
	if err := r.db.SelectContext(ctx, &apps, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("applicationRepo.List: %w", err)
	}
	return apps, total, nil
}

func (r *applicationRepo) Update(ctx context.Context, app *domain.HCApplication) error {
	app.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx,
		`UPDATE hc_applications SET status = $1, reviewed_by = $2, review_note = $3, updated_at = $4
		WHERE id = $5`,
		app.Status, app.ReviewedBy, app.ReviewNote, app.UpdatedAt, app.ID)
	if err != nil {
		return fmt.Errorf("applicationRepo.Update: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM hc_applications WHERE user_id = $1", userID)
	if err != nil {
		return fmt.Errorf("applicationRepo.DeleteByUser: %w", err)
	}
	return nil
}
