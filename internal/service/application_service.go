package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"hia/internal/domain"
	"hia/internal/port"
)

// SubmitApplicationInput is the DTO for healthcare-assistant applications.
type SubmitApplicationInput struct {
	UserID         uuid.UUID
	FullName       string
	Qualification  string
	CompanyName    string
	ProfilePicture io.Reader
	ProfileType    string
	IDDocument     io.Reader
	IDDocumentType string
}

// DecideApplicationInput is the DTO for admin approval/rejection.
type DecideApplicationInput struct {
	ApplicationID uuid.UUID
	ReviewerID    uuid.UUID
	Approve       bool
	Note          string
}

// ApplicationService manages the healthcare-assistant approval workflow.
type ApplicationService interface {
	Submit(ctx context.Context, input SubmitApplicationInput) (*domain.HCApplication, error)
	GetOwn(ctx context.Context, userID uuid.UUID) (*domain.HCApplication, error)
	List(ctx context.Context, status *domain.ApplicationStatus, offset, limit int) ([]domain.HCApplication, int, error)
	Decide(ctx context.Context, input DecideApplicationInput) (*domain.HCApplication, error)
	DocumentURL(ctx context.Context, applicationID uuid.UUID) (pictureURL, documentURL string, err error)
}

type applicationService struct {
	appRepo  port.ApplicationRepository
	userRepo port.UserRepository
	storage  port.ObjectStorage
	email    port.EmailSender
}

// NewApplicationService creates a new ApplicationService implementation.
func NewApplicationService(
	appRepo port.ApplicationRepository,
	userRepo port.UserRepository,
	storage port.ObjectStorage,
	email port.EmailSender,
) ApplicationService {
	return &applicationService{
		appRepo:  appRepo,
		userRepo: userRepo,
		storage:  storage,
		email:    email,
	}
}

// Submit files an application. One pending application per user; re-applying
// is allowed only after a rejection, which replaces the rejected record.
func (s *applicationService) Submit(ctx context.Context, input SubmitApplicationInput) (*domain.HCApplication, error) {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	existing, err := s.appRepo.GetByUser(ctx, input.UserID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case domain.ApplicationPending:
			return nil, domain.ErrApplicationPending
		case domain.ApplicationApproved:
			return nil, domain.ErrAlreadyAssistant
		case domain.ApplicationRejected:
			if err := s.appRepo.DeleteByUser(ctx, input.UserID); err != nil {
				return nil, err
			}
			// The rejected application's documents are replaced, not kept;
			// a failed delete only orphans an object, so it is logged.
			for _, key := range []string{existing.ProfilePictureKey, existing.IDDocumentKey} {
				if key == "" {
					continue
				}
				if err := s.storage.Delete(ctx, key); err != nil {
					log.Printf("applicationService: deleting stale document %s failed: %v", key, err)
				}
			}
		}
	}

	appID := uuid.New()
	pictureKey := fmt.Sprintf("applications/%s/profile-picture", appID)
	documentKey := fmt.Sprintf("applications/%s/id-document", appID)

	if err := s.storage.Upload(ctx, pictureKey, input.ProfileType, input.ProfilePicture); err != nil {
		return nil, fmt.Errorf("applicationService.Submit profile picture: %w", err)
	}
	if err := s.storage.Upload(ctx, documentKey, input.IDDocumentType, input.IDDocument); err != nil {
		return nil, fmt.Errorf("applicationService.Submit id document: %w", err)
	}

	app := &domain.HCApplication{
		UserID:            input.UserID,
		FullName:          input.FullName,
		Email:             user.Email,
		Qualification:     input.Qualification,
		CompanyName:       input.CompanyName,
		ProfilePictureKey: pictureKey,
		IDDocumentKey:     documentKey,
		Status:            domain.ApplicationPending,
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *applicationService) GetOwn(ctx context.Context, userID uuid.UUID) (*domain.HCApplication, error) {
	return s.appRepo.GetByUser(ctx, userID)
}

func (s *applicationService) List(ctx context.Context, status *domain.ApplicationStatus, offset, limit int) ([]domain.HCApplication, int, error) {
	return s.appRepo.List(ctx, status, offset, limit)
}

// Decide approves or rejects a pending application. Approval promotes the
// applicant to the HC role; the decision email is best-effort.
func (s *applicationService) Decide(ctx context.Context, input DecideApplicationInput) (*domain.HCApplication, error) {
	app, err := s.appRepo.GetByID(ctx, input.ApplicationID)
	if err != nil {
		return nil, err
	}
	if app.Status != domain.ApplicationPending {
		return nil, domain.ErrApplicationDecided
	}

	if input.Approve {
		app.Status = domain.ApplicationApproved
	} else {
		app.Status = domain.ApplicationRejected
	}
	app.ReviewedBy = &input.ReviewerID
	app.ReviewNote = input.Note

	if err := s.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}

	if input.Approve {
		if err := s.userRepo.UpdateRole(ctx, app.UserID, domain.RoleHC); err != nil {
			return nil, fmt.Errorf("applicationService.Decide promote: %w", err)
		}
	}

	if err := s.email.SendApplicationDecision(ctx, app.Email, app.FullName, input.Approve, input.Note); err != nil {
		log.Printf("applicationService: decision email to %s failed: %v", app.Email, err)
	}

	return app, nil
}

func (s *applicationService) DocumentURL(ctx context.Context, applicationID uuid.UUID) (string, string, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return "", "", err
	}
	pictureURL, err := s.storage.PresignGet(ctx, app.ProfilePictureKey)
	if err != nil {
		return "", "", fmt.Errorf("applicationService.DocumentURL picture: %w", err)
	}
	documentURL, err := s.storage.PresignGet(ctx, app.IDDocumentKey)
	if err != nil {
		return "", "", fmt.Errorf("applicationService.DocumentURL document: %w", err)
	}
	return pictureURL, documentURL, nil
}
