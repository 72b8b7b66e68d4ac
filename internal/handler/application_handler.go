package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hia/internal/domain"
	"hia/internal/service"
)

// ApplicationHandler handles healthcare-assistant application endpoints.
type ApplicationHandler struct {
	appService  service.ApplicationService
	maxFileSize int64
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(appService service.ApplicationService, maxFileSizeMB int64) *ApplicationHandler {
	return &ApplicationHandler{
		appService:  appService,
		maxFileSize: maxFileSizeMB * 1024 * 1024,
	}
}

// Submit handles POST /api/v1/applications
//
// Accepts multipart/form-data with full_name, qualification, company_name
// fields and profile_picture, id_document file parts.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	fullName := c.PostForm("full_name")
	qualification := c.PostForm("qualification")
	if fullName == "" || qualification == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "full_name and qualification are required")
		return
	}

	picture, pictureHeader, err := c.Request.FormFile("profile_picture")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "profile_picture file is required")
		return
	}
	defer func() { _ = picture.Close() }()

	document, documentHeader, err := c.Request.FormFile("id_document")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "id_document file is required")
		return
	}
	defer func() { _ = document.Close() }()

	if err := h.validateUpload(pictureHeader.Size, pictureHeader.Header.Get("Content-Type")); err != nil {
		HandleError(c, err)
		return
	}
	if err := h.validateUpload(documentHeader.Size, documentHeader.Header.Get("Content-Type")); err != nil {
		HandleError(c, err)
		return
	}

	input := service.SubmitApplicationInput{
		UserID:         userID,
		FullName:       fullName,
		Qualification:  qualification,
		CompanyName:    c.PostForm("company_name"),
		ProfilePicture: picture,
		ProfileType:    pictureHeader.Header.Get("Content-Type"),
		IDDocument:     document,
		IDDocumentType: documentHeader.Header.Get("Content-Type"),
	}

	app, err := h.appService.Submit(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, app)
}

func (h *ApplicationHandler) validateUpload(size int64, contentType string) error {
	if size > h.maxFileSize {
		return domain.ErrFileTooLarge
	}
	if _, allowed := domain.AllowedContentTypes[contentType]; !allowed {
		return domain.ErrUnsupportedFileType
	}
	return nil
}

// GetOwn handles GET /api/v1/applications/me
func (h *ApplicationHandler) GetOwn(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	app, err := h.appService.GetOwn(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, app)
}

// List handles GET /api/v1/admin/applications
func (h *ApplicationHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	var status *domain.ApplicationStatus
	if s := c.Query("status"); s != "" {
		st := domain.ApplicationStatus(s)
		switch st {
		case domain.ApplicationPending, domain.ApplicationApproved, domain.ApplicationRejected:
			status = &st
		default:
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "status must be PENDING, APPROVED or REJECTED")
			return
		}
	}

	apps, total, err := h.appService.List(c.Request.Context(), status, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, apps, PagMeta{Total: total, Offset: offset, Limit: limit})
}

type decideRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

// Decide handles POST /api/v1/admin/applications/:id/decide
func (h *ApplicationHandler) Decide(c *gin.Context) {
	reviewerID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	appID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid application ID")
		return
	}

	var req decideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	app, err := h.appService.Decide(c.Request.Context(), service.DecideApplicationInput{
		ApplicationID: appID,
		ReviewerID:    reviewerID,
		Approve:       req.Approve,
		Note:          req.Note,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, app)
}

// Documents handles GET /api/v1/admin/applications/:id/documents
func (h *ApplicationHandler) Documents(c *gin.Context) {
	appID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid application ID")
		return
	}

	pictureURL, documentURL, err := h.appService.DocumentURL(c.Request.Context(), appID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"profile_picture_url": pictureURL,
		"id_document_url":     documentURL,
	})
}
