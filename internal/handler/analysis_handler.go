package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hia/internal/domain"
	"hia/internal/service"
)

// AnalysisHandler handles the report analysis endpoints.
type AnalysisHandler struct {
	analysisService service.AnalysisService
	maxFileSize     int64
}

// NewAnalysisHandler creates a new AnalysisHandler. maxFileSizeMB bounds
// uploaded report files.
func NewAnalysisHandler(analysisService service.AnalysisService, maxFileSizeMB int64) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		maxFileSize:     maxFileSizeMB * 1024 * 1024,
	}
}

// Analyze handles POST /api/v1/reports/analyze
//
// Accepts multipart/form-data with an optional "file" part (PDF or image)
// and an optional "text" field. At least one must be present.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	input := service.AnalyzeInput{
		UserID: userID,
		Role:   role,
		Text:   strings.TrimSpace(c.PostForm("text")),
	}

	file, header, err := c.Request.FormFile("file")
	if err == nil {
		defer func() { _ = file.Close() }()

		if header.Size > h.maxFileSize {
			HandleError(c, domain.ErrFileTooLarge)
			return
		}

		contentType := header.Header.Get("Content-Type")
		if _, allowed := domain.AllowedContentTypes[contentType]; !allowed {
			HandleError(c, domain.ErrUnsupportedFileType)
			return
		}

		data, readErr := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
		if readErr != nil {
			RespondError(c, http.StatusBadRequest, "UPLOAD_READ_FAILED", "could not read uploaded file")
			return
		}
		if int64(len(data)) > h.maxFileSize {
			HandleError(c, domain.ErrFileTooLarge)
			return
		}

		input.FileBytes = data
		input.FileContentType = contentType
	}

	result, err := h.analysisService.Analyze(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// History handles GET /api/v1/reports
func (h *AnalysisHandler) History(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)

	reports, total, err := h.analysisService.History(c.Request.Context(), userID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, reports, PagMeta{Total: total, Offset: offset, Limit: limit})
}
