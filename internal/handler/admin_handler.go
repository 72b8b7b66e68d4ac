package handler

import (
	"bytes"
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hia/internal/domain"
	"hia/internal/export"
	"hia/internal/port"
	"hia/internal/service"
)

// exportBatchSize bounds how many reports one export request pulls.
const exportBatchSize = 10000

// AdminHandler handles user management and report export for admins.
type AdminHandler struct {
	userService service.UserService
	reportRepo  port.ReportRepository
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(userService service.UserService, reportRepo port.ReportRepository) *AdminHandler {
	return &AdminHandler{userService: userService, reportRepo: reportRepo}
}

// ListUsers handles GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	offset, limit := parsePagination(c)

	users, total, err := h.userService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, users, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetUser handles GET /api/v1/admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid user ID")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, user)
}

type updateRoleRequest struct {
	Role domain.Role `json:"role" binding:"required"`
}

// UpdateUserRole handles PATCH /api/v1/admin/users/:id/role
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid user ID")
		return
	}

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	switch req.Role {
	case domain.RoleUser, domain.RoleHC, domain.RoleAdmin:
	default:
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "role must be USER, HC or ADMIN")
		return
	}

	if err := h.userService.UpdateRole(c.Request.Context(), userID, req.Role); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "role updated"})
}

// DeleteUser handles DELETE /api/v1/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid user ID")
		return
	}

	if err := h.userService.Delete(c.Request.Context(), userID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "user deleted"})
}

// ExportReportsCSV handles GET /api/v1/admin/reports/export/csv
//
// Pages are streamed to the response as they are fetched; only the first
// fetch can still produce a clean error response.
func (h *AdminHandler) ExportReportsCSV(c *gin.Context) {
	ctx := c.Request.Context()
	page, total, err := h.reportRepo.ListAll(ctx, 0, exportBatchSize)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("analysis_reports", "csv")
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	// BOM first so Excel detects UTF-8.
	if _, err := c.Writer.Write(export.BOM); err != nil {
		return
	}

	w := export.NewCSVWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	offset := 0
	for {
		if err := w.WriteReports(page); err != nil {
			return
		}
		offset += len(page)
		if len(page) == 0 || offset >= total {
			break
		}
		page, total, err = h.reportRepo.ListAll(ctx, offset, exportBatchSize)
		if err != nil {
			log.Printf("adminHandler: report export aborted at offset %d: %v", offset, err)
			return
		}
	}
	w.Flush()
}

// ExportReportsXLSX handles GET /api/v1/admin/reports/export/xlsx
func (h *AdminHandler) ExportReportsXLSX(c *gin.Context) {
	reports, err := h.allReports(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteReportsXLSX(&buf, reports); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("analysis_reports", "xlsx")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// allReports pages through the full report table. The workbook writer needs
// every row in memory anyway, so this collects rather than streams.
func (h *AdminHandler) allReports(ctx context.Context) ([]domain.Report, error) {
	var all []domain.Report
	offset := 0
	for {
		page, total, err := h.reportRepo.ListAll(ctx, offset, exportBatchSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		offset += len(page)
		if len(page) == 0 || offset >= total {
			return all, nil
		}
	}
}
