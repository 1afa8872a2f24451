package employee

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"HRIS-backend/internal/platform/apierr"
	"HRIS-backend/internal/platform/render"
	"HRIS-backend/internal/platform/validation"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.GET("/employees", h.List)
	r.POST("/employees", h.Create)
	r.GET("/employees/multiple", h.Multiple)
	r.GET("/employees/test-validator", h.TestValidator)
	r.PUT("/employees/bulk-update", h.BulkUpdate)
	r.PATCH("/employees/bulk-update", h.BulkPatch)
	r.DELETE("/employees/bulk-delete", h.BulkDelete)

	r.GET("/employees/:id", h.Get)
	r.PUT("/employees/:id", h.Replace)
	r.PATCH("/employees/:id", h.Patch)
	r.DELETE("/employees/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	var q ListEmployeesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		render.Error(c, apierr.ErrValidation(validation.Fields(err)))
		return
	}

	res, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		render.Error(c, err)
		return
	}
	render.Respond(c, http.StatusOK, "employees", res)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		render.Error(c, apierr.ErrValidation(validation.Fields(err)))
		return
	}

	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		render.Error(c, err)
		return
	}
	render.Respond(c, http.StatusCreated, "employee", res)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		render.Error(c, err)
		return
	}
	render.Respond(c, http.StatusOK, "employee", res)
}

func (h *Handler) Replace(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		render.Error(c, apierr.ErrValidation(validation.Fields(err)))
		return
	}

	res, err := h.svc.Replace(c.Request.Context(), id, req)
	if err != nil {
		render.Error(c, err)
		return
	}
	render.Respond(c, http.StatusOK, "employee", res)
}

func (h *Handler) Patch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req PatchEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		render.Error(c, apierr.ErrValidation(validation.Fields(err)))
		return
	}

	res, err := h.svc.Patch(c.Request.Context(), id, req)
	if err != nil {
		render.Error(c, err)
		return
	}
	render.Respond(c, http.StatusOK, "employee", res)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		render.Error(c, err)
		return
	}
	render.Message(c, http.StatusOK, "Employee deleted successfully")
}

// GET /employees/multiple?ids=1,2,3
func (h *Handler) Multiple(c *gin.Context) {
	ids, err := parseIDList(c.Query("ids"))
	if err != nil {
		render.Error(c, apierr.ErrInvalid("No IDs provided."))
		return
	}

	res, err := h.svc.Multiple(c.Request.Context(), ids)
	if err != nil {
		render.Error(c, err)
		return
	}
	render.Respond(c, http.StatusOK, "employees", res)
}

// PUT /employees/bulk-update: 件数のみ返す
func (h *Handler) BulkUpdate(c *gin.Context) {
	var req BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		render.Error(c, apierr.ErrValidation(validation.Fields(err)))
		return
	}

	updated, _, err := h.svc.BulkUpdate(c.Request.Context(), req, false)
	if err != nil {
		render.Error(c, err)
		return
	}
	render.Respond(c, http.StatusOK, "response", gin.H{
		"message":       "Employees updated successfully.",
		"updated_count": updated,
	})
}

// PATCH /employees/bulk-update: 更新後の行も返す
func (h *Handler) BulkPatch(c *gin.Context) {
	var req BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		render.Error(c, apierr.ErrValidation(validation.Fields(err)))
		return
	}

	updated, rows, err := h.svc.BulkUpdate(c.Request.Context(), req, true)
	if err != nil {
		render.Error(c, err)
		return
	}
	render.Respond(c, http.StatusOK, "response", gin.H{
		"message":       "Employees patched successfully.",
		"updated_count": updated,
		"employees":     rows,
	})
}

func (h *Handler) BulkDelete(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		render.Error(c, apierr.ErrValidation(validation.Fields(err)))
		return
	}

	deleted, err := h.svc.BulkDelete(c.Request.Context(), req)
	if err != nil {
		render.Error(c, err)
		return
	}
	render.Respond(c, http.StatusOK, "response", gin.H{
		"message":       "Employees deleted successfully.",
		"deleted_count": deleted,
	})
}

func (h *Handler) TestValidator(c *gin.Context) {
	if err := h.svc.TestValidator(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":     "Validator loaded",
			"validation": "failed",
			"message":    err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "Validator loaded",
		"validation": "passed",
	})
}

// ===== helpers =====

func pathID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		render.Error(c, apierr.ErrInvalid("invalid id"))
		return 0, false
	}
	return id, true
}

func parseIDList(raw string) ([]uint64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, strconv.ErrSyntax
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
