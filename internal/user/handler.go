package user

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

	r.GET("/users", h.List)
	r.POST("/users", h.Create)
	r.GET("/users/multiple", h.Multiple)
	r.PATCH("/users/bulk-update", h.BulkUpdate)

	r.GET("/users/:id", h.Get)
	r.PUT("/users/:id", h.Update)
	r.DELETE("/users/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context())
	if err != nil {
		render.Error(c, err)
		return
	}
	render.Respond(c, http.StatusOK, "users", res)
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
	render.Respond(c, http.StatusOK, "user", res)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		render.Error(c, apierr.ErrValidation(validation.Fields(err)))
		return
	}

	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		render.Error(c, err)
		return
	}
	render.Respond(c, http.StatusCreated, "user", res)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		render.Error(c, apierr.ErrValidation(validation.Fields(err)))
		return
	}

	res, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		render.Error(c, err)
		return
	}
	render.Respond(c, http.StatusOK, "user", res)
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
	render.Message(c, http.StatusOK, "User deleted successfully")
}

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
	render.Respond(c, http.StatusOK, "users", res)
}

func (h *Handler) BulkUpdate(c *gin.Context) {
	var req BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		render.Error(c, apierr.ErrValidation(validation.Fields(err)))
		return
	}

	updated, rows, err := h.svc.BulkUpdate(c.Request.Context(), req)
	if err != nil {
		render.Error(c, err)
		return
	}
	render.Respond(c, http.StatusOK, "response", gin.H{
		"message":       "Users updated successfully.",
		"updated_count": updated,
		"users":         rows,
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
