package attendance

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"HRIS-backend/internal/platform/apierr"
	"HRIS-backend/internal/platform/render"
	"HRIS-backend/internal/platform/validation"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.GET("/attendance", h.List)
	r.POST("/attendance", h.Create)
	r.GET("/attendance/employee/:employee_id", h.ByEmployee)
	r.GET("/attendance/:id", h.Get)
	r.PUT("/attendance/:id", h.Update)
	r.DELETE("/attendance/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context())
	if err != nil {
		render.Error(c, err)
		return
	}
	render.Respond(c, http.StatusOK, "attendance", res)
}

func (h *Handler) ByEmployee(c *gin.Context) {
	employeeID, err := strconv.ParseUint(c.Param("employee_id"), 10, 64)
	if err != nil || employeeID == 0 {
		render.Error(c, apierr.ErrInvalid("invalid employee id"))
		return
	}
	var date *string
	if v := c.Query("date"); v != "" {
		date = &v
	}

	res, err := h.svc.ListByEmployee(c.Request.Context(), employeeID, date)
	if err != nil {
		render.Error(c, err)
		return
	}
	render.Respond(c, http.StatusOK, "attendance", res)
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
	render.Respond(c, http.StatusOK, "attendance", res)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		render.Error(c, apierr.ErrValidation(validation.Fields(err)))
		return
	}

	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		render.Error(c, err)
		return
	}
	render.Respond(c, http.StatusCreated, "attendance", res)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		render.Error(c, apierr.ErrValidation(validation.Fields(err)))
		return
	}

	res, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		render.Error(c, err)
		return
	}
	render.Respond(c, http.StatusOK, "attendance", res)
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
	render.Message(c, http.StatusOK, "Attendance record deleted successfully")
}

func pathID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		render.Error(c, apierr.ErrInvalid("invalid id"))
		return 0, false
	}
	return id, true
}
