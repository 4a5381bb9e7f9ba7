package jobs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-parser/internal/shared/server/middleware"
	"resume-parser/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches job routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/jobs", h.list)
	rg.GET("/jobs/:id", h.get)

	owner := rg.Group("", middleware.RequireIdentity())
	owner.POST("/jobs", h.create)
	owner.PUT("/jobs/:id", h.update)
	owner.DELETE("/jobs/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	includeClosed, _ := strconv.ParseBool(c.Query("includeClosed"))
	list, err := h.Svc.List(c.Request.Context(), Filter{
		Skill:          c.Query("skill"),
		Location:       c.Query("location"),
		EmploymentType: c.Query("employmentType"),
		Search:         c.Query("search"),
		IncludeClosed:  includeClosed,
	})
	if err != nil {
		WriteError(c, err, "failed to list jobs")
		return
	}
	respond.OK(c, ToResponses(list))
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.LogJobIDKey, id)
	job, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		WriteError(c, err, "failed to fetch job")
		return
	}
	respond.OK(c, ToResponse(job))
}

func (h *Handler) create(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	job, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), in)
	if err != nil {
		WriteError(c, err, "failed to create job")
		return
	}
	c.Set(middleware.LogJobIDKey, job.ID)
	respond.Created(c, ToResponse(job))
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.LogJobIDKey, id)
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	job, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), id, in)
	if err != nil {
		WriteError(c, err, "failed to update job")
		return
	}
	respond.OK(c, ToResponse(job))
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.LogJobIDKey, id)
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		WriteError(c, err, "failed to delete job")
		return
	}
	respond.NoContent(c)
}

// WriteError maps job errors onto the shared error envelope.
func WriteError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "job belongs to another company", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
