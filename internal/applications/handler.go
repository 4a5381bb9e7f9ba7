package applications

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-parser/internal/jobs"
	"resume-parser/internal/shared/server/middleware"
	"resume-parser/internal/shared/server/respond"
	"resume-parser/internal/shared/server/upload"
	"resume-parser/internal/shared/telemetry"
)

// ResumeField is the optional multipart field carrying the résumé on apply.
const ResumeField = "resume"

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches application routes; all of them need a caller identity.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("", middleware.RequireIdentity())
	g.POST("/jobs/:id/apply", h.apply)
	g.GET("/applications/applied", h.applied)
	g.GET("/applications/applicants/:jobId", h.applicants)
	g.PATCH("/applications/:id/status", h.updateStatus)
	g.GET("/applications/:id/resume", h.resume)
}

func (h *Handler) apply(c *gin.Context) {
	jobID := c.Param("id")
	c.Set(middleware.LogJobIDKey, jobID)

	var att *Attachment
	if upload.IsMultipart(c) {
		f, err := upload.Open(c, ResumeField, h.MaxUploadBytes)
		switch {
		case err == nil:
			defer f.Close()
			att = &Attachment{FileName: f.Name, Body: f}
		case errors.Is(err, upload.ErrTooLarge):
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "resume exceeds the upload limit", nil)
			return
		}
	}

	app, err := h.Svc.Apply(c.Request.Context(), middleware.UserIDFromContext(c), jobID, att)
	if err != nil {
		writeError(c, err, "failed to apply to job")
		return
	}
	c.Set(middleware.LogApplicationIDKey, app.ID)
	respond.Created(c, toResponse(app))
}

func (h *Handler) applied(c *gin.Context) {
	list, err := h.Svc.Applied(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to fetch applied jobs")
		return
	}
	out := make([]Response, 0, len(list))
	for _, item := range list {
		resp := toResponse(item.Application)
		job := jobs.ToResponse(item.Job)
		resp.Job = &job
		out = append(out, resp)
	}
	respond.OK(c, out)
}

func (h *Handler) applicants(c *gin.Context) {
	jobID := c.Param("jobId")
	c.Set(middleware.LogJobIDKey, jobID)
	list, err := h.Svc.Applicants(c.Request.Context(), middleware.UserIDFromContext(c), jobID)
	if err != nil {
		writeError(c, err, "failed to fetch applicants")
		return
	}
	respond.OK(c, toResponses(list))
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.LogApplicationIDKey, id)
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	app, err := h.Svc.UpdateStatus(c.Request.Context(), middleware.UserIDFromContext(c), id, req.Status)
	if err != nil {
		writeError(c, err, "failed to update application")
		return
	}
	respond.OK(c, toResponse(app))
}

func (h *Handler) resume(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.LogApplicationIDKey, id)
	app, rc, err := h.Svc.OpenResume(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err, "failed to open resume")
		return
	}
	defer rc.Close()

	contentType := app.ResumeContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": app.ResumeFileName}))
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		telemetry.Warn("applications.resume.stream_failed", map[string]any{"application_id": id, "error": err.Error()})
	}
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrAlreadyExists):
		respond.Error(c, http.StatusConflict, "already_applied", "already applied to this job", nil)
	case errors.Is(err, ErrJobClosed):
		respond.Error(c, http.StatusConflict, "job_closed", "job is no longer accepting applications", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
	case errors.Is(err, ErrNoAttachment):
		respond.Error(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "not allowed to access this application", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, jobs.ErrNotFound), errors.Is(err, jobs.ErrForbidden), errors.Is(err, jobs.ErrInvalidInput):
		jobs.WriteError(c, err, fallback)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
