package resumes

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-parser/internal/shared/metrics"
	"resume-parser/internal/shared/server/middleware"
	"resume-parser/internal/shared/server/respond"
	"resume-parser/internal/shared/server/upload"
)

// FormField is the multipart field carrying the résumé.
const FormField = "resume"

const defaultMaxUploadBytes = 10 << 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler. maxUploadBytes <= 0 selects 10MB.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches the parse route.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/parse-resume", h.parse)
}

func (h *Handler) parse(c *gin.Context) {
	metrics.IncParseStarted()
	start := time.Now()
	defer func() {
		metrics.ObserveParseDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	file, err := upload.Open(c, FormField, h.MaxUploadBytes)
	if err != nil {
		h.fail(c, err)
		return
	}
	defer file.Close()

	parsed, err := h.Svc.Parse(c.Request.Context(), file)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Set(middleware.LogPagesKey, parsed.Pages)
	metrics.IncParseCompleted()
	respond.OK(c, toResponse(parsed))
}

func (h *Handler) fail(c *gin.Context, err error) {
	status, code, message := ErrorStatus(err)
	metrics.IncParseFailed(code)
	respond.Error(c, status, code, message, nil)
}

// ErrorStatus maps a parse or upload error to its HTTP status, code and message.
func ErrorStatus(err error) (int, string, string) {
	switch {
	case upload.IsTooLarge(err):
		return http.StatusRequestEntityTooLarge, "file_too_large", "resume exceeds the upload limit"
	case errors.Is(err, ErrMissingFile), errors.Is(err, upload.ErrMissing):
		return http.StatusBadRequest, "missing_file", "multipart field \"resume\" is required"
	case errors.Is(err, ErrUnparseablePDF):
		return http.StatusUnprocessableEntity, "unparseable_pdf", "resume is not a readable PDF"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "canceled", "request canceled"
	case errors.Is(err, ErrAnalysis):
		return http.StatusInternalServerError, "analysis_error", "resume analysis failed"
	default:
		return http.StatusInternalServerError, "internal", "failed to parse resume"
	}
}
