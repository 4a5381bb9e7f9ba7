package recommendations

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-parser/internal/jobs"
	"resume-parser/internal/resumes"
	"resume-parser/internal/shared/server/middleware"
	"resume-parser/internal/shared/server/respond"
	"resume-parser/internal/shared/server/upload"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches the recommendation route.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recommendations", h.recommend)
}

type skillsRequest struct {
	Skills []string `json:"skills"`
}

type matchResponse struct {
	Job           jobs.Response `json:"job"`
	Score         float64       `json:"score"`
	MatchedSkills []string      `json:"matchedSkills"`
}

type recommendResponse struct {
	Skills          []string        `json:"skills"`
	Recommendations []matchResponse `json:"recommendations"`
}

func (h *Handler) recommend(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserIDFromContext(c)

	var skills []string
	var matches []Match
	if upload.IsMultipart(c) {
		f, err := upload.Open(c, resumes.FormField, h.MaxUploadBytes)
		if err != nil {
			status, code, message := resumes.ErrorStatus(err)
			respond.Error(c, status, code, message, nil)
			return
		}
		defer f.Close()
		skills, matches, err = h.Svc.RecommendForResume(ctx, userID, f)
		if err != nil {
			status, code, message := resumes.ErrorStatus(err)
			respond.Error(c, status, code, message, nil)
			return
		}
	} else {
		var req skillsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "expected a resume upload or a JSON body with skills", nil)
			return
		}
		var err error
		skills = req.Skills
		matches, err = h.Svc.Recommend(ctx, userID, skills)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch recommendations", nil)
			return
		}
	}

	if skills == nil {
		skills = []string{}
	}
	out := recommendResponse{Skills: skills, Recommendations: make([]matchResponse, 0, len(matches))}
	for _, m := range matches {
		out.Recommendations = append(out.Recommendations, matchResponse{
			Job:           jobs.ToResponse(m.Job),
			Score:         m.Score,
			MatchedSkills: m.MatchedSkills,
		})
	}
	respond.OK(c, out)
}
