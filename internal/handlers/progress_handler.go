package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skillpath/certificate-service/internal/models"
	"go.uber.org/zap"
)

// ProgressService is the interface that wraps the course progress lookup
type ProgressService interface {
	// GetCourseProgress returns the learner's progress in a course together with the certificate eligibility
	GetCourseProgress(ctx context.Context, userID, courseID int) (*models.CourseProgressResponse, error)
}

// ProgressHandler handles HTTP requests for course progress
type ProgressHandler struct {
	BaseHandler
	service ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(svc ProgressService, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		service:     svc,
		BaseHandler: NewBaseHandler(logger),
	}
}

// RegisterRoutes registers all progress handler routes
func (h *ProgressHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.With(authMiddleware).Get("/courses/{courseId}/progress", h.GetCourseProgress)
}

// GetCourseProgress handles GET /courses/{courseId}/progress
// @Summary Get course progress
// @Description Get completion rate, quiz average and certificate eligibility of the current learner
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} models.CourseProgressResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Course not found"
// @Failure 503 {object} ErrorResponse "Service unavailable"
// @Router /courses/{courseId}/progress [get]
func (h *ProgressHandler) GetCourseProgress(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.Principal(w, r)
	if !ok {
		return
	}

	courseID, err := positiveInt(chi.URLParam(r, "courseId"), "courseId")
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	progress, err := h.service.GetCourseProgress(r.Context(), principal.UserID, courseID)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, progress)
}
