package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skillpath/certificate-service/internal/models"
	"go.uber.org/zap"
)

// CertificateService is the interface that wraps the learner side of certificate issuance
type CertificateService interface {
	// RequestCertificate issues a certificate, files a request for approval or refuses, based on progress
	//
	// "userID" is the ID of the learner.
	// "courseID" is the ID of the course.
	//
	// Repeated calls return the already issued certificate or the already pending request.
	RequestCertificate(ctx context.Context, userID, courseID int) (*models.CertificateRequestResult, error)
	// GetStatus reports whether the learner holds or awaits a certificate for the course
	GetStatus(ctx context.Context, userID, courseID int) (*models.CertificateStatus, error)
	// ListMyCertificates returns the learner's certificates and the number of pending requests
	ListMyCertificates(ctx context.Context, userID int) (*models.MyCertificatesResponse, error)
}

// CertificateHandler handles HTTP requests of learners for their certificates
type CertificateHandler struct {
	BaseHandler
	service CertificateService
}

// NewCertificateHandler creates a new certificate handler
func NewCertificateHandler(svc CertificateService, logger *zap.Logger) *CertificateHandler {
	return &CertificateHandler{
		service:     svc,
		BaseHandler: NewBaseHandler(logger),
	}
}

// RegisterRoutes registers all certificate handler routes
func (h *CertificateHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/certificates", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/request", h.RequestCertificate)
		r.Get("/status", h.GetStatus)
		r.Get("/mine", h.ListMyCertificates)
	})
}

// RequestCertificate handles POST /certificates/request
// @Summary Request a certificate
// @Description Issue a certificate right away, file a request for instructor approval, or return the existing certificate or pending request
// @Tags certificates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.RequestCertificateInput true "Course to certify"
// @Success 200 {object} models.CertificateRequestResult "Certificate already issued"
// @Success 201 {object} models.CertificateRequestResult "Certificate issued"
// @Success 202 {object} models.CertificateRequestResult "Request pending approval"
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Course not found"
// @Failure 409 {object} ErrorResponse "Not eligible"
// @Failure 503 {object} ErrorResponse "Service unavailable"
// @Router /certificates/request [post]
func (h *CertificateHandler) RequestCertificate(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.Principal(w, r)
	if !ok {
		return
	}

	var input models.RequestCertificateInput
	if err := h.DecodeJSON(r, &input, false); err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	result, err := h.service.RequestCertificate(r.Context(), principal.UserID, input.CourseID)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	status := http.StatusOK
	switch {
	case result.AutoIssued:
		status = http.StatusCreated
	case result.PendingApproval:
		status = http.StatusAccepted
	}
	h.RespondJSON(w, status, result)
}

// GetStatus handles GET /certificates/status
// @Summary Get certificate status
// @Description Tell whether the learner holds or awaits a certificate for a course
// @Tags certificates
// @Produce json
// @Security BearerAuth
// @Param courseId query int true "Course ID"
// @Success 200 {object} models.CertificateStatus
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 503 {object} ErrorResponse "Service unavailable"
// @Router /certificates/status [get]
func (h *CertificateHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.Principal(w, r)
	if !ok {
		return
	}

	courseID, err := positiveInt(r.URL.Query().Get("courseId"), "courseId")
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	status, err := h.service.GetStatus(r.Context(), principal.UserID, courseID)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, status)
}

// ListMyCertificates handles GET /certificates/mine
// @Summary List my certificates
// @Description List the certificates of the current learner and the number of requests awaiting review
// @Tags certificates
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.MyCertificatesResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 503 {object} ErrorResponse "Service unavailable"
// @Router /certificates/mine [get]
func (h *CertificateHandler) ListMyCertificates(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.Principal(w, r)
	if !ok {
		return
	}

	certificates, err := h.service.ListMyCertificates(r.Context(), principal.UserID)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, certificates)
}
