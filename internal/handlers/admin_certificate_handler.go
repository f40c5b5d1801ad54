package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skillpath/certificate-service/internal/models"
	"go.uber.org/zap"
)

// CertificateReviewService is the interface that wraps the reviewer side of certificate issuance
type CertificateReviewService interface {
	// ListRequests returns the certificate requests the principal may review
	//
	// "status" filters by request status; empty lists all statuses.
	// "page" and "count" paginate the result.
	ListRequests(ctx context.Context, principal models.Principal, status string, page, count int) ([]models.CertificateRequestListItem, error)
	// ApproveRequest approves a pending request and returns the issued certificate
	ApproveRequest(ctx context.Context, principal models.Principal, requestID int, note string) (*models.Certificate, error)
	// RejectRequest rejects a pending request
	RejectRequest(ctx context.Context, principal models.Principal, requestID int, note string) (*models.CertificateRequest, error)
}

// AdminCertificateHandler handles HTTP requests of instructors and admins reviewing certificate requests
type AdminCertificateHandler struct {
	BaseHandler
	service CertificateReviewService
}

// NewAdminCertificateHandler creates a new admin certificate handler
func NewAdminCertificateHandler(svc CertificateReviewService, logger *zap.Logger) *AdminCertificateHandler {
	return &AdminCertificateHandler{
		service:     svc,
		BaseHandler: NewBaseHandler(logger),
	}
}

// RegisterRoutes registers all admin certificate handler routes
func (h *AdminCertificateHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler, reviewerMiddleware func(http.Handler) http.Handler) {
	r.Route("/admin/certificate-requests", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(reviewerMiddleware)
		r.Get("/", h.ListRequests)
		r.Post("/{id}/approve", h.ApproveRequest)
		r.Post("/{id}/reject", h.RejectRequest)
	})
}

// ListRequests handles GET /admin/certificate-requests
// @Summary List certificate requests
// @Description List certificate requests; instructors only see requests for their own courses
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Request status (pending, approved, rejected)"
// @Param page query int false "Page number (default: 1)"
// @Param count query int false "Items per page (default: 20, max: 100)"
// @Success 200 {array} models.CertificateRequestListItem
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 503 {object} ErrorResponse "Service unavailable"
// @Router /admin/certificate-requests [get]
func (h *AdminCertificateHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.Principal(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	page := optionalInt(query.Get("page"), 1)
	count := optionalInt(query.Get("count"), 0)

	items, err := h.service.ListRequests(r.Context(), principal, query.Get("status"), page, count)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}
	if items == nil {
		items = []models.CertificateRequestListItem{}
	}

	h.RespondJSON(w, http.StatusOK, items)
}

// ApproveRequest handles POST /admin/certificate-requests/{id}/approve
// @Summary Approve a certificate request
// @Description Approve a pending request and issue the certificate
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param request body models.ReviewCertificateRequestInput false "Review note"
// @Success 200 {object} models.Certificate
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Request not found"
// @Failure 409 {object} ErrorResponse "Request is not pending"
// @Failure 503 {object} ErrorResponse "Service unavailable"
// @Router /admin/certificate-requests/{id}/approve [post]
func (h *AdminCertificateHandler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	principal, requestID, input, ok := h.reviewInput(w, r)
	if !ok {
		return
	}

	cert, err := h.service.ApproveRequest(r.Context(), principal, requestID, input.Note)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, cert)
}

// RejectRequest handles POST /admin/certificate-requests/{id}/reject
// @Summary Reject a certificate request
// @Description Reject a pending request; no certificate is issued
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param request body models.ReviewCertificateRequestInput false "Review note"
// @Success 200 {object} models.CertificateRequest
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Request not found"
// @Failure 409 {object} ErrorResponse "Request is not pending"
// @Failure 503 {object} ErrorResponse "Service unavailable"
// @Router /admin/certificate-requests/{id}/reject [post]
func (h *AdminCertificateHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	principal, requestID, input, ok := h.reviewInput(w, r)
	if !ok {
		return
	}

	req, err := h.service.RejectRequest(r.Context(), principal, requestID, input.Note)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, req)
}

// reviewInput reads the caller, the request ID and the optional note of approve/reject calls
func (h *AdminCertificateHandler) reviewInput(w http.ResponseWriter, r *http.Request) (models.Principal, int, models.ReviewCertificateRequestInput, bool) {
	var input models.ReviewCertificateRequestInput

	principal, ok := h.Principal(w, r)
	if !ok {
		return principal, 0, input, false
	}

	requestID, err := positiveInt(chi.URLParam(r, "id"), "id")
	if err != nil {
		h.RespondServiceError(w, r, err)
		return principal, 0, input, false
	}

	if err := h.DecodeJSON(r, &input, true); err != nil {
		h.RespondServiceError(w, r, err)
		return principal, 0, input, false
	}

	return principal, requestID, input, true
}
