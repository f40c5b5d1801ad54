package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skillpath/certificate-service/internal/models"
	"go.uber.org/zap"
)

// VerificationService is the interface that wraps the public certificate lookup
type VerificationService interface {
	// VerifyByCode looks up a certificate by its verification code
	//
	// Unknown and expired codes are reported in the result, not as errors.
	VerifyByCode(ctx context.Context, code string) (*models.VerificationResult, error)
}

// VerificationHandler handles public certificate verification
type VerificationHandler struct {
	BaseHandler
	service VerificationService
}

// NewVerificationHandler creates a new verification handler
func NewVerificationHandler(svc VerificationService, logger *zap.Logger) *VerificationHandler {
	return &VerificationHandler{
		service:     svc,
		BaseHandler: NewBaseHandler(logger),
	}
}

// RegisterRoutes registers all verification handler routes
func (h *VerificationHandler) RegisterRoutes(r chi.Router) {
	r.Get("/certificates/verify/{code}", h.VerifyByCode)
}

// VerifyByCode handles GET /certificates/verify/{code}
// @Summary Verify a certificate
// @Description Check a verification code; no authentication required
// @Tags certificates
// @Produce json
// @Param code path string true "Verification code"
// @Success 200 {object} models.VerificationResult "Valid certificate"
// @Failure 404 {object} models.VerificationResult "Unknown code"
// @Failure 410 {object} models.VerificationResult "Expired certificate"
// @Failure 503 {object} ErrorResponse "Service unavailable"
// @Router /certificates/verify/{code} [get]
func (h *VerificationHandler) VerifyByCode(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.VerifyByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	status := http.StatusOK
	switch result.Status {
	case models.VerificationNotFound:
		status = http.StatusNotFound
	case models.VerificationExpired:
		status = http.StatusGone
	}
	h.RespondJSON(w, status, result)
}
