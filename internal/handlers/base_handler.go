package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/skillpath/certificate-service/internal/apperrors"
	authMiddleware "github.com/skillpath/certificate-service/internal/auth/middleware"
	"github.com/skillpath/certificate-service/internal/models"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger   *zap.Logger
	validate *validator.Validate
}

// NewBaseHandler creates a base handler with a body validator
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	return BaseHandler{
		Logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, kind apperrors.Kind, message string) {
	h.RespondJSON(w, status, ErrorResponse{Error: message, Kind: string(kind)})
}

// RespondServiceError maps a service error to its HTTP status and sends it
func (h *BaseHandler) RespondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperrors.KindOf(err)
	status := kind.HTTPStatus()
	if status >= http.StatusInternalServerError {
		h.Logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	h.RespondError(w, status, kind, apperrors.MessageOf(err))
}

// DecodeJSON reads and validates a JSON body into dst
//
// An empty body is accepted when allowEmpty is set; dst then keeps its zero value.
func (h *BaseHandler) DecodeJSON(r *http.Request, dst any, allowEmpty bool) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if !(allowEmpty && errors.Is(err, io.EOF)) {
			return apperrors.Invalid("invalid request body")
		}
	}

	if err := h.validate.Struct(dst); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			fe := validationErrs[0]
			return apperrors.Invalid(fmt.Sprintf("field %s failed %s validation", fe.Field(), fe.Tag()))
		}
		return apperrors.Invalid("invalid request body")
	}
	return nil
}

// Principal returns the authenticated caller or responds 401
func (h *BaseHandler) Principal(w http.ResponseWriter, r *http.Request) (models.Principal, bool) {
	principal, ok := authMiddleware.GetPrincipal(r.Context())
	if !ok {
		h.Logger.Error("principal not found in context")
		h.RespondError(w, http.StatusUnauthorized, apperrors.KindUnauthenticated, "authentication required")
		return models.Principal{}, false
	}
	return principal, true
}

// positiveInt parses a required positive integer parameter
func positiveInt(raw, name string) (int, error) {
	if raw == "" {
		return 0, apperrors.Invalid(name + " parameter is required")
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, apperrors.Invalid("invalid " + name + " parameter")
	}
	return v, nil
}

// optionalInt parses an optional integer query parameter, falling back to def
func optionalInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
