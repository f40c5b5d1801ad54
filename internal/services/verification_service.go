package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/skillpath/certificate-service/internal/apperrors"
	"github.com/skillpath/certificate-service/internal/models"
	"github.com/skillpath/certificate-service/internal/repositories"
	"go.uber.org/zap"
)

// VerificationRepository defines methods for public certificate lookup
type VerificationRepository interface {
	// GetDetailsByCode retrieves a certificate with its course and learner by verification code
	//
	// "ctx" is the context for the request.
	// "code" is the exact verification code.
	//
	// Returns repositories.ErrNotFound if no certificate carries the code.
	GetDetailsByCode(ctx context.Context, code string) (*models.CertificateDetails, error)
}

type verificationService struct {
	repo   VerificationRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewVerificationService creates a new verification service
func NewVerificationService(repo VerificationRepository, logger *zap.Logger) *verificationService {
	return &verificationService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// VerifyByCode looks a certificate up by its verification code
//
// Unknown and expired codes are not errors: they yield Valid=false with the matching status.
func (s *verificationService) VerifyByCode(ctx context.Context, code string) (*models.VerificationResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return &models.VerificationResult{Valid: false, Status: models.VerificationNotFound}, nil
	}

	details, err := s.repo.GetDetailsByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &models.VerificationResult{Valid: false, Status: models.VerificationNotFound}, nil
		}
		s.logger.Error("failed to verify certificate", zap.Error(err))
		return nil, apperrors.Unavailable("failed to verify certificate", err)
	}

	view := &models.CertificateView{
		VerificationCode: details.VerificationCode,
		CourseTitle:      details.CourseTitle,
		LearnerName:      details.LearnerName,
		LearnerEmail:     details.LearnerEmail,
		IssueDate:        details.IssueDate,
		ExpiresAt:        details.ExpiresAt,
		ScoreSnapshot:    details.ScoreSnapshot,
	}

	if details.IsExpired(s.now()) {
		return &models.VerificationResult{Valid: false, Status: models.VerificationExpired, Certificate: view}, nil
	}
	return &models.VerificationResult{Valid: true, Status: models.VerificationValid, Certificate: view}, nil
}
