package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/skillpath/certificate-service/internal/apperrors"
	"github.com/skillpath/certificate-service/internal/models"
	"github.com/skillpath/certificate-service/internal/repositories"
	"go.uber.org/zap"
)

// Outcomes reported to the OutcomeRecorder
const (
	OutcomeAutoIssued      = "auto_issued"
	OutcomePendingApproval = "pending_approval"
	OutcomeAlreadyIssued   = "already_issued"
	OutcomeAlreadyPending  = "already_pending"
	OutcomeIneligible      = "ineligible"
	OutcomeApproved        = "approved"
	OutcomeRejected        = "rejected"
)

const (
	verificationCodePrefix = "CERT-"
	maxCodeAttempts        = 3
	defaultRequestsCount   = 20
	maxRequestsCount       = 100
)

// CertificateRepository defines methods for certificate data access
type CertificateRepository interface {
	// GetByUserAndCourse retrieves the certificate of a user for a course
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the learner.
	// "courseID" is the ID of the course.
	//
	// Returns repositories.ErrNotFound if no certificate was issued.
	GetByUserAndCourse(ctx context.Context, userID, courseID int) (*models.Certificate, error)

	// GetByUserID retrieves all certificates of a user with their course titles
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the learner.
	//
	// Returns the certificates ordered by issue date, newest first.
	GetByUserID(ctx context.Context, userID int) ([]models.CertificateWithCourse, error)

	// Create inserts a certificate and sets its ID
	//
	// "ctx" is the context for the request.
	// "cert" is the certificate to insert.
	//
	// Returns repositories.ErrAlreadyExists if the user already holds a certificate for the course
	// and repositories.ErrDuplicateCode if the verification code is taken.
	Create(ctx context.Context, cert *models.Certificate) error
}

// CertificateRequestRepository defines methods for certificate request data access
type CertificateRequestRepository interface {
	// GetPendingByUserAndCourse retrieves the pending request of a user for a course
	//
	// Returns repositories.ErrNotFound if there is none.
	GetPendingByUserAndCourse(ctx context.Context, userID, courseID int) (*models.CertificateRequest, error)

	// GetByID retrieves a request by ID
	//
	// Returns repositories.ErrNotFound if the request does not exist.
	GetByID(ctx context.Context, id int) (*models.CertificateRequest, error)

	// Create inserts a pending request and sets its ID
	//
	// Returns repositories.ErrAlreadyExists if a pending request exists for the same user and course.
	Create(ctx context.Context, req *models.CertificateRequest) error

	// UpdateStatus moves a pending request to status
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the request.
	// "status" is the new status.
	// "reviewerID" is the ID of the reviewing instructor or admin.
	// "note" is the optional review note.
	// "reviewedAt" is the time of the review.
	//
	// Returns repositories.ErrNotPending if the request is not pending anymore.
	UpdateStatus(ctx context.Context, id int, status models.CertificateRequestStatus, reviewerID int, note string, reviewedAt time.Time) error

	// ApproveAndIssue approves a pending request and inserts the certificate in one transaction
	//
	// Returns repositories.ErrNotPending, repositories.ErrAlreadyExists or repositories.ErrDuplicateCode,
	// in which case nothing was written.
	ApproveAndIssue(ctx context.Context, id int, reviewerID int, note string, reviewedAt time.Time, cert *models.Certificate) error

	// CountPendingByUser counts the pending requests of a user across all courses
	CountPendingByUser(ctx context.Context, userID int) (int, error)

	// List retrieves requests for the review dashboard
	//
	// "filter" narrows by status and course author and carries the pagination.
	List(ctx context.Context, filter models.CertificateRequestFilter) ([]models.CertificateRequestListItem, error)
}

// ProgressCalculator computes learner progress in a course
type ProgressCalculator interface {
	ComputeProgress(ctx context.Context, userID, courseID int) (*models.CourseProgress, error)
}

// IssuanceNotifier is told about every newly issued certificate
type IssuanceNotifier interface {
	CertificateIssued(ctx context.Context, cert *models.Certificate) error
}

// OutcomeRecorder counts certificate workflow outcomes
type OutcomeRecorder interface {
	RecordCertificateOutcome(outcome string)
}

type certificateService struct {
	certRepo    CertificateRepository
	requestRepo CertificateRequestRepository
	courseRepo  CourseRepository
	progress    ProgressCalculator
	policy      Policy
	validity    time.Duration
	notifier    IssuanceNotifier
	recorder    OutcomeRecorder
	logger      *zap.Logger
	now         func() time.Time
	newCode     func() string
}

// NewCertificateService creates a new certificate service
//
// "validity" is how long an issued certificate stays valid; 0 means forever.
func NewCertificateService(
	certRepo CertificateRepository,
	requestRepo CertificateRequestRepository,
	courseRepo CourseRepository,
	progress ProgressCalculator,
	policy Policy,
	validity time.Duration,
	notifier IssuanceNotifier,
	recorder OutcomeRecorder,
	logger *zap.Logger,
) *certificateService {
	return &certificateService{
		certRepo:    certRepo,
		requestRepo: requestRepo,
		courseRepo:  courseRepo,
		progress:    progress,
		policy:      policy,
		validity:    validity,
		notifier:    notifier,
		recorder:    recorder,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
		newCode:     NewVerificationCode,
	}
}

// NewVerificationCode generates an opaque verification code from a random UUID
func NewVerificationCode() string {
	return verificationCodePrefix + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// RequestCertificate issues a certificate, files a request for approval or refuses, based on progress
//
// Repeated calls are idempotent: an issued certificate or a pending request is returned as is.
func (s *certificateService) RequestCertificate(ctx context.Context, userID, courseID int) (*models.CertificateRequestResult, error) {
	if userID <= 0 {
		return nil, apperrors.Unauthenticated("authentication required")
	}

	existing, err := s.findCertificate(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.record(OutcomeAlreadyIssued)
		return &models.CertificateRequestResult{AlreadyIssued: true, Certificate: existing}, nil
	}

	pending, err := s.findPendingRequest(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		s.record(OutcomeAlreadyPending)
		return &models.CertificateRequestResult{PendingApproval: true, Request: pending}, nil
	}

	progress, err := s.progress.ComputeProgress(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	switch s.policy.Evaluate(progress.CompletionRate, progress.QuizAverage) {
	case models.EligibilityAutoIssue:
		return s.autoIssue(ctx, userID, courseID, progress.QuizAverage)
	case models.EligibilityRequestableApproval:
		return s.fileRequest(ctx, userID, courseID)
	default:
		s.record(OutcomeIneligible)
		return nil, apperrors.Ineligible(fmt.Sprintf(
			"certificate requires %.0f%% course completion and a %.0f%% quiz average (current: %.0f%% and %.0f%%)",
			s.policy.CompletionThreshold*100, s.policy.MinQuizForRequest*100,
			progress.CompletionRate*100, progress.QuizAverage*100,
		))
	}
}

func (s *certificateService) autoIssue(ctx context.Context, userID, courseID int, quizAverage float64) (*models.CertificateRequestResult, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		cert := s.newCertificate(userID, courseID, quizAverage)
		err := s.certRepo.Create(ctx, cert)
		switch {
		case err == nil:
			s.record(OutcomeAutoIssued)
			s.notify(ctx, cert)
			return &models.CertificateRequestResult{AutoIssued: true, Certificate: cert}, nil
		case errors.Is(err, repositories.ErrDuplicateCode):
			s.logger.Warn("verification code collision, retrying", zap.Int("attempt", attempt+1))
			continue
		case errors.Is(err, repositories.ErrAlreadyExists):
			// lost the race against a concurrent request of the same learner
			existing, findErr := s.findCertificate(ctx, userID, courseID)
			if findErr != nil {
				return nil, findErr
			}
			if existing == nil {
				return nil, apperrors.Conflict("certificate changed concurrently, try again")
			}
			s.record(OutcomeAlreadyIssued)
			return &models.CertificateRequestResult{AlreadyIssued: true, Certificate: existing}, nil
		default:
			s.logger.Error("failed to create certificate", zap.Error(err), zap.Int("userId", userID), zap.Int("courseId", courseID))
			return nil, apperrors.Unavailable("failed to create certificate", err)
		}
	}
	return nil, apperrors.Unavailable("failed to generate a unique verification code", repositories.ErrDuplicateCode)
}

func (s *certificateService) fileRequest(ctx context.Context, userID, courseID int) (*models.CertificateRequestResult, error) {
	req := &models.CertificateRequest{
		UserID:    userID,
		CourseID:  courseID,
		Status:    models.CertificateRequestPending,
		CreatedAt: s.now(),
	}

	err := s.requestRepo.Create(ctx, req)
	if err == nil {
		s.record(OutcomePendingApproval)
		return &models.CertificateRequestResult{PendingApproval: true, Request: req}, nil
	}
	if !errors.Is(err, repositories.ErrAlreadyExists) {
		s.logger.Error("failed to create certificate request", zap.Error(err), zap.Int("userId", userID), zap.Int("courseId", courseID))
		return nil, apperrors.Unavailable("failed to create certificate request", err)
	}

	// a concurrent call inserted the pending request first
	pending, err := s.findPendingRequest(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if pending == nil {
		return nil, apperrors.Conflict("certificate request changed concurrently, try again")
	}
	s.record(OutcomeAlreadyPending)
	return &models.CertificateRequestResult{PendingApproval: true, Request: pending}, nil
}

// GetStatus reports whether the learner holds or awaits a certificate for the course
func (s *certificateService) GetStatus(ctx context.Context, userID, courseID int) (*models.CertificateStatus, error) {
	if userID <= 0 {
		return nil, apperrors.Unauthenticated("authentication required")
	}

	existing, err := s.findCertificate(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &models.CertificateStatus{Issued: true}, nil
	}

	pending, err := s.findPendingRequest(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	return &models.CertificateStatus{Pending: pending != nil}, nil
}

// ListMyCertificates returns the learner's certificates and the number of requests awaiting review
func (s *certificateService) ListMyCertificates(ctx context.Context, userID int) (*models.MyCertificatesResponse, error) {
	if userID <= 0 {
		return nil, apperrors.Unauthenticated("authentication required")
	}

	certificates, err := s.certRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list certificates", zap.Error(err), zap.Int("userId", userID))
		return nil, apperrors.Unavailable("failed to list certificates", err)
	}

	pending, err := s.requestRepo.CountPendingByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to count pending requests", zap.Error(err), zap.Int("userId", userID))
		return nil, apperrors.Unavailable("failed to count pending requests", err)
	}

	return &models.MyCertificatesResponse{Certificates: certificates, PendingRequests: pending}, nil
}

// ListRequests returns certificate requests visible to the reviewer
//
// Admins see every request, instructors only those for the courses they author.
// "status" may be empty to list requests in any status.
func (s *certificateService) ListRequests(ctx context.Context, principal models.Principal, status string, page, count int) ([]models.CertificateRequestListItem, error) {
	if principal.UserID <= 0 {
		return nil, apperrors.Unauthenticated("authentication required")
	}
	if !principal.Role.CanReview() {
		return nil, apperrors.Forbidden("only instructors and admins can review certificate requests")
	}

	filter := models.CertificateRequestFilter{Page: page, Count: count}
	if status != "" {
		st := models.CertificateRequestStatus(status)
		if !st.IsValid() {
			return nil, apperrors.Invalid("invalid status: must be one of pending, approved, rejected")
		}
		filter.Status = &st
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Count < 1 {
		filter.Count = defaultRequestsCount
	}
	if filter.Count > maxRequestsCount {
		filter.Count = maxRequestsCount
	}
	if principal.Role == models.RoleInstructor {
		authorID := principal.UserID
		filter.AuthorID = &authorID
	}

	items, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list certificate requests", zap.Error(err))
		return nil, apperrors.Unavailable("failed to list certificate requests", err)
	}
	return items, nil
}

// ApproveRequest approves a pending request and issues the certificate
//
// If the learner obtained a certificate for the course in the meantime, the request is still approved
// and the existing certificate is returned.
func (s *certificateService) ApproveRequest(ctx context.Context, principal models.Principal, requestID int, note string) (*models.Certificate, error) {
	req, err := s.authorizeReview(ctx, principal, requestID)
	if err != nil {
		return nil, err
	}

	existing, err := s.findCertificate(ctx, req.UserID, req.CourseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := s.markReviewed(ctx, principal, req, models.CertificateRequestApproved, note); err != nil {
			return nil, err
		}
		return existing, nil
	}

	var score *float64
	if progress, err := s.progress.ComputeProgress(ctx, req.UserID, req.CourseID); err == nil {
		score = &progress.QuizAverage
	} else {
		s.logger.Warn("failed to compute score snapshot", zap.Error(err), zap.Int("requestId", requestID))
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		cert := s.newCertificate(req.UserID, req.CourseID, 0)
		cert.ScoreSnapshot = score
		err := s.requestRepo.ApproveAndIssue(ctx, req.ID, principal.UserID, note, s.now(), cert)
		switch {
		case err == nil:
			s.record(OutcomeApproved)
			s.notify(ctx, cert)
			return cert, nil
		case errors.Is(err, repositories.ErrDuplicateCode):
			s.logger.Warn("verification code collision, retrying", zap.Int("attempt", attempt+1))
			continue
		case errors.Is(err, repositories.ErrNotPending):
			return nil, apperrors.Conflict("certificate request is not pending")
		case errors.Is(err, repositories.ErrAlreadyExists):
			if err := s.markReviewed(ctx, principal, req, models.CertificateRequestApproved, note); err != nil {
				return nil, err
			}
			existing, err := s.findCertificate(ctx, req.UserID, req.CourseID)
			if err != nil {
				return nil, err
			}
			if existing == nil {
				return nil, apperrors.Conflict("certificate changed concurrently, try again")
			}
			return existing, nil
		default:
			s.logger.Error("failed to approve certificate request", zap.Error(err), zap.Int("requestId", requestID))
			return nil, apperrors.Unavailable("failed to approve certificate request", err)
		}
	}
	return nil, apperrors.Unavailable("failed to generate a unique verification code", repositories.ErrDuplicateCode)
}

// RejectRequest rejects a pending request; no certificate is issued
func (s *certificateService) RejectRequest(ctx context.Context, principal models.Principal, requestID int, note string) (*models.CertificateRequest, error) {
	req, err := s.authorizeReview(ctx, principal, requestID)
	if err != nil {
		return nil, err
	}

	if err := s.markReviewed(ctx, principal, req, models.CertificateRequestRejected, note); err != nil {
		return nil, err
	}
	s.record(OutcomeRejected)
	return req, nil
}

// authorizeReview loads a pending request and checks the principal may review it
func (s *certificateService) authorizeReview(ctx context.Context, principal models.Principal, requestID int) (*models.CertificateRequest, error) {
	if principal.UserID <= 0 {
		return nil, apperrors.Unauthenticated("authentication required")
	}
	if !principal.Role.CanReview() {
		return nil, apperrors.Forbidden("only instructors and admins can review certificate requests")
	}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("certificate request not found")
		}
		s.logger.Error("failed to get certificate request", zap.Error(err), zap.Int("requestId", requestID))
		return nil, apperrors.Unavailable("failed to get certificate request", err)
	}

	switch principal.Role {
	case models.RoleAdmin:
	case models.RoleInstructor:
		course, err := s.courseRepo.GetByID(ctx, req.CourseID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, apperrors.NotFound("course not found")
			}
			s.logger.Error("failed to get course", zap.Error(err), zap.Int("courseId", req.CourseID))
			return nil, apperrors.Unavailable("failed to get course", err)
		}
		if course.AuthorID != principal.UserID {
			return nil, apperrors.Forbidden("only the course author can review this request")
		}
	default:
		return nil, apperrors.Forbidden("only instructors and admins can review certificate requests")
	}

	if req.Status != models.CertificateRequestPending {
		return nil, apperrors.Conflict("certificate request is not pending")
	}
	return req, nil
}

func (s *certificateService) markReviewed(ctx context.Context, principal models.Principal, req *models.CertificateRequest, status models.CertificateRequestStatus, note string) error {
	reviewedAt := s.now()
	err := s.requestRepo.UpdateStatus(ctx, req.ID, status, principal.UserID, note, reviewedAt)
	if err != nil {
		if errors.Is(err, repositories.ErrNotPending) {
			return apperrors.Conflict("certificate request is not pending")
		}
		s.logger.Error("failed to update certificate request", zap.Error(err), zap.Int("requestId", req.ID))
		return apperrors.Unavailable("failed to update certificate request", err)
	}

	reviewerID := principal.UserID
	req.Status = status
	req.ReviewerID = &reviewerID
	req.ReviewNote = note
	req.ReviewedAt = &reviewedAt
	return nil
}

func (s *certificateService) newCertificate(userID, courseID int, quizAverage float64) *models.Certificate {
	issuedAt := s.now()
	cert := &models.Certificate{
		UserID:           userID,
		CourseID:         courseID,
		VerificationCode: s.newCode(),
		IssueDate:        issuedAt,
		ScoreSnapshot:    &quizAverage,
	}
	if s.validity > 0 {
		expiresAt := issuedAt.Add(s.validity)
		cert.ExpiresAt = &expiresAt
	}
	return cert
}

// findCertificate returns nil without error when the learner has no certificate for the course
func (s *certificateService) findCertificate(ctx context.Context, userID, courseID int) (*models.Certificate, error) {
	cert, err := s.certRepo.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		s.logger.Error("failed to get certificate", zap.Error(err), zap.Int("userId", userID), zap.Int("courseId", courseID))
		return nil, apperrors.Unavailable("failed to get certificate", err)
	}
	return cert, nil
}

// findPendingRequest returns nil without error when no request is pending
func (s *certificateService) findPendingRequest(ctx context.Context, userID, courseID int) (*models.CertificateRequest, error) {
	req, err := s.requestRepo.GetPendingByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		s.logger.Error("failed to get pending certificate request", zap.Error(err), zap.Int("userId", userID), zap.Int("courseId", courseID))
		return nil, apperrors.Unavailable("failed to get pending certificate request", err)
	}
	return req, nil
}

func (s *certificateService) notify(ctx context.Context, cert *models.Certificate) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.CertificateIssued(ctx, cert); err != nil {
		s.logger.Warn("failed to enqueue certificate notification", zap.Error(err), zap.Int("certificateId", cert.ID))
	}
}

func (s *certificateService) record(outcome string) {
	if s.recorder != nil {
		s.recorder.RecordCertificateOutcome(outcome)
	}
}
