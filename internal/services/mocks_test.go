package services

import (
	"context"
	"sync"
	"time"

	"github.com/skillpath/certificate-service/internal/models"
	"github.com/skillpath/certificate-service/internal/repositories"
)

// mockCourseRepository is a mock implementation of CourseRepository
type mockCourseRepository struct {
	course *models.Course
	err    error
}

func (m *mockCourseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.course == nil {
		return nil, repositories.ErrNotFound
	}
	return m.course, nil
}

// mockLessonRepository is a mock implementation of LessonRepository
type mockLessonRepository struct {
	lessonIDs []int
	err       error
}

func (m *mockLessonRepository) GetIDsByCourseID(ctx context.Context, courseID int) ([]int, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.lessonIDs, nil
}

// mockLessonUserHistoryRepository is a mock implementation of LessonUserHistoryRepository
type mockLessonUserHistoryRepository struct {
	completedIDs []int
	err          error
}

func (m *mockLessonUserHistoryRepository) GetCompletedLessonIDs(ctx context.Context, userID, courseID int) ([]int, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.completedIDs, nil
}

// mockQuizSubmissionRepository is a mock implementation of QuizSubmissionRepository
type mockQuizSubmissionRepository struct {
	submissions []models.QuizSubmission
	err         error
}

func (m *mockQuizSubmissionRepository) GetByUserAndCourse(ctx context.Context, userID, courseID int) ([]models.QuizSubmission, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.submissions, nil
}

// mockProgressCalculator is a mock implementation of ProgressCalculator
type mockProgressCalculator struct {
	progress *models.CourseProgress
	err      error
}

func (m *mockProgressCalculator) ComputeProgress(ctx context.Context, userID, courseID int) (*models.CourseProgress, error) {
	if m.err != nil {
		return nil, m.err
	}
	p := *m.progress
	p.CourseID = courseID
	return &p, nil
}

// fakeCertificateStore is an in-memory implementation of CertificateRepository and
// CertificateRequestRepository enforcing the same unique constraints as the database.
type fakeCertificateStore struct {
	mu           sync.Mutex
	certificates []models.Certificate
	requests     []models.CertificateRequest
	courses      map[int]string

	// injected failures
	getCertErr       error
	createCertErrs   []error
	createReqErr     error
	approveErr       error
	listErr          error
	hidePendingReads int

	createCertCalls int
	listFilter      models.CertificateRequestFilter
}

func newFakeCertificateStore() *fakeCertificateStore {
	return &fakeCertificateStore{courses: map[int]string{}}
}

func (f *fakeCertificateStore) GetByUserAndCourse(ctx context.Context, userID, courseID int) (*models.Certificate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getCertErr != nil {
		return nil, f.getCertErr
	}
	for i := range f.certificates {
		if f.certificates[i].UserID == userID && f.certificates[i].CourseID == courseID {
			c := f.certificates[i]
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeCertificateStore) GetByUserID(ctx context.Context, userID int) ([]models.CertificateWithCourse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []models.CertificateWithCourse{}
	for _, c := range f.certificates {
		if c.UserID == userID {
			result = append(result, models.CertificateWithCourse{Certificate: c, CourseTitle: f.courses[c.CourseID]})
		}
	}
	return result, nil
}

func (f *fakeCertificateStore) Create(ctx context.Context, cert *models.Certificate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCertCalls++
	if len(f.createCertErrs) > 0 {
		err := f.createCertErrs[0]
		f.createCertErrs = f.createCertErrs[1:]
		if err != nil {
			return err
		}
	}
	return f.insertCertificateLocked(cert)
}

func (f *fakeCertificateStore) insertCertificateLocked(cert *models.Certificate) error {
	for _, c := range f.certificates {
		if c.VerificationCode == cert.VerificationCode {
			return repositories.ErrDuplicateCode
		}
		if c.UserID == cert.UserID && c.CourseID == cert.CourseID {
			return repositories.ErrAlreadyExists
		}
	}
	cert.ID = len(f.certificates) + 1
	f.certificates = append(f.certificates, *cert)
	return nil
}

func (f *fakeCertificateStore) GetPendingByUserAndCourse(ctx context.Context, userID, courseID int) (*models.CertificateRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hidePendingReads > 0 {
		f.hidePendingReads--
		return nil, repositories.ErrNotFound
	}
	for i := range f.requests {
		r := f.requests[i]
		if r.UserID == userID && r.CourseID == courseID && r.Status == models.CertificateRequestPending {
			return &r, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeCertificateStore) GetRequestByID(ctx context.Context, id int) (*models.CertificateRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.requests {
		if f.requests[i].ID == id {
			r := f.requests[i]
			return &r, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeCertificateStore) CreateRequest(ctx context.Context, req *models.CertificateRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createReqErr != nil {
		return f.createReqErr
	}
	for _, r := range f.requests {
		if r.UserID == req.UserID && r.CourseID == req.CourseID && r.Status == models.CertificateRequestPending {
			return repositories.ErrAlreadyExists
		}
	}
	req.ID = len(f.requests) + 1
	f.requests = append(f.requests, *req)
	return nil
}

func (f *fakeCertificateStore) updateStatusLocked(id int, status models.CertificateRequestStatus, reviewerID int, note string, reviewedAt time.Time) error {
	for i := range f.requests {
		if f.requests[i].ID == id {
			if f.requests[i].Status != models.CertificateRequestPending {
				return repositories.ErrNotPending
			}
			f.requests[i].Status = status
			f.requests[i].ReviewerID = &reviewerID
			f.requests[i].ReviewNote = note
			f.requests[i].ReviewedAt = &reviewedAt
			return nil
		}
	}
	return repositories.ErrNotPending
}

func (f *fakeCertificateStore) UpdateStatus(ctx context.Context, id int, status models.CertificateRequestStatus, reviewerID int, note string, reviewedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updateStatusLocked(id, status, reviewerID, note, reviewedAt)
}

func (f *fakeCertificateStore) ApproveAndIssue(ctx context.Context, id, reviewerID int, note string, reviewedAt time.Time, cert *models.Certificate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.approveErr != nil {
		return f.approveErr
	}
	for _, c := range f.certificates {
		if c.VerificationCode == cert.VerificationCode {
			return repositories.ErrDuplicateCode
		}
		if c.UserID == cert.UserID && c.CourseID == cert.CourseID {
			return repositories.ErrAlreadyExists
		}
	}
	if err := f.updateStatusLocked(id, models.CertificateRequestApproved, reviewerID, note, reviewedAt); err != nil {
		return err
	}
	return f.insertCertificateLocked(cert)
}

func (f *fakeCertificateStore) CountPendingByUser(ctx context.Context, userID int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, r := range f.requests {
		if r.UserID == userID && r.Status == models.CertificateRequestPending {
			count++
		}
	}
	return count, nil
}

func (f *fakeCertificateStore) List(ctx context.Context, filter models.CertificateRequestFilter) ([]models.CertificateRequestListItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	result := []models.CertificateRequestListItem{}
	for _, r := range f.requests {
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		result = append(result, models.CertificateRequestListItem{CertificateRequest: r, CourseTitle: f.courses[r.CourseID]})
	}
	return result, nil
}

func (f *fakeCertificateStore) pendingCount(userID, courseID int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, r := range f.requests {
		if r.UserID == userID && r.CourseID == courseID && r.Status == models.CertificateRequestPending {
			count++
		}
	}
	return count
}

func (f *fakeCertificateStore) certificateCount(userID, courseID int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, c := range f.certificates {
		if c.UserID == userID && c.CourseID == courseID {
			count++
		}
	}
	return count
}

// certificateRequestStore adapts fakeCertificateStore to CertificateRequestRepository
type certificateRequestStore struct {
	*fakeCertificateStore
}

func (s certificateRequestStore) GetByID(ctx context.Context, id int) (*models.CertificateRequest, error) {
	return s.GetRequestByID(ctx, id)
}

func (s certificateRequestStore) Create(ctx context.Context, req *models.CertificateRequest) error {
	return s.CreateRequest(ctx, req)
}

// mockNotifier is a mock implementation of IssuanceNotifier
type mockNotifier struct {
	mu     sync.Mutex
	issued []models.Certificate
	err    error
}

func (m *mockNotifier) CertificateIssued(ctx context.Context, cert *models.Certificate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.issued = append(m.issued, *cert)
	return nil
}

func (m *mockNotifier) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.issued)
}

// mockOutcomeRecorder is a mock implementation of OutcomeRecorder
type mockOutcomeRecorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (m *mockOutcomeRecorder) RecordCertificateOutcome(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

// mockVerificationRepository is a mock implementation of VerificationRepository
type mockVerificationRepository struct {
	details  map[string]*models.CertificateDetails
	err      error
	lastCode string
}

func (m *mockVerificationRepository) GetDetailsByCode(ctx context.Context, code string) (*models.CertificateDetails, error) {
	m.lastCode = code
	if m.err != nil {
		return nil, m.err
	}
	d, ok := m.details[code]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return d, nil
}
