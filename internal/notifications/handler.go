package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/skillpath/certificate-service/internal/models"
	"github.com/skillpath/certificate-service/internal/repositories"
	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

// UserRepository defines the interface for learner lookup
type UserRepository interface {
	// GetByID retrieves a user by ID
	//
	// "id" parameter is used to retrieve a user by ID.
	//
	// Returns repositories.ErrNotFound if the user does not exist.
	GetByID(ctx context.Context, id int) (*models.User, error)
}

// CourseRepository defines the interface for course lookup
type CourseRepository interface {
	// GetByID retrieves a course by ID
	//
	// "id" parameter is used to retrieve a course by ID.
	//
	// Returns repositories.ErrNotFound if the course does not exist.
	GetByID(ctx context.Context, id int) (*models.Course, error)
}

// Mailer sends an HTML email
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer sends email through an SMTP server using gopkg.in/mail.v2
type SMTPMailer struct {
	dialer *mail.Dialer
	from   string
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: mail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send sends an HTML email
func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

var certificateIssuedTemplate = template.Must(template.New("certificate_issued").Parse(`<p>Hello {{.LearnerName}},</p>
<p>Congratulations! You have earned a certificate for <strong>{{.CourseTitle}}</strong>.</p>
<p>Verification code: <code>{{.VerificationCode}}</code></p>
<p>Anyone can check it at <a href="{{.VerifyURL}}">{{.VerifyURL}}</a>.</p>
{{if .ExpiresAt}}<p>The certificate is valid until {{.ExpiresAt}}.</p>{{end}}`))

type certificateIssuedView struct {
	LearnerName      string
	CourseTitle      string
	VerificationCode string
	VerifyURL        string
	ExpiresAt        string
}

// Handler processes notification tasks in the worker
type Handler struct {
	users         UserRepository
	courses       CourseRepository
	mailer        Mailer
	verifyBaseURL string
	logger        *zap.Logger
}

// NewHandler creates a new notification task handler
func NewHandler(users UserRepository, courses CourseRepository, mailer Mailer, verifyBaseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		users:         users,
		courses:       courses,
		mailer:        mailer,
		verifyBaseURL: strings.TrimRight(verifyBaseURL, "/"),
		logger:        logger,
	}
}

// Register mounts the task handlers on mux
func (h *Handler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeCertificateIssued, h.HandleCertificateIssued)
}

// HandleCertificateIssued emails the learner about the new certificate
//
// Malformed payloads and deleted learners or courses are not retried.
func (h *Handler) HandleCertificateIssued(ctx context.Context, t *asynq.Task) error {
	var payload CertificateIssuedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	user, err := h.users.GetByID(ctx, payload.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			h.logger.Warn("learner of issued certificate not found", zap.Int("userId", payload.UserID))
			return fmt.Errorf("user %d not found: %w", payload.UserID, asynq.SkipRetry)
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	course, err := h.courses.GetByID(ctx, payload.CourseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			h.logger.Warn("course of issued certificate not found", zap.Int("courseId", payload.CourseID))
			return fmt.Errorf("course %d not found: %w", payload.CourseID, asynq.SkipRetry)
		}
		return fmt.Errorf("failed to get course: %w", err)
	}

	view := certificateIssuedView{
		LearnerName:      user.Name,
		CourseTitle:      course.Title,
		VerificationCode: payload.VerificationCode,
		VerifyURL:        h.verifyBaseURL + "/" + url.PathEscape(payload.VerificationCode),
	}
	if payload.ExpiresAt != nil {
		view.ExpiresAt = payload.ExpiresAt.Format("2006-01-02")
	}

	var body bytes.Buffer
	if err := certificateIssuedTemplate.Execute(&body, view); err != nil {
		return fmt.Errorf("failed to render email: %w", err)
	}

	if err := h.mailer.Send(user.Email, "Your certificate for "+course.Title, body.String()); err != nil {
		return err
	}

	h.logger.Info("certificate email sent", zap.Int("certificateId", payload.CertificateID), zap.Int("userId", user.ID))
	return nil
}
