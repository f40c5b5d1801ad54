// Package notifications moves certificate events to the background worker through an asynq queue
package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/skillpath/certificate-service/internal/models"
	"go.uber.org/zap"
)

const (
	// TypeCertificateIssued is the asynq task type sent after a certificate is issued
	TypeCertificateIssued = "certificate:issued"
	// Queue is the asynq queue notification tasks are enqueued on
	Queue = "notifications"

	maxRetry = 5
)

// CertificateIssuedPayload is the JSON payload of a TypeCertificateIssued task
type CertificateIssuedPayload struct {
	CertificateID    int        `json:"certificateId"`
	UserID           int        `json:"userId"`
	CourseID         int        `json:"courseId"`
	VerificationCode string     `json:"verificationCode"`
	IssueDate        time.Time  `json:"issueDate"`
	ExpiresAt        *time.Time `json:"expiresAt,omitempty"`
}

// Enqueuer is the part of *asynq.Client the notifier needs
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Notifier enqueues notification tasks
type Notifier struct {
	client Enqueuer
	logger *zap.Logger
}

// NewNotifier creates a new notifier
func NewNotifier(client Enqueuer, logger *zap.Logger) *Notifier {
	return &Notifier{
		client: client,
		logger: logger,
	}
}

// CertificateIssued enqueues the email telling the learner about a new certificate
//
// The task ID is derived from the certificate, so a certificate is announced at most once.
func (n *Notifier) CertificateIssued(ctx context.Context, cert *models.Certificate) error {
	payload, err := json.Marshal(CertificateIssuedPayload{
		CertificateID:    cert.ID,
		UserID:           cert.UserID,
		CourseID:         cert.CourseID,
		VerificationCode: cert.VerificationCode,
		IssueDate:        cert.IssueDate,
		ExpiresAt:        cert.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	task := asynq.NewTask(TypeCertificateIssued, payload)
	info, err := n.client.EnqueueContext(ctx, task,
		asynq.Queue(Queue),
		asynq.MaxRetry(maxRetry),
		asynq.TaskID(fmt.Sprintf("certificate-issued-%d", cert.ID)),
	)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("failed to enqueue %s task: %w", TypeCertificateIssued, err)
	}

	n.logger.Debug("certificate notification enqueued", zap.String("taskId", info.ID), zap.Int("certificateId", cert.ID))
	return nil
}
