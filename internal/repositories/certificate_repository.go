package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/skillpath/certificate-service/internal/models"
)

type certificateRepository struct {
	db *sql.DB
}

// NewCertificateRepository creates a new certificate repository
func NewCertificateRepository(db *sql.DB) *certificateRepository {
	return &certificateRepository{
		db: db,
	}
}

const certificateColumns = `c.id, c.user_id, c.course_id, c.verification_code, c.issue_date, c.expires_at, c.score_snapshot`

// scanCertificate scans certificateColumns followed by any extra destinations
func scanCertificate(scanner interface{ Scan(...any) error }, cert *models.Certificate, extra ...any) error {
	var expiresAt sql.NullTime
	var scoreSnapshot sql.NullFloat64
	dest := append([]any{
		&cert.ID,
		&cert.UserID,
		&cert.CourseID,
		&cert.VerificationCode,
		&cert.IssueDate,
		&expiresAt,
		&scoreSnapshot,
	}, extra...)
	if err := scanner.Scan(dest...); err != nil {
		return err
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		cert.ExpiresAt = &t
	}
	if scoreSnapshot.Valid {
		v := scoreSnapshot.Float64
		cert.ScoreSnapshot = &v
	}
	return nil
}

// GetByUserAndCourse retrieves the certificate of a user for a course
func (r *certificateRepository) GetByUserAndCourse(ctx context.Context, userID, courseID int) (*models.Certificate, error) {
	query := `
		SELECT ` + certificateColumns + `
		FROM certificates c
		WHERE c.user_id = ? AND c.course_id = ?
		LIMIT 1
	`

	var cert models.Certificate
	err := scanCertificate(r.db.QueryRowContext(ctx, query, userID, courseID), &cert)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get certificate: %w", err)
	}

	return &cert, nil
}

// GetDetailsByCode retrieves a certificate with its course and learner by exact verification code
func (r *certificateRepository) GetDetailsByCode(ctx context.Context, code string) (*models.CertificateDetails, error) {
	query := `
		SELECT ` + certificateColumns + `, co.title, u.name, u.email
		FROM certificates c
		INNER JOIN courses co ON co.id = c.course_id
		INNER JOIN users u ON u.id = c.user_id
		WHERE c.verification_code = ?
		LIMIT 1
	`

	var details models.CertificateDetails
	err := scanCertificate(
		r.db.QueryRowContext(ctx, query, code),
		&details.Certificate,
		&details.CourseTitle,
		&details.LearnerName,
		&details.LearnerEmail,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get certificate by code: %w", err)
	}

	return &details, nil
}

// GetByUserID retrieves all certificates of a user, newest first
func (r *certificateRepository) GetByUserID(ctx context.Context, userID int) ([]models.CertificateWithCourse, error) {
	query := `
		SELECT ` + certificateColumns + `, co.title
		FROM certificates c
		INNER JOIN courses co ON co.id = c.course_id
		WHERE c.user_id = ?
		ORDER BY c.issue_date DESC, c.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query certificates: %w", err)
	}
	defer rows.Close()

	certificates := []models.CertificateWithCourse{}
	for rows.Next() {
		var item models.CertificateWithCourse
		if err := scanCertificate(rows, &item.Certificate, &item.CourseTitle); err != nil {
			return nil, fmt.Errorf("failed to scan certificate: %w", err)
		}
		certificates = append(certificates, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return certificates, nil
}

// Create inserts a new certificate
//
// Returns ErrAlreadyExists if the user already holds a certificate for the course
// and ErrDuplicateCode if the verification code is taken.
func (r *certificateRepository) Create(ctx context.Context, cert *models.Certificate) error {
	return insertCertificate(ctx, r.db, cert)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertCertificate(ctx context.Context, db execer, cert *models.Certificate) error {
	query := `
		INSERT INTO certificates (user_id, course_id, verification_code, issue_date, expires_at, score_snapshot)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	var scoreSnapshot sql.NullFloat64
	if cert.ScoreSnapshot != nil {
		scoreSnapshot = sql.NullFloat64{Float64: *cert.ScoreSnapshot, Valid: true}
	}

	result, err := db.ExecContext(ctx, query,
		cert.UserID,
		cert.CourseID,
		cert.VerificationCode,
		cert.IssueDate,
		nullTime(cert.ExpiresAt),
		scoreSnapshot,
	)
	if err != nil {
		if isUniqueViolationOn(err, verificationCodeKey) {
			return ErrDuplicateCode
		}
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to create certificate: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	cert.ID = int(id)
	return nil
}

// nullTime converts an optional time into a driver value
func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
