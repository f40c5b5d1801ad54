package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/skillpath/certificate-service/internal/models"
)

type certificateRequestRepository struct {
	db *sql.DB
}

// NewCertificateRequestRepository creates a new certificate request repository
func NewCertificateRequestRepository(db *sql.DB) *certificateRequestRepository {
	return &certificateRequestRepository{
		db: db,
	}
}

const certificateRequestColumns = `r.id, r.user_id, r.course_id, r.status, r.reviewer_id, r.review_note, r.created_at, r.reviewed_at`

// scanCertificateRequest scans certificateRequestColumns followed by any extra destinations
func scanCertificateRequest(scanner interface{ Scan(...any) error }, req *models.CertificateRequest, extra ...any) error {
	var reviewerID sql.NullInt64
	var reviewNote sql.NullString
	var reviewedAt sql.NullTime
	dest := append([]any{
		&req.ID,
		&req.UserID,
		&req.CourseID,
		&req.Status,
		&reviewerID,
		&reviewNote,
		&req.CreatedAt,
		&reviewedAt,
	}, extra...)
	if err := scanner.Scan(dest...); err != nil {
		return err
	}
	if reviewerID.Valid {
		id := int(reviewerID.Int64)
		req.ReviewerID = &id
	}
	req.ReviewNote = reviewNote.String
	if reviewedAt.Valid {
		t := reviewedAt.Time
		req.ReviewedAt = &t
	}
	return nil
}

// GetPendingByUserAndCourse retrieves the pending request of a user for a course
func (r *certificateRequestRepository) GetPendingByUserAndCourse(ctx context.Context, userID, courseID int) (*models.CertificateRequest, error) {
	query := `
		SELECT ` + certificateRequestColumns + `
		FROM certificate_requests r
		WHERE r.user_id = ? AND r.course_id = ? AND r.status = 'pending'
		LIMIT 1
	`

	var req models.CertificateRequest
	err := scanCertificateRequest(r.db.QueryRowContext(ctx, query, userID, courseID), &req)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pending certificate request: %w", err)
	}

	return &req, nil
}

// GetByID retrieves a certificate request by its ID
func (r *certificateRequestRepository) GetByID(ctx context.Context, id int) (*models.CertificateRequest, error) {
	query := `
		SELECT ` + certificateRequestColumns + `
		FROM certificate_requests r
		WHERE r.id = ?
		LIMIT 1
	`

	var req models.CertificateRequest
	err := scanCertificateRequest(r.db.QueryRowContext(ctx, query, id), &req)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get certificate request: %w", err)
	}

	return &req, nil
}

// Create inserts a new pending certificate request
//
// Returns ErrAlreadyExists if the user already has a pending request for the course.
func (r *certificateRequestRepository) Create(ctx context.Context, req *models.CertificateRequest) error {
	query := `
		INSERT INTO certificate_requests (user_id, course_id, status, created_at)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, req.UserID, req.CourseID, req.Status, req.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to create certificate request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	req.ID = int(id)
	return nil
}

// UpdateStatus moves a pending request to a reviewed status
//
// Returns ErrNotPending if the request is not pending anymore.
func (r *certificateRequestRepository) UpdateStatus(ctx context.Context, id int, status models.CertificateRequestStatus, reviewerID int, note string, reviewedAt time.Time) error {
	return updateRequestStatus(ctx, r.db, id, status, reviewerID, note, reviewedAt)
}

func updateRequestStatus(ctx context.Context, db execer, id int, status models.CertificateRequestStatus, reviewerID int, note string, reviewedAt time.Time) error {
	query := `
		UPDATE certificate_requests
		SET status = ?, reviewer_id = ?, review_note = ?, reviewed_at = ?
		WHERE id = ? AND status = 'pending'
	`

	result, err := db.ExecContext(ctx, query, status, reviewerID, note, reviewedAt, id)
	if err != nil {
		return fmt.Errorf("failed to update certificate request: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotPending
	}

	return nil
}

// ApproveAndIssue approves a pending request and creates its certificate in one transaction
//
// Returns ErrNotPending if the request was reviewed meanwhile, ErrAlreadyExists if the learner
// already holds a certificate for the course and ErrDuplicateCode on a verification code collision.
// Nothing is written in any of those cases.
func (r *certificateRequestRepository) ApproveAndIssue(ctx context.Context, id int, reviewerID int, note string, reviewedAt time.Time, cert *models.Certificate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := updateRequestStatus(ctx, tx, id, models.CertificateRequestApproved, reviewerID, note, reviewedAt); err != nil {
		return err
	}

	if err := insertCertificate(ctx, tx, cert); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// CountPendingByUser counts the pending requests of a user
func (r *certificateRequestRepository) CountPendingByUser(ctx context.Context, userID int) (int, error) {
	query := `SELECT COUNT(*) FROM certificate_requests WHERE user_id = ? AND status = 'pending'`

	var count int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending certificate requests: %w", err)
	}

	return count, nil
}

// List retrieves certificate requests with filtering and pagination, oldest first
func (r *certificateRequestRepository) List(ctx context.Context, filter models.CertificateRequestFilter) ([]models.CertificateRequestListItem, error) {
	var whereClauses []string
	args := []any{}

	if filter.Status != nil {
		whereClauses = append(whereClauses, "r.status = ?")
		args = append(args, *filter.Status)
	}

	if filter.AuthorID != nil {
		whereClauses = append(whereClauses, "co.author_id = ?")
		args = append(args, *filter.AuthorID)
	}

	whereClause := ""
	if len(whereClauses) > 0 {
		whereClause = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	// Calculate offset
	offset := (filter.Page - 1) * filter.Count

	query := fmt.Sprintf(`
		SELECT %s, co.title, u.name, u.email
		FROM certificate_requests r
		INNER JOIN courses co ON co.id = r.course_id
		INNER JOIN users u ON u.id = r.user_id
		%s
		ORDER BY r.created_at, r.id
		LIMIT ? OFFSET ?
	`, certificateRequestColumns, whereClause)

	args = append(args, filter.Count, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query certificate requests: %w", err)
	}
	defer rows.Close()

	items := []models.CertificateRequestListItem{}
	for rows.Next() {
		var item models.CertificateRequestListItem
		if err := scanCertificateRequest(rows, &item.CertificateRequest, &item.CourseTitle, &item.LearnerName, &item.LearnerEmail); err != nil {
			return nil, fmt.Errorf("failed to scan certificate request: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, nil
}
