package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/skillpath/certificate-service/internal/models"
)

type quizSubmissionRepository struct {
	db *sql.DB
}

// NewQuizSubmissionRepository creates a new quiz submission repository
func NewQuizSubmissionRepository(db *sql.DB) *quizSubmissionRepository {
	return &quizSubmissionRepository{
		db: db,
	}
}

// GetByUserAndCourse retrieves every submission of a user for the quizzes of a course
func (r *quizSubmissionRepository) GetByUserAndCourse(ctx context.Context, userID, courseID int) ([]models.QuizSubmission, error) {
	query := `
		SELECT s.id, s.user_id, s.quiz_id, s.score, s.max_score, s.submitted_at
		FROM quiz_submissions s
		INNER JOIN quizzes q ON q.id = s.quiz_id
		WHERE s.user_id = ? AND q.course_id = ?
		ORDER BY s.quiz_id, s.submitted_at
	`

	rows, err := r.db.QueryContext(ctx, query, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quiz submissions: %w", err)
	}
	defer rows.Close()

	submissions := []models.QuizSubmission{}
	for rows.Next() {
		var s models.QuizSubmission
		if err := rows.Scan(&s.ID, &s.UserID, &s.QuizID, &s.Score, &s.MaxScore, &s.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan quiz submission: %w", err)
		}
		submissions = append(submissions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return submissions, nil
}
