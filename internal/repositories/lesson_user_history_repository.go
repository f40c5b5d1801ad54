package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

type lessonUserHistoryRepository struct {
	db *sql.DB
}

// NewLessonUserHistoryRepository creates a new lesson user history repository
func NewLessonUserHistoryRepository(db *sql.DB) *lessonUserHistoryRepository {
	return &lessonUserHistoryRepository{
		db: db,
	}
}

// GetCompletedLessonIDs retrieves the distinct lesson IDs a user marked complete in a course
func (r *lessonUserHistoryRepository) GetCompletedLessonIDs(ctx context.Context, userID, courseID int) ([]int, error) {
	query := `
		SELECT DISTINCT lesson_id
		FROM lesson_user_history
		WHERE user_id = ? AND course_id = ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed lessons: %w", err)
	}
	defer rows.Close()

	ids := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan lesson id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return ids, nil
}
