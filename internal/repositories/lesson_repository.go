package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

type lessonRepository struct {
	db *sql.DB
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *sql.DB) *lessonRepository {
	return &lessonRepository{
		db: db,
	}
}

// GetIDsByCourseID retrieves the IDs of all lessons of a course ordered by lesson order
func (r *lessonRepository) GetIDsByCourseID(ctx context.Context, courseID int) ([]int, error) {
	query := `
		SELECT id
		FROM lessons
		WHERE course_id = ?
		ORDER BY lesson_order, id
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
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
