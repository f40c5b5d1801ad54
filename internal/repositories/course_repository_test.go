package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/skillpath/certificate-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseRepository_GetByID(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
		anyError      bool
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "slug", "author_id", "title", "short_summary"}).
					AddRow(10, "go-basics", 50, "Go basics", "Learn Go")
				mock.ExpectQuery(`FROM courses WHERE id = \?`).WithArgs(10).WillReturnRows(rows)
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM courses`).WithArgs(10).WillReturnError(sql.ErrNoRows)
			},
			expectedError: ErrNotFound,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM courses`).WithArgs(10).WillReturnError(errors.New("database error"))
			},
			anyError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := setupTestDB(t)
			defer cleanup()
			tt.setupMock(mock)
			repo := NewCourseRepository(db)

			course, err := repo.GetByID(context.Background(), 10)

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, course)
			case tt.anyError:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, ErrNotFound)
			default:
				require.NoError(t, err)
				assert.Equal(t, &models.Course{ID: 10, Slug: "go-basics", AuthorID: 50, Title: "Go basics", ShortSummary: "Learn Go"}, course)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLessonRepository_GetIDsByCourseID(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expected      []int
		expectedError bool
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id"}).AddRow(3).AddRow(1).AddRow(2)
				mock.ExpectQuery(`FROM lessons WHERE course_id = \? ORDER BY lesson_order, id`).WithArgs(10).WillReturnRows(rows)
			},
			expected: []int{3, 1, 2},
		},
		{
			name: "course without lessons",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM lessons`).WithArgs(10).WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
			expected: []int{},
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM lessons`).WithArgs(10).WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := setupTestDB(t)
			defer cleanup()
			tt.setupMock(mock)
			repo := NewLessonRepository(db)

			ids, err := repo.GetIDsByCourseID(context.Background(), 10)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, ids)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, ids)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLessonUserHistoryRepository_GetCompletedLessonIDs(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		rows := sqlmock.NewRows([]string{"lesson_id"}).AddRow(1).AddRow(4)
		mock.ExpectQuery(`SELECT DISTINCT lesson_id FROM lesson_user_history WHERE user_id = \? AND course_id = \?`).
			WithArgs(3, 10).
			WillReturnRows(rows)
		repo := NewLessonUserHistoryRepository(db)

		ids, err := repo.GetCompletedLessonIDs(context.Background(), 3, 10)

		require.NoError(t, err)
		assert.Equal(t, []int{1, 4}, ids)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("scan error", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		rows := sqlmock.NewRows([]string{"lesson_id"}).AddRow("invalid")
		mock.ExpectQuery(`FROM lesson_user_history`).WithArgs(3, 10).WillReturnRows(rows)
		repo := NewLessonUserHistoryRepository(db)

		ids, err := repo.GetCompletedLessonIDs(context.Background(), 3, 10)

		assert.Error(t, err)
		assert.Nil(t, ids)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestQuizSubmissionRepository_GetByUserAndCourse(t *testing.T) {
	submitted := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		rows := sqlmock.NewRows([]string{"id", "user_id", "quiz_id", "score", "max_score", "submitted_at"}).
			AddRow(1, 3, 7, 4.0, 10.0, submitted).
			AddRow(2, 3, 7, 9.0, 10.0, submitted.Add(time.Hour))
		mock.ExpectQuery(`INNER JOIN quizzes q ON q.id = s.quiz_id WHERE s.user_id = \? AND q.course_id = \?`).
			WithArgs(3, 10).
			WillReturnRows(rows)
		repo := NewQuizSubmissionRepository(db)

		submissions, err := repo.GetByUserAndCourse(context.Background(), 3, 10)

		require.NoError(t, err)
		require.Len(t, submissions, 2)
		assert.Equal(t, models.QuizSubmission{ID: 2, UserID: 3, QuizID: 7, Score: 9, MaxScore: 10, SubmittedAt: submitted.Add(time.Hour)}, submissions[1])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		mock.ExpectQuery(`FROM quiz_submissions s`).WillReturnError(errors.New("database error"))
		repo := NewQuizSubmissionRepository(db)

		submissions, err := repo.GetByUserAndCourse(context.Background(), 3, 10)

		assert.Error(t, err)
		assert.Nil(t, submissions)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		rows := sqlmock.NewRows([]string{"id", "name", "email", "role"}).AddRow(3, "Ada", "ada@example.com", 1)
		mock.ExpectQuery(`SELECT id, name, email, role FROM users WHERE id = \?`).WithArgs(3).WillReturnRows(rows)
		repo := NewUserRepository(db)

		user, err := repo.GetByID(context.Background(), 3)

		require.NoError(t, err)
		assert.Equal(t, &models.User{ID: 3, Name: "Ada", Email: "ada@example.com", Role: models.RoleStudent}, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		mock.ExpectQuery(`FROM users`).WithArgs(3).WillReturnError(sql.ErrNoRows)
		repo := NewUserRepository(db)

		user, err := repo.GetByID(context.Background(), 3)

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
