package services

import (
	"context"
	"errors"
	"testing"

	"github.com/skillpath/certificate-service/internal/apperrors"
	"github.com/skillpath/certificate-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestProgressService(course *models.Course, lessonIDs, completedIDs []int, submissions []models.QuizSubmission) *progressService {
	return NewProgressService(
		&mockCourseRepository{course: course},
		&mockLessonRepository{lessonIDs: lessonIDs},
		&mockLessonUserHistoryRepository{completedIDs: completedIDs},
		&mockQuizSubmissionRepository{submissions: submissions},
		DefaultPolicy(),
		zap.NewNop(),
	)
}

func TestNewProgressService(t *testing.T) {
	logger := zap.NewNop()
	courseRepo := &mockCourseRepository{}

	svc := NewProgressService(courseRepo, &mockLessonRepository{}, &mockLessonUserHistoryRepository{}, &mockQuizSubmissionRepository{}, DefaultPolicy(), logger)

	assert.NotNil(t, svc)
	assert.Equal(t, courseRepo, svc.courseRepo)
	assert.Equal(t, DefaultPolicy(), svc.policy)
	assert.Equal(t, logger, svc.logger)
}

func TestProgressService_ComputeProgress(t *testing.T) {
	course := &models.Course{ID: 7, Title: "Go basics", AuthorID: 3}
	tenLessons := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	tests := []struct {
		name               string
		userID             int
		course             *models.Course
		lessonIDs          []int
		completedIDs       []int
		submissions        []models.QuizSubmission
		expectedKind       apperrors.Kind
		expectedCompletion float64
		expectedQuiz       float64
		expectedCompleted  int
		expectedAttempted  int
	}{
		{
			name:               "seven of ten lessons",
			userID:             1,
			course:             course,
			lessonIDs:          tenLessons,
			completedIDs:       []int{1, 2, 3, 4, 5, 6, 7},
			expectedCompletion: 0.7,
			expectedCompleted:  7,
		},
		{
			name:               "course without lessons",
			userID:             1,
			course:             course,
			lessonIDs:          []int{},
			completedIDs:       []int{},
			expectedCompletion: 0,
		},
		{
			name:               "completed lessons outside the course are ignored",
			userID:             1,
			course:             course,
			lessonIDs:          []int{1, 2},
			completedIDs:       []int{1, 99},
			expectedCompletion: 0.5,
			expectedCompleted:  1,
		},
		{
			name:         "best attempt per quiz is averaged",
			userID:       1,
			course:       course,
			lessonIDs:    []int{1},
			completedIDs: []int{1},
			submissions: []models.QuizSubmission{
				{QuizID: 1, Score: 4, MaxScore: 10},
				{QuizID: 1, Score: 8, MaxScore: 10},
				{QuizID: 2, Score: 10, MaxScore: 10},
			},
			expectedCompletion: 1,
			expectedQuiz:       0.9,
			expectedCompleted:  1,
			expectedAttempted:  2,
		},
		{
			name:               "no attempts gives zero average",
			userID:             1,
			course:             course,
			lessonIDs:          []int{1},
			completedIDs:       []int{1},
			expectedCompletion: 1,
			expectedQuiz:       0,
			expectedCompleted:  1,
		},
		{
			name:         "missing course",
			userID:       1,
			course:       nil,
			expectedKind: apperrors.KindNotFound,
		},
		{
			name:         "anonymous user",
			userID:       0,
			course:       course,
			expectedKind: apperrors.KindUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestProgressService(tt.course, tt.lessonIDs, tt.completedIDs, tt.submissions)

			progress, err := svc.ComputeProgress(context.Background(), tt.userID, 7)

			if tt.expectedKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.expectedKind, apperrors.KindOf(err))
				assert.Nil(t, progress)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 7, progress.CourseID)
			assert.InDelta(t, tt.expectedCompletion, progress.CompletionRate, 1e-9)
			assert.InDelta(t, tt.expectedQuiz, progress.QuizAverage, 1e-9)
			assert.Equal(t, len(tt.lessonIDs), progress.TotalLessons)
			assert.Equal(t, tt.expectedCompleted, progress.CompletedLessons)
			assert.Equal(t, tt.expectedAttempted, progress.AttemptedQuizzes)
		})
	}
}

func TestProgressService_ComputeProgress_RepositoryFailure(t *testing.T) {
	dbErr := errors.New("connection refused")
	course := &models.Course{ID: 7}

	tests := []struct {
		name string
		svc  *progressService
	}{
		{
			name: "course lookup",
			svc: NewProgressService(&mockCourseRepository{err: dbErr}, &mockLessonRepository{},
				&mockLessonUserHistoryRepository{}, &mockQuizSubmissionRepository{}, DefaultPolicy(), zap.NewNop()),
		},
		{
			name: "lessons",
			svc: NewProgressService(&mockCourseRepository{course: course}, &mockLessonRepository{err: dbErr},
				&mockLessonUserHistoryRepository{}, &mockQuizSubmissionRepository{}, DefaultPolicy(), zap.NewNop()),
		},
		{
			name: "history",
			svc: NewProgressService(&mockCourseRepository{course: course}, &mockLessonRepository{},
				&mockLessonUserHistoryRepository{err: dbErr}, &mockQuizSubmissionRepository{}, DefaultPolicy(), zap.NewNop()),
		},
		{
			name: "quiz submissions",
			svc: NewProgressService(&mockCourseRepository{course: course}, &mockLessonRepository{},
				&mockLessonUserHistoryRepository{}, &mockQuizSubmissionRepository{err: dbErr}, DefaultPolicy(), zap.NewNop()),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.ComputeProgress(context.Background(), 1, 7)

			require.Error(t, err)
			assert.Equal(t, apperrors.KindUnavailable, apperrors.KindOf(err))
			assert.ErrorIs(t, err, dbErr)
		})
	}
}

func TestProgressService_GetCourseProgress(t *testing.T) {
	svc := newTestProgressService(&models.Course{ID: 7}, []int{1, 2}, []int{1, 2},
		[]models.QuizSubmission{{QuizID: 1, Score: 6, MaxScore: 10}})

	resp, err := svc.GetCourseProgress(context.Background(), 1, 7)

	require.NoError(t, err)
	assert.InDelta(t, 1.0, resp.CompletionRate, 1e-9)
	assert.InDelta(t, 0.6, resp.QuizAverage, 1e-9)
	assert.Equal(t, models.EligibilityRequestableApproval, resp.Eligibility)
}

func TestBestQuizScores(t *testing.T) {
	scores := BestQuizScores([]models.QuizSubmission{
		{QuizID: 3, Score: 12, MaxScore: 10},
		{QuizID: 1, Score: -2, MaxScore: 10},
		{QuizID: 2, Score: 5, MaxScore: 0},
		{QuizID: 1, Score: 3, MaxScore: 10},
	})

	require.Len(t, scores, 2)
	assert.Equal(t, models.QuizScore{QuizID: 3, ScoreRatio: 1}, scores[0])
	assert.Equal(t, 1, scores[1].QuizID)
	assert.InDelta(t, 0.3, scores[1].ScoreRatio, 1e-9)
}

func TestAggregateProgress(t *testing.T) {
	completion, quiz := AggregateProgress(models.LearnerCourseProgress{
		CompletedLessonIDs: map[int]struct{}{1: {}, 2: {}, 3: {}},
		TotalLessons:       4,
		QuizScores:         []models.QuizScore{{QuizID: 1, ScoreRatio: 0.5}, {QuizID: 2, ScoreRatio: 1}},
	})
	assert.InDelta(t, 0.75, completion, 1e-9)
	assert.InDelta(t, 0.75, quiz, 1e-9)

	completion, quiz = AggregateProgress(models.LearnerCourseProgress{})
	assert.Zero(t, completion)
	assert.Zero(t, quiz)
}
