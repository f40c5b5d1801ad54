package services

import (
	"context"
	"errors"

	"github.com/skillpath/certificate-service/internal/apperrors"
	"github.com/skillpath/certificate-service/internal/models"
	"github.com/skillpath/certificate-service/internal/repositories"
	"go.uber.org/zap"
)

// CourseRepository defines methods for course data access
type CourseRepository interface {
	// GetByID retrieves a course by ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	//
	// Returns repositories.ErrNotFound if the course does not exist.
	GetByID(ctx context.Context, id int) (*models.Course, error)
}

// LessonRepository defines methods for lesson data access
type LessonRepository interface {
	// GetIDsByCourseID retrieves the IDs of all lessons of a course
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	//
	// Returns an empty slice for a course without lessons.
	GetIDsByCourseID(ctx context.Context, courseID int) ([]int, error)
}

// LessonUserHistoryRepository defines methods for lesson completion data access
type LessonUserHistoryRepository interface {
	// GetCompletedLessonIDs retrieves the lesson IDs a user completed in a course
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns the completed lesson IDs and an error if any.
	GetCompletedLessonIDs(ctx context.Context, userID, courseID int) ([]int, error)
}

// QuizSubmissionRepository defines methods for quiz submission data access
type QuizSubmissionRepository interface {
	// GetByUserAndCourse retrieves every submission of a user on the quizzes of a course
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns the submissions and an error if any.
	GetByUserAndCourse(ctx context.Context, userID, courseID int) ([]models.QuizSubmission, error)
}

type progressService struct {
	courseRepo  CourseRepository
	lessonRepo  LessonRepository
	historyRepo LessonUserHistoryRepository
	quizRepo    QuizSubmissionRepository
	policy      Policy
	logger      *zap.Logger
}

// NewProgressService creates a new progress service
func NewProgressService(
	courseRepo CourseRepository,
	lessonRepo LessonRepository,
	historyRepo LessonUserHistoryRepository,
	quizRepo QuizSubmissionRepository,
	policy Policy,
	logger *zap.Logger,
) *progressService {
	return &progressService{
		courseRepo:  courseRepo,
		lessonRepo:  lessonRepo,
		historyRepo: historyRepo,
		quizRepo:    quizRepo,
		policy:      policy,
		logger:      logger,
	}
}

// ComputeProgress aggregates the completion rate and quiz average of a learner in a course
//
// Fails with NotFound if the course does not exist and with Unauthenticated if userID is not a valid learner.
func (s *progressService) ComputeProgress(ctx context.Context, userID, courseID int) (*models.CourseProgress, error) {
	if userID <= 0 {
		return nil, apperrors.Unauthenticated("authentication required")
	}

	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("course not found")
		}
		s.logger.Error("failed to get course", zap.Error(err), zap.Int("courseId", courseID))
		return nil, apperrors.Unavailable("failed to get course", err)
	}

	lessonIDs, err := s.lessonRepo.GetIDsByCourseID(ctx, courseID)
	if err != nil {
		s.logger.Error("failed to get course lessons", zap.Error(err), zap.Int("courseId", courseID))
		return nil, apperrors.Unavailable("failed to get course lessons", err)
	}

	completedIDs, err := s.historyRepo.GetCompletedLessonIDs(ctx, userID, courseID)
	if err != nil {
		s.logger.Error("failed to get completed lessons", zap.Error(err), zap.Int("userId", userID), zap.Int("courseId", courseID))
		return nil, apperrors.Unavailable("failed to get completed lessons", err)
	}

	submissions, err := s.quizRepo.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		s.logger.Error("failed to get quiz submissions", zap.Error(err), zap.Int("userId", userID), zap.Int("courseId", courseID))
		return nil, apperrors.Unavailable("failed to get quiz submissions", err)
	}

	raw := models.LearnerCourseProgress{
		UserID:             userID,
		CourseID:           courseID,
		CompletedLessonIDs: completedInCourse(lessonIDs, completedIDs),
		TotalLessons:       len(lessonIDs),
		QuizScores:         BestQuizScores(submissions),
	}

	completionRate, quizAverage := AggregateProgress(raw)
	return &models.CourseProgress{
		CourseID:         courseID,
		CompletionRate:   completionRate,
		QuizAverage:      quizAverage,
		TotalLessons:     raw.TotalLessons,
		CompletedLessons: len(raw.CompletedLessonIDs),
		AttemptedQuizzes: len(raw.QuizScores),
	}, nil
}

// GetCourseProgress returns the learner's progress together with the certificate eligibility it yields
func (s *progressService) GetCourseProgress(ctx context.Context, userID, courseID int) (*models.CourseProgressResponse, error) {
	progress, err := s.ComputeProgress(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	return &models.CourseProgressResponse{
		CourseProgress: *progress,
		Eligibility:    s.policy.Evaluate(progress.CompletionRate, progress.QuizAverage),
	}, nil
}

// AggregateProgress computes the completion rate and quiz average of raw progress
//
// A course without lessons has a completion rate of 0. Unattempted quizzes are not part of the
// average and a learner with no attempts has an average of 0.
func AggregateProgress(p models.LearnerCourseProgress) (completionRate, quizAverage float64) {
	if p.TotalLessons > 0 {
		completionRate = float64(len(p.CompletedLessonIDs)) / float64(p.TotalLessons)
		if completionRate > 1 {
			completionRate = 1
		}
	}

	if len(p.QuizScores) > 0 {
		var sum float64
		for _, score := range p.QuizScores {
			sum += score.ScoreRatio
		}
		quizAverage = sum / float64(len(p.QuizScores))
	}

	return completionRate, quizAverage
}

// BestQuizScores keeps the best score ratio per distinct quiz, ordered by first attempt
//
// Submissions with a non-positive maximum score are ignored and ratios are clamped to [0,1].
func BestQuizScores(submissions []models.QuizSubmission) []models.QuizScore {
	best := make(map[int]int)
	scores := []models.QuizScore{}
	for _, sub := range submissions {
		if sub.MaxScore <= 0 {
			continue
		}
		ratio := clampRatio(sub.Score / sub.MaxScore)
		if i, ok := best[sub.QuizID]; ok {
			if ratio > scores[i].ScoreRatio {
				scores[i].ScoreRatio = ratio
			}
			continue
		}
		best[sub.QuizID] = len(scores)
		scores = append(scores, models.QuizScore{QuizID: sub.QuizID, ScoreRatio: ratio})
	}
	return scores
}

// completedInCourse intersects the completed lesson IDs with the lessons that still belong to the course
func completedInCourse(lessonIDs, completedIDs []int) map[int]struct{} {
	inCourse := make(map[int]struct{}, len(lessonIDs))
	for _, id := range lessonIDs {
		inCourse[id] = struct{}{}
	}

	completed := make(map[int]struct{}, len(completedIDs))
	for _, id := range completedIDs {
		if _, ok := inCourse[id]; ok {
			completed[id] = struct{}{}
		}
	}
	return completed
}

func clampRatio(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
