package models

// LearnerCourseProgress is the raw progress material for one learner in one course.
// It is derived on demand and never stored.
type LearnerCourseProgress struct {
	UserID             int
	CourseID           int
	CompletedLessonIDs map[int]struct{}
	TotalLessons       int
	QuizScores         []QuizScore
}

// CourseProgress is the aggregated progress of a learner in a course
type CourseProgress struct {
	CourseID         int     `json:"courseId"`
	CompletionRate   float64 `json:"completionRate"`
	QuizAverage      float64 `json:"quizAverage"`
	TotalLessons     int     `json:"totalLessons"`
	CompletedLessons int     `json:"completedLessons"`
	AttemptedQuizzes int     `json:"attemptedQuizzes"`
}

// EligibilityOutcome is the result of evaluating progress against the certificate policy
type EligibilityOutcome string

const (
	EligibilityIneligible          EligibilityOutcome = "ineligible"
	EligibilityRequestableApproval EligibilityOutcome = "requestable_approval"
	EligibilityAutoIssue           EligibilityOutcome = "auto_issue"
)

// CourseProgressResponse is returned by the progress endpoint
type CourseProgressResponse struct {
	CourseProgress
	Eligibility EligibilityOutcome `json:"eligibility"`
}
