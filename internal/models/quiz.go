package models

import "time"

// QuizSubmission is one graded attempt of a learner on a quiz
type QuizSubmission struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	QuizID      int       `json:"quizId"`
	Score       float64   `json:"score"`
	MaxScore    float64   `json:"maxScore"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// QuizScore is the best score ratio of a learner on a single quiz, in [0,1]
type QuizScore struct {
	QuizID     int     `json:"quizId"`
	ScoreRatio float64 `json:"scoreRatio"`
}
