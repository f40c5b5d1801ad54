package models

// Course represents a course in the learning system
type Course struct {
	ID           int    `json:"id"`
	Slug         string `json:"slug"`
	AuthorID     int    `json:"authorId"`
	Title        string `json:"title"`
	ShortSummary string `json:"shortSummary"`
}

// Lesson represents a lesson in a course
type Lesson struct {
	ID       int    `json:"id"`
	Slug     string `json:"slug"`
	CourseID int    `json:"courseId,omitempty"`
	Title    string `json:"title"`
	Order    int    `json:"order"`
}

// LessonUserHistory represents a user's completion record for a lesson
type LessonUserHistory struct {
	ID       int `json:"id"`
	UserID   int `json:"userId"`
	CourseID int `json:"courseId"`
	LessonID int `json:"lessonId"`
}
