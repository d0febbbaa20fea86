package models

import "slices"

// Enrollment links a user to a course and records lesson completion.
// Progress is computed by the server.
type Enrollment struct {
	ID                 string   `json:"id,omitempty"`
	UserID             string   `json:"userId"`
	CourseID           string   `json:"courseId"`
	CompletedLessonIDs []string `json:"completedLessonIds"`
	Progress           int      `json:"progress"`
}

// IsCompleted reports whether lessonID is marked as done.
func (e Enrollment) IsCompleted(lessonID string) bool {
	return slices.Contains(e.CompletedLessonIDs, lessonID)
}
