package models

type Lesson struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
}

type Module struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Lessons     []Lesson `json:"lessons"`
}

type Course struct {
	ID           string   `json:"id,omitempty"`
	Name         string   `json:"courseName"`
	Level        string   `json:"courseLevel"`
	Institute    string   `json:"institute"`
	Type         string   `json:"courseType"`
	Duration     int      `json:"duration"`
	StartDate    string   `json:"startDate,omitempty"`
	ThumbnailURL string   `json:"thumbnailUrl,omitempty"`
	Progress     int      `json:"progress"`
	OwnerID      string   `json:"userId"`
	Modules      []Module `json:"modules"`
}

// LessonIDs returns every lesson id in module order.
func (c Course) LessonIDs() []string {
	var ids []string
	for _, m := range c.Modules {
		for _, l := range m.Lessons {
			ids = append(ids, l.ID)
		}
	}
	return ids
}

type Enrollment struct {
	ID                 string   `json:"id,omitempty"`
	UserID             string   `json:"userId"`
	CourseID           string   `json:"courseId"`
	CompletedLessonIDs []string `json:"completedLessonIds"`
	Progress           int      `json:"progress"`
}

// Progress returns the completed share as a whole percentage, 0 for a
// course without lessons.
func Progress(completed, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed >= total {
		return 100
	}
	return completed * 100 / total
}
