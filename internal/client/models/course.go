package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrNoModules = errors.New("a course needs at least one module")

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

// Course is owned by the user whose canonical id is OwnerID. Modules and
// their lessons are ordered.
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

// Validate checks an authored course before it is sent.
func (c Course) Validate() error {
	var problems []string
	for field, v := range map[string]string{
		"courseName":  c.Name,
		"courseLevel": c.Level,
		"institute":   c.Institute,
		"courseType":  c.Type,
	} {
		if strings.TrimSpace(v) == "" {
			problems = append(problems, field+" is required")
		}
	}
	if c.Duration < 0 {
		problems = append(problems, "duration must not be negative")
	}
	if len(c.Modules) == 0 {
		problems = append(problems, ErrNoModules.Error())
	}
	for i, m := range c.Modules {
		if strings.TrimSpace(m.Title) == "" {
			problems = append(problems, fmt.Sprintf("module %d has no title", i+1))
		}
		for j, l := range m.Lessons {
			if strings.TrimSpace(l.Title) == "" {
				problems = append(problems, fmt.Sprintf("lesson %d.%d has no title", i+1, j+1))
			}
		}
	}
	if len(problems) > 0 {
		slices.Sort(problems)
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// LessonCount is the number of lessons across all modules.
func (c Course) LessonCount() int {
	n := 0
	for _, m := range c.Modules {
		n += len(m.Lessons)
	}
	return n
}

// SearchText is the text a course is indexed under for semantic search.
func (c Course) SearchText() string {
	return strings.Join(strings.Fields(strings.Join([]string{c.Name, c.Institute, c.Level, c.Type}, " ")), " ")
}
