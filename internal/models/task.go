// Package models defines the ADHDo data entities: tasks, categories,
// bookmarks, adverts and the fixed set of task filters.
package models

import (
	"strings"
	"time"

	"github.com/adhdo-app/adhdo/internal/common"
)

// Task is a single to-do item.
type Task struct {
	// ID is a globally unique identifier (UUID string).
	ID string

	Title string

	// Subtitle holds optional notes; nil means "no subtitle".
	Subtitle *string

	// CreatedAt is the creation timestamp in UTC, used for ordering.
	CreatedAt time.Time

	// Done and Favorite are independent flags.
	Done     bool
	Favorite bool

	// Category is nil when the task is not assigned to a category.
	Category *Category
}

// Validate reports whether the task can be persisted.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return common.ErrEmptyTitle
	}
	return nil
}

// CategoryName returns the category name, or "" for uncategorized tasks.
func (t Task) CategoryName() string {
	if t.Category == nil {
		return ""
	}
	return t.Category.Name
}

// Category groups tasks. Deleting a category detaches its tasks.
type Category struct {
	ID   string
	Name string
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return common.ErrEmptyName
	}
	return nil
}
