package tasks

import (
	"context"

	"github.com/adhdo-app/adhdo/internal/models"
)

// Repository describes persistence operations for tasks.
type Repository interface {
	// Create inserts a new task. Only Category.ID is read from the category.
	Create(ctx context.Context, task models.Task) error

	// Update overwrites every mutable column of an existing task.
	Update(ctx context.Context, task models.Task) error

	// GetByID returns a task or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (models.Task, error)

	// Fetch returns the tasks matching filter in creation order.
	Fetch(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)

	// DeleteByID removes a task; a missing id yields common.ErrorNotFound.
	DeleteByID(ctx context.Context, id string) error
}
