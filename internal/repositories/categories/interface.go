package categories

import (
	"context"

	"github.com/adhdo-app/adhdo/internal/models"
)

type Repository interface {
	Create(ctx context.Context, c models.Category) error
	Rename(ctx context.Context, id, name string) error
	// List returns all categories ordered by name.
	List(ctx context.Context) ([]models.Category, error)
	GetByName(ctx context.Context, name string) (models.Category, error)
	// DeleteByID nullifies task references and removes the category.
	DeleteByID(ctx context.Context, id string) error
}
