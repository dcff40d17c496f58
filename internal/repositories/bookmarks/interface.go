// Package bookmarks persists the user's saved links.
package bookmarks

import (
	"context"

	"github.com/adhdo-app/adhdo/internal/models"
)

type Repository interface {
	Create(ctx context.Context, b models.Bookmark) error
	Update(ctx context.Context, b models.Bookmark) error
	List(ctx context.Context) ([]models.Bookmark, error)
	DeleteByID(ctx context.Context, id string) error
}
