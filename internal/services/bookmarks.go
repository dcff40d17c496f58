package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/adhdo-app/adhdo/internal/common"
	"github.com/adhdo-app/adhdo/internal/models"
	"github.com/adhdo-app/adhdo/internal/repositories/bookmarks"
	"github.com/google/uuid"
)

// BookmarkService manages saved links.
type BookmarkService struct {
	repo bookmarks.Repository
}

func NewBookmarkService(repo bookmarks.Repository) *BookmarkService {
	return &BookmarkService{repo: repo}
}

func (s *BookmarkService) Add(ctx context.Context, name, rawURL string) (models.Bookmark, error) {
	b := models.Bookmark{
		ID:   uuid.NewString(),
		Name: strings.TrimSpace(name),
		URL:  strings.TrimSpace(rawURL),
	}
	if err := b.Validate(); err != nil {
		return models.Bookmark{}, err
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return models.Bookmark{}, err
	}
	return b, nil
}

// List returns bookmarks ordered by name.
func (s *BookmarkService) List(ctx context.Context) ([]models.Bookmark, error) {
	return s.repo.List(ctx)
}

// Rename changes the display name of the bookmark whose id starts with idPrefix.
func (s *BookmarkService) Rename(ctx context.Context, idPrefix, name string) (models.Bookmark, error) {
	b, err := s.find(ctx, idPrefix)
	if err != nil {
		return models.Bookmark{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Bookmark{}, common.ErrEmptyName
	}
	if name == b.Name {
		return b, common.ErrNoChange
	}
	b.Name = name
	if err := s.repo.Update(ctx, b); err != nil {
		return models.Bookmark{}, err
	}
	return b, nil
}

func (s *BookmarkService) Delete(ctx context.Context, idPrefix string) error {
	b, err := s.find(ctx, idPrefix)
	if err != nil {
		return err
	}
	return s.repo.DeleteByID(ctx, b.ID)
}

func (s *BookmarkService) find(ctx context.Context, idPrefix string) (models.Bookmark, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return models.Bookmark{}, err
	}
	var found []models.Bookmark
	for _, b := range all {
		if b.ID == idPrefix {
			return b, nil
		}
		if idPrefix != "" && strings.HasPrefix(b.ID, idPrefix) {
			found = append(found, b)
		}
	}
	switch len(found) {
	case 0:
		return models.Bookmark{}, fmt.Errorf("bookmark %s: %w", idPrefix, common.ErrorNotFound)
	case 1:
		return found[0], nil
	default:
		return models.Bookmark{}, fmt.Errorf("bookmark %s: %w", idPrefix, common.ErrAmbiguousID)
	}
}
