package services

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/adhdo-app/adhdo/internal/common"
	"github.com/adhdo-app/adhdo/internal/events"
	"github.com/adhdo-app/adhdo/internal/logging"
	"github.com/adhdo-app/adhdo/internal/models"
	"github.com/adhdo-app/adhdo/internal/repositories/categories"
	"github.com/adhdo-app/adhdo/internal/repositories/tasks"
	"github.com/google/uuid"
)

// TaskPatch lists the fields to change. Nil fields are left alone. A non-nil
// Category names the target category; an empty name detaches the task.
type TaskPatch struct {
	Title    *string
	Subtitle *string
	Done     *bool
	Favorite *bool
	Category *string
}

// TaskStore wraps the task and category repositories and announces every
// successful mutation on the bus.
type TaskStore struct {
	tasks      tasks.Repository
	categories categories.Repository
	bus        *events.Bus
	log        logging.Logger
	now        func() time.Time

	// lastDropped is the bus drop count seen after the previous save.
	lastDropped atomic.Uint64
}

func NewTaskStore(t tasks.Repository, c categories.Repository, bus *events.Bus, log logging.Logger) *TaskStore {
	if log == nil {
		log = logging.Nop()
	}
	return &TaskStore{
		tasks:      t,
		categories: c,
		bus:        bus,
		log:        log.With("component", "task_store"),
		now:        time.Now,
	}
}

// Fetch returns the tasks matching filter in creation order.
func (s *TaskStore) Fetch(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	return s.tasks.Fetch(ctx, filter)
}

// Subscribe registers h for local saves and remote change notifications.
func (s *TaskStore) Subscribe(h events.Subscriber) func() {
	return s.bus.Subscribe(h, events.EventStoreSaved, events.EventStoreRemoteChange)
}

// NotifyRemoteChange tells subscribers that the data changed outside this
// process. Unlike local saves it waits for buffer space instead of dropping.
func (s *TaskStore) NotifyRemoteChange(ctx context.Context, subject string) error {
	event := events.NewEvent(events.EventStoreRemoteChange, events.SourceRemote, subject)
	if err := s.bus.PublishContext(ctx, event); err != nil {
		return fmt.Errorf("notify remote change: %w", err)
	}
	return nil
}

func (s *TaskStore) saved(ctx context.Context, subject string) {
	s.log.Debug(ctx, "store saved", "subject", subject)
	s.bus.Publish(events.NewEvent(events.EventStoreSaved, events.SourceStore, subject))

	dropped := s.bus.Dropped()
	if prev := s.lastDropped.Swap(dropped); dropped > prev {
		s.log.Warn(ctx, "change notifications dropped", "subject", subject, "dropped", dropped-prev, "total", dropped)
	}
}

// GetTask returns the task with the given id.
func (s *TaskStore) GetTask(ctx context.Context, id string) (models.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

// ResolveID expands a unique id prefix to the full task id.
func (s *TaskStore) ResolveID(ctx context.Context, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("empty id: %w", common.ErrorNotFound)
	}
	all, err := s.tasks.Fetch(ctx, models.FilterAll)
	if err != nil {
		return "", err
	}
	var match string
	for _, t := range all {
		if t.ID == prefix {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("task %s: %w", prefix, common.ErrAmbiguousID)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("task %s: %w", prefix, common.ErrorNotFound)
	}
	return match, nil
}

// AddTask creates an open task. categoryName may be empty.
func (s *TaskStore) AddTask(ctx context.Context, title string, subtitle *string, categoryName string) (models.Task, error) {
	task := models.Task{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(title),
		Subtitle:  normalizeSubtitle(subtitle),
		CreatedAt: s.now().UTC(),
	}
	if err := task.Validate(); err != nil {
		return models.Task{}, err
	}

	if categoryName != "" {
		c, err := s.categories.GetByName(ctx, categoryName)
		if err != nil {
			return models.Task{}, err
		}
		task.Category = &c
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return models.Task{}, err
	}
	s.saved(ctx, task.ID)
	return task, nil
}

// UpdateTask applies p to the task with the given id. Edits that leave the
// task unchanged return common.ErrNoChange and publish nothing.
func (s *TaskStore) UpdateTask(ctx context.Context, id string, p TaskPatch) (models.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return models.Task{}, err
	}

	changed := false
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return models.Task{}, common.ErrEmptyTitle
		}
		if title != task.Title {
			task.Title = title
			changed = true
		}
	}
	if p.Subtitle != nil {
		sub := normalizeSubtitle(p.Subtitle)
		if !equalStringPtr(sub, task.Subtitle) {
			task.Subtitle = sub
			changed = true
		}
	}
	if p.Done != nil && *p.Done != task.Done {
		task.Done = *p.Done
		changed = true
	}
	if p.Favorite != nil && *p.Favorite != task.Favorite {
		task.Favorite = *p.Favorite
		changed = true
	}
	if p.Category != nil && *p.Category != task.CategoryName() {
		if *p.Category == "" {
			task.Category = nil
		} else {
			c, err := s.categories.GetByName(ctx, *p.Category)
			if err != nil {
				return models.Task{}, err
			}
			task.Category = &c
		}
		changed = true
	}

	if !changed {
		return task, common.ErrNoChange
	}
	if err := s.tasks.Update(ctx, task); err != nil {
		return models.Task{}, err
	}
	s.saved(ctx, task.ID)
	return task, nil
}

func (s *TaskStore) SetDone(ctx context.Context, id string, done bool) (models.Task, error) {
	return s.UpdateTask(ctx, id, TaskPatch{Done: &done})
}

func (s *TaskStore) SetFavorite(ctx context.Context, id string, favorite bool) (models.Task, error) {
	return s.UpdateTask(ctx, id, TaskPatch{Favorite: &favorite})
}

func (s *TaskStore) DeleteTask(ctx context.Context, id string) error {
	if err := s.tasks.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.saved(ctx, id)
	return nil
}

// Categories lists categories ordered by name.
func (s *TaskStore) Categories(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

func (s *TaskStore) AddCategory(ctx context.Context, name string) (models.Category, error) {
	c := models.Category{ID: uuid.NewString(), Name: strings.TrimSpace(name)}
	if err := c.Validate(); err != nil {
		return models.Category{}, err
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return models.Category{}, err
	}
	s.saved(ctx, c.ID)
	return c, nil
}

func (s *TaskStore) RenameCategory(ctx context.Context, name, newName string) (models.Category, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return models.Category{}, common.ErrEmptyName
	}
	c, err := s.categories.GetByName(ctx, name)
	if err != nil {
		return models.Category{}, err
	}
	if c.Name == newName {
		return c, common.ErrNoChange
	}
	if err := s.categories.Rename(ctx, c.ID, newName); err != nil {
		return models.Category{}, err
	}
	c.Name = newName
	s.saved(ctx, c.ID)
	return c, nil
}

// DeleteCategory removes the named category. Its tasks stay and become
// uncategorized.
func (s *TaskStore) DeleteCategory(ctx context.Context, name string) error {
	c, err := s.categories.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if err := s.categories.DeleteByID(ctx, c.ID); err != nil {
		return err
	}
	s.saved(ctx, c.ID)
	return nil
}

func normalizeSubtitle(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
