package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/adhdo-app/adhdo/internal/common"
	"github.com/adhdo-app/adhdo/internal/events"
	"github.com/adhdo-app/adhdo/internal/logging"
	"github.com/adhdo-app/adhdo/internal/models"
	"github.com/adhdo-app/adhdo/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*TaskStore, *store.Repositories) {
	t.Helper()
	repos, err := store.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	bus := events.NewBus(64)
	t.Cleanup(bus.Close)

	s := NewTaskStore(repos.Tasks, repos.Categories, bus, nil)
	clock := time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return s, repos
}

func collect(s *TaskStore) (<-chan events.Event, func()) {
	ch := make(chan events.Event, 64)
	unsub := s.Subscribe(func(e events.Event) { ch <- e })
	return ch, unsub
}

func waitEvent(t *testing.T, ch <-chan events.Event) events.Event {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("no event published")
		return events.Event{}
	}
}

func assertNoEvent(t *testing.T, ch <-chan events.Event) {
	t.Helper()
	select {
	case e := <-ch:
		t.Fatalf("unexpected event %+v", e)
	case <-time.After(50 * time.Millisecond):
	}
}

func strPtr(s string) *string { return &s }

func TestTaskStore_AddTask(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	ch, unsub := collect(s)
	defer unsub()

	task, err := s.AddTask(ctx, "  Water plants ", strPtr(" balcony "), "")
	require.NoError(t, err)
	assert.Equal(t, "Water plants", task.Title)
	require.NotNil(t, task.Subtitle)
	assert.Equal(t, "balcony", *task.Subtitle)
	assert.False(t, task.Done)
	assert.Nil(t, task.Category)

	e := waitEvent(t, ch)
	assert.Equal(t, events.EventStoreSaved, e.Type)
	assert.Equal(t, task.ID, e.Subject)

	got, err := s.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Title, got.Title)
}

func TestTaskStore_AddTaskValidation(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	ch, unsub := collect(s)
	defer unsub()

	_, err := s.AddTask(ctx, "   ", nil, "")
	assert.ErrorIs(t, err, common.ErrEmptyTitle)

	_, err = s.AddTask(ctx, "Task", nil, "Nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	assertNoEvent(t, ch)
}

func TestTaskStore_UpdateTask(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	_, err := s.AddCategory(ctx, "Home")
	require.NoError(t, err)
	task, err := s.AddTask(ctx, "Vacuum", nil, "")
	require.NoError(t, err)

	ch, unsub := collect(s)
	defer unsub()

	done, fav, home := true, true, "Home"
	updated, err := s.UpdateTask(ctx, task.ID, TaskPatch{
		Title:    strPtr("Vacuum hallway"),
		Subtitle: strPtr("before guests"),
		Done:     &done,
		Favorite: &fav,
		Category: &home,
	})
	require.NoError(t, err)
	waitEvent(t, ch)

	got, err := s.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
	assert.Equal(t, "Vacuum hallway", got.Title)
	assert.Equal(t, "before guests", *got.Subtitle)
	assert.True(t, got.Done)
	assert.True(t, got.Favorite)
	assert.Equal(t, "Home", got.CategoryName())

	// Clearing subtitle and category.
	none := ""
	got, err = s.UpdateTask(ctx, task.ID, TaskPatch{Subtitle: &none, Category: &none})
	require.NoError(t, err)
	assert.Nil(t, got.Subtitle)
	assert.Nil(t, got.Category)
	waitEvent(t, ch)
}

func TestTaskStore_UpdateTaskRejectsNoOpAndEmpty(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	task, err := s.AddTask(ctx, "Dishes", nil, "")
	require.NoError(t, err)

	ch, unsub := collect(s)
	defer unsub()

	_, err = s.UpdateTask(ctx, task.ID, TaskPatch{Title: strPtr("Dishes")})
	assert.ErrorIs(t, err, common.ErrNoChange)

	_, err = s.SetDone(ctx, task.ID, false)
	assert.ErrorIs(t, err, common.ErrNoChange)

	_, err = s.UpdateTask(ctx, task.ID, TaskPatch{Title: strPtr(" ")})
	assert.ErrorIs(t, err, common.ErrEmptyTitle)

	_, err = s.UpdateTask(ctx, "missing", TaskPatch{Title: strPtr("x")})
	assert.ErrorIs(t, err, common.ErrorNotFound)

	assertNoEvent(t, ch)
}

func TestTaskStore_SetDoneAndFavorite(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	task, err := s.AddTask(ctx, "Laundry", nil, "")
	require.NoError(t, err)

	_, err = s.SetDone(ctx, task.ID, true)
	require.NoError(t, err)
	_, err = s.SetFavorite(ctx, task.ID, true)
	require.NoError(t, err)

	done, err := s.Fetch(ctx, models.FilterDone)
	require.NoError(t, err)
	require.Len(t, done, 1)
	favs, err := s.Fetch(ctx, models.FilterFavorites)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	todo, err := s.Fetch(ctx, models.FilterTodo)
	require.NoError(t, err)
	assert.Empty(t, todo)
}

func TestTaskStore_DeleteTask(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	task, err := s.AddTask(ctx, "Trash", nil, "")
	require.NoError(t, err)

	require.NoError(t, s.DeleteTask(ctx, task.ID))
	assert.ErrorIs(t, s.DeleteTask(ctx, task.ID), common.ErrorNotFound)

	all, err := s.Fetch(ctx, models.FilterAll)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTaskStore_DeleteCategoryKeepsTasks(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	_, err := s.AddCategory(ctx, "Garage")
	require.NoError(t, err)
	a, err := s.AddTask(ctx, "Sort tools", nil, "Garage")
	require.NoError(t, err)
	b, err := s.AddTask(ctx, "Sweep floor", nil, "Garage")
	require.NoError(t, err)

	require.NoError(t, s.DeleteCategory(ctx, "Garage"))

	for _, id := range []string{a.ID, b.ID} {
		got, err := s.GetTask(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, got.Category)
	}
	cats, err := s.Categories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)

	uncategorized, err := s.Fetch(ctx, models.FilterCategory(""))
	require.NoError(t, err)
	assert.Len(t, uncategorized, 2)

	err = s.DeleteCategory(ctx, "Garage")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.EqualError(t, err, `category "Garage": not found`)

	_, err = s.AddTask(ctx, "Oil hinges", nil, "Garage")
	assert.EqualError(t, err, `category "Garage": not found`)
	_, err = s.RenameCategory(ctx, "Garage", "Shed")
	assert.EqualError(t, err, `category "Garage": not found`)
}

func TestTaskStore_CategoryFilterMatchesIndependentCount(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	for _, name := range []string{"Home", "Work"} {
		_, err := s.AddCategory(ctx, name)
		require.NoError(t, err)
	}
	cats := []string{"Home", "Work", "", "Home", "Home", "", "Work"}
	for i, c := range cats {
		_, err := s.AddTask(ctx, "task "+string(rune('a'+i)), nil, c)
		require.NoError(t, err)
	}

	all, err := s.Fetch(ctx, models.FilterAll)
	require.NoError(t, err)
	require.Len(t, all, len(cats))

	for _, name := range []string{"Home", "Work", ""} {
		want := 0
		for _, task := range all {
			if task.CategoryName() == name {
				want++
			}
		}
		got, err := s.Fetch(ctx, models.FilterCategory(name))
		require.NoError(t, err)
		assert.Len(t, got, want, "category %q", name)
		for _, task := range got {
			assert.Equal(t, name, task.CategoryName())
		}
	}
}

func TestTaskStore_RenameCategory(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	_, err := s.AddCategory(ctx, "Hom")
	require.NoError(t, err)
	task, err := s.AddTask(ctx, "Mop", nil, "Hom")
	require.NoError(t, err)

	c, err := s.RenameCategory(ctx, "Hom", "Home")
	require.NoError(t, err)
	assert.Equal(t, "Home", c.Name)

	got, err := s.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Home", got.CategoryName())

	_, err = s.RenameCategory(ctx, "Home", "Home")
	assert.ErrorIs(t, err, common.ErrNoChange)
	_, err = s.RenameCategory(ctx, "Home", "")
	assert.ErrorIs(t, err, common.ErrEmptyName)
	_, err = s.AddCategory(ctx, " ")
	assert.ErrorIs(t, err, common.ErrEmptyName)
}

func TestTaskStore_CategoryNamesAreUnique(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	_, err := s.AddCategory(ctx, "Home")
	require.NoError(t, err)
	_, err = s.AddCategory(ctx, "Work")
	require.NoError(t, err)

	ch, unsub := collect(s)
	defer unsub()

	_, err = s.AddCategory(ctx, " Home ")
	assert.ErrorIs(t, err, common.ErrDuplicateName)
	_, err = s.RenameCategory(ctx, "Work", "Home")
	assert.ErrorIs(t, err, common.ErrDuplicateName)
	assertNoEvent(t, ch)

	cats, err := s.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, models.DefaultFilters(cats), 6)

	_, err = s.AddTask(ctx, "Dishes", nil, "Home")
	require.NoError(t, err)
	require.NoError(t, s.DeleteCategory(ctx, "Home"))

	cats, err = s.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Work", cats[0].Name)
}

func TestTaskStore_ResolveID(t *testing.T) {
	ctx := context.Background()
	s, repos := newTestStore(t)
	now := time.Now().UTC()
	for _, id := range []string{"abc1", "abc2", "def"} {
		require.NoError(t, repos.Tasks.Create(ctx, models.Task{ID: id, Title: id, CreatedAt: now}))
	}

	id, err := s.ResolveID(ctx, "de")
	require.NoError(t, err)
	assert.Equal(t, "def", id)

	id, err = s.ResolveID(ctx, "abc1")
	require.NoError(t, err)
	assert.Equal(t, "abc1", id)

	_, err = s.ResolveID(ctx, "abc")
	assert.ErrorIs(t, err, common.ErrAmbiguousID)
	_, err = s.ResolveID(ctx, "zzz")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = s.ResolveID(ctx, "")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestTaskStore_NotifyRemoteChange(t *testing.T) {
	s, _ := newTestStore(t)
	ch, unsub := collect(s)

	require.NoError(t, s.NotifyRemoteChange(context.Background(), "import"))
	e := waitEvent(t, ch)
	assert.Equal(t, events.EventStoreRemoteChange, e.Type)
	assert.Equal(t, events.SourceRemote, e.Source)

	unsub()
	unsub()
	require.NoError(t, s.NotifyRemoteChange(context.Background(), "again"))
	assertNoEvent(t, ch)
}

func TestTaskStore_NotifyRemoteChangeOnClosedBus(t *testing.T) {
	repos, err := store.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	bus := events.NewBus(4)
	s := NewTaskStore(repos.Tasks, repos.Categories, bus, nil)
	bus.Close()

	err = s.NotifyRemoteChange(context.Background(), "late")
	assert.ErrorIs(t, err, events.ErrBusClosed)
}

func TestTaskStore_WarnsWhenNotificationsAreDropped(t *testing.T) {
	ctx := context.Background()
	repos, err := store.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	bus := events.NewBus(1)
	t.Cleanup(bus.Close)
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	bus.Subscribe(func(events.Event) { <-release })

	var logs bytes.Buffer
	s := NewTaskStore(repos.Tasks, repos.Categories, bus, logging.New(&logs, "debug", "text"))

	// One event can sit in the blocked handler and one in the buffer.
	for _, title := range []string{"one", "two", "three"} {
		_, err := s.AddTask(ctx, title, nil, "")
		require.NoError(t, err)
	}

	assert.NotZero(t, bus.Dropped())
	assert.Contains(t, logs.String(), "change notifications dropped")
}
