package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adhdo-app/adhdo/internal/common"
	"github.com/adhdo-app/adhdo/internal/config"
	"github.com/adhdo-app/adhdo/internal/feed"
	"github.com/adhdo-app/adhdo/internal/models"
	"github.com/adhdo-app/adhdo/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.RandomizeSpec = ""
	return cfg
}

func newTestApp(t *testing.T, input string) (*App, *output) {
	t.Helper()
	return newTestAppWith(t, testConfig(), nil, input)
}

func newTestAppWith(t *testing.T, cfg *config.Config, repos *store.Repositories, input string) (*App, *output) {
	t.Helper()
	out := captureOutput(t)
	ctx := context.Background()

	if repos == nil {
		var err error
		repos, err = store.InitDatabase(ctx, ":memory:")
		require.NoError(t, err)
	}
	a, err := newApp(ctx, cfg, repos, nil, feed.NewSeededRand(1), strings.NewReader(input), io.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a, out
}

func onlyTask(t *testing.T, a *App, filter models.TaskFilter) models.Task {
	t.Helper()
	tasks, err := a.tasks.Fetch(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	return tasks[0]
}

func TestApp_TaskLifecycle(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, "")

	require.NoError(t, a.Add(ctx, []string{"Buy", "milk"}))
	task := onlyTask(t, a, models.FilterAll)
	assert.Equal(t, "Buy milk", task.Title)

	out.Reset()
	require.NoError(t, a.List(ctx, nil))
	assert.Contains(t, out.String(), "ToDo: 1 tasks")
	assert.Contains(t, out.String(), "Buy milk")

	id := shortID(task.ID)
	require.NoError(t, a.Done(ctx, []string{id}))
	assert.Empty(t, a.currentFeed().Tasks(), "todo filter hides completed tasks")

	assert.ErrorIs(t, a.Done(ctx, []string{id}), common.ErrNoChange)

	require.NoError(t, a.Fav(ctx, []string{id}))
	assert.True(t, onlyTask(t, a, models.FilterFavorites).Favorite)
	require.NoError(t, a.Fav(ctx, []string{id}))
	tasks, err := a.tasks.Fetch(ctx, models.FilterFavorites)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	require.NoError(t, a.Undo(ctx, []string{id}))
	assert.Len(t, a.currentFeed().Tasks(), 1)

	require.NoError(t, a.Delete(ctx, []string{id}))
	assert.Empty(t, a.currentFeed().Tasks())
	assert.ErrorIs(t, a.Delete(ctx, []string{id}), common.ErrorNotFound)
}

func TestApp_UsageErrors(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t, "")

	for name, fn := range map[string]func(context.Context, []string) error{
		"done":           a.Done,
		"undo":           a.Undo,
		"fav":            a.Fav,
		"edit":           a.Edit,
		"delete":         a.Delete,
		"addcat":         a.AddCategory,
		"renamecat":      a.RenameCategory,
		"delcat":         a.DeleteCategory,
		"addbookmark":    a.AddBookmark,
		"renamebookmark": a.RenameBookmark,
		"delbookmark":    a.DeleteBookmark,
		"set":            a.Set,
		"reset":          a.Reset,
	} {
		err := fn(ctx, nil)
		require.Error(t, err, name)
		assert.Contains(t, err.Error(), "usage:", name)
	}
}

func TestApp_AddPromptsWithoutArgs(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t, "Water plants\non the balcony\nHome\n")
	require.NoError(t, a.AddCategory(ctx, []string{"Home"}))

	require.NoError(t, a.Add(ctx, nil))

	task := onlyTask(t, a, models.FilterAll)
	assert.Equal(t, "Water plants", task.Title)
	require.NotNil(t, task.Subtitle)
	assert.Equal(t, "on the balcony", *task.Subtitle)
	assert.Equal(t, "Home", task.CategoryName())
}

func TestApp_Edit(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, "Walk the dog\n-\nPets\n\n\n\n")
	require.NoError(t, a.AddCategory(ctx, []string{"Pets"}))
	require.NoError(t, a.Add(ctx, []string{"Walk"}))
	id := onlyTask(t, a, models.FilterAll).ID

	require.NoError(t, a.Edit(ctx, []string{id}))
	task := onlyTask(t, a, models.FilterAll)
	assert.Equal(t, "Walk the dog", task.Title)
	assert.Nil(t, task.Subtitle)
	assert.Equal(t, "Pets", task.CategoryName())

	// Three empty answers keep everything.
	out.Reset()
	assert.ErrorIs(t, a.Edit(ctx, []string{id}), common.ErrNoChange)
}

func TestApp_FilterAndCategories(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, "")

	require.NoError(t, a.AddCategory(ctx, []string{"Home"}))
	require.NoError(t, a.AddCategory(ctx, []string{"Work"}))
	_, err := a.tasks.AddTask(ctx, "Dust", nil, "Home")
	require.NoError(t, err)
	_, err = a.tasks.AddTask(ctx, "Report", nil, "Work")
	require.NoError(t, err)
	a.afterSave(ctx)

	out.Reset()
	require.NoError(t, a.Filter(ctx, nil))
	assert.Equal(t, []string{"  all", "> todo", "  done", "  favorites", "  category:Home", "  category:Work"}, out.Lines())

	require.NoError(t, a.Filter(ctx, []string{"category:Home"}))
	assert.Equal(t, models.FilterCategory("Home"), a.currentFeed().Filter())
	require.Len(t, a.currentFeed().Tasks(), 1)

	assert.ErrorIs(t, a.Filter(ctx, []string{"category:Garden"}), common.ErrUnknownFilter)
	assert.ErrorIs(t, a.Filter(ctx, []string{"someday"}), common.ErrUnknownFilter)

	require.NoError(t, a.RenameCategory(ctx, []string{"Work", "Office"}))
	require.NoError(t, a.DeleteCategory(ctx, []string{"Home"}))

	require.NoError(t, a.Filter(ctx, []string{"all"}))
	assert.Len(t, a.currentFeed().Tasks(), 2, "deleting a category keeps its tasks")

	out.Reset()
	require.NoError(t, a.Categories(ctx, nil))
	assert.Equal(t, []string{"Office"}, out.Lines())
}

func TestApp_FeedCommands(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.AdProbability = 101
	cfg.Shuffle = false
	a, out := newTestAppWith(t, cfg, nil, "")

	for _, title := range []string{"one", "two", "three"} {
		require.NoError(t, a.Add(ctx, []string{title}))
	}

	out.Reset()
	require.NoError(t, a.Feed(ctx, nil))
	assert.Equal(t, "ToDo: 3 tasks, 0 hidden, 3 adverts", out.Lines()[0])

	out.Reset()
	require.NoError(t, a.MPH(ctx, nil))
	assert.Equal(t, "ToDo (MPH): 3 tasks, 0 hidden, 0 adverts", out.Lines()[0])

	before := a.currentFeed().Snapshot()
	require.NoError(t, a.RandomizeFeed(ctx, nil))
	after := a.currentFeed().Snapshot()
	assert.Equal(t, before.MPH, after.MPH)
	assert.Greater(t, after.Version, before.Version)
}

func TestApp_ReloadRefreshesFeed(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t, "")

	// Written behind the service's back, so nothing is published.
	require.NoError(t, a.repos.Tasks.Create(ctx, models.Task{ID: "ext", Title: "From elsewhere", CreatedAt: time.Now().UTC()}))
	assert.Empty(t, a.currentFeed().Tasks())

	require.NoError(t, a.Reload(ctx, nil))
	require.Eventually(t, func() bool { return len(a.currentFeed().Tasks()) == 1 }, 2*time.Second, 5*time.Millisecond)
}

func TestApp_Bookmarks(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, "")

	require.NoError(t, a.AddBookmark(ctx, []string{"Go", "docs", "https://go.dev/doc"}))
	list, err := a.bookmarks.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Go docs", list[0].Name)

	assert.ErrorIs(t, a.AddBookmark(ctx, []string{"Bad", "not-a-url"}), common.ErrInvalidURL)

	require.NoError(t, a.RenameBookmark(ctx, []string{shortID(list[0].ID), "Go", "documentation"}))

	out.Reset()
	require.NoError(t, a.Bookmarks(ctx, nil))
	assert.Contains(t, out.String(), "Go documentation  https://go.dev/doc")

	require.NoError(t, a.DeleteBookmark(ctx, []string{list[0].ID}))
	out.Reset()
	require.NoError(t, a.Bookmarks(ctx, nil))
	assert.Equal(t, []string{"No bookmarks."}, out.Lines())
}

func TestApp_Focus(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, "")

	assert.Error(t, a.Focus(ctx, []string{"0"}))
	assert.Error(t, a.Focus(ctx, []string{"soon"}))

	require.NoError(t, a.Focus(ctx, []string{"25"}))
	assert.True(t, a.focus.Active())
	assert.Equal(t, 25*time.Minute, a.focus.Remaining())

	require.NoError(t, a.RandomizeFeed(ctx, nil))
	assert.Greater(t, a.focus.Remaining(), 25*time.Minute)

	require.NoError(t, a.Focus(ctx, nil))
	assert.Equal(t, a.cfg.HyperfocusDuration, a.focus.Remaining())

	require.NoError(t, a.Unfocus(ctx, nil))
	assert.False(t, a.focus.Active())

	out.Reset()
	require.NoError(t, a.Unfocus(ctx, nil))
	assert.Equal(t, []string{"Hyperfocus is not running."}, out.Lines())
}

func TestParseFocusDuration(t *testing.T) {
	d, err := parseFocusDuration("15")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, d)

	d, err = parseFocusDuration("90s")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)

	_, err = parseFocusDuration("x")
	assert.Error(t, err)
}

func TestApp_SetRebuildsFeed(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, "")
	require.NoError(t, a.Add(ctx, []string{"one"}))
	require.NoError(t, a.Add(ctx, []string{"two"}))
	old := a.currentFeed()

	require.NoError(t, a.Set(ctx, []string{common.SettingAdProbability, "101"}))
	assert.NotSame(t, old, a.currentFeed())
	assert.Equal(t, 101, a.currentFeed().Params().AdProbability)
	assert.Equal(t, 2, feed.Count(a.currentFeed().Regular()).Adverts)

	assert.ErrorIs(t, a.Set(ctx, []string{"feed.colour", "red"}), common.ErrUnknownSetting)

	out.Reset()
	require.NoError(t, a.Settings(ctx, nil))
	assert.Contains(t, out.String(), "ad probability:         101%")
	assert.Contains(t, out.String(), common.SettingAdProbability+" = 101")

	require.NoError(t, a.Reset(ctx, []string{common.SettingAdProbability}))
	stored, err := a.settings.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestNewApp_AppliesSavedSettings(t *testing.T) {
	ctx := context.Background()
	repos, err := store.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	require.NoError(t, repos.Settings.Set(ctx, common.SettingVisibilityProbability, []byte("5")))
	require.NoError(t, repos.Settings.Set(ctx, common.SettingShuffle, []byte("false")))

	a, _ := newTestAppWith(t, testConfig(), repos, "")
	p := a.currentFeed().Params()
	assert.Equal(t, 5, p.VisibilityProbability)
	assert.False(t, p.Shuffle)
	assert.Equal(t, 25, p.AdProbability)
}

func TestNewApp_InvalidRandomizeSpec(t *testing.T) {
	ctx := context.Background()
	repos, err := store.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	cfg := testConfig()
	cfg.RandomizeSpec = "whenever"
	_, err = newApp(ctx, cfg, repos, nil, nil, strings.NewReader(""), io.Discard)
	assert.Error(t, err)
}

func TestApp_RunAndPrompt(t *testing.T) {
	orig := isTerminal
	t.Cleanup(func() { isTerminal = orig })

	cfg := testConfig()
	cfg.RandomizeSpec = "@every 1h"
	a, out := newTestAppWith(t, cfg, nil, "add Laundry\nlist\nexit\n")

	isTerminal = func() bool { return false }
	assert.Equal(t, "", a.prompt())
	isTerminal = func() bool { return true }
	assert.Equal(t, "adhdo (ToDo)> ", a.prompt())
	isTerminal = func() bool { return false }

	a.Run(context.Background())

	lines := out.Lines()
	assert.Equal(t, "Welcome to ADHDo (type 'help' for commands)", lines[0])
	assert.Contains(t, out.String(), "Laundry")
	assert.Equal(t, "Bye!", lines[len(lines)-1])

	require.NoError(t, a.Close())
	require.NoError(t, a.Close())
}

func TestApp_Search(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tips.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"name": "Pomodoro", "description": "Focus for 25 minutes"},
		{"name": "Walk", "description": "Ten minutes outside"}
	]`), 0o600))
	cfg := testConfig()
	cfg.SearchCatalogPath = path
	a, out := newTestAppWith(t, cfg, nil, "")

	require.NoError(t, a.Search(ctx, nil))
	assert.Equal(t, "Search (All): 2 result(s)", out.Lines()[0])
	assert.ElementsMatch(t, []string{
		"- Pomodoro: Focus for 25 minutes",
		"- Walk: Ten minutes outside",
	}, out.Lines()[1:])

	out.Reset()
	require.NoError(t, a.Search(ctx, []string{"TEN", "minutes"}))
	assert.Equal(t, []string{"Search (All): 1 result(s)", "- Walk: Ten minutes outside"}, out.Lines())

	out.Reset()
	require.NoError(t, a.Search(ctx, []string{"gardening"}))
	assert.Equal(t, []string{"No results."}, out.Lines())

	out.Reset()
	require.NoError(t, a.SearchCategory(ctx, []string{"todo"}))
	require.NoError(t, a.SearchCategory(ctx, nil))
	assert.Equal(t, []string{"Search category: ToDo", "Search category: ToDo"}, out.Lines())
	assert.ErrorIs(t, a.SearchCategory(ctx, []string{"favorites"}), common.ErrUnknownFilter)
}

func TestApp_SearchDefaultsAndBadCatalog(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, "")
	require.NoError(t, a.Search(ctx, []string{"pomodoro"}))
	assert.Len(t, out.Lines(), 2)

	repos, err := store.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	cfg := testConfig()
	cfg.SearchCatalogPath = filepath.Join(t.TempDir(), "missing.json")
	_, err = newApp(ctx, cfg, repos, nil, nil, strings.NewReader(""), io.Discard)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
