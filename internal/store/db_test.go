package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/adhdo-app/adhdo/internal/common"
	"github.com/adhdo-app/adhdo/internal/models"
	"github.com/adhdo-app/adhdo/internal/repositories/categories"
	"github.com/adhdo-app/adhdo/internal/store/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDatabase_InMemoryWiresRepositories(t *testing.T) {
	ctx := context.Background()
	repos, err := InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	require.NoError(t, repos.Categories.Create(ctx, models.Category{ID: "c1", Name: "Home"}))
	require.NoError(t, repos.Tasks.Create(ctx, models.Task{
		ID: "t1", Title: "dust shelves", CreatedAt: time.Now().UTC(),
		Category: &models.Category{ID: "c1"},
	}))
	require.NoError(t, repos.Bookmarks.Create(ctx, models.Bookmark{ID: "b1", Name: "Go", URL: "https://go.dev"}))
	require.NoError(t, repos.Settings.Set(ctx, "k", []byte("v")))

	got, err := repos.Tasks.Fetch(ctx, models.FilterCategory("Home"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Home", got[0].Category.Name)
}

func TestInitDatabase_ReopenKeepsDataAndSkipsAppliedMigrations(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "adhdo.db")

	repos, err := InitDatabase(ctx, path)
	require.NoError(t, err)
	require.NoError(t, repos.Tasks.Create(ctx, models.Task{ID: "t1", Title: "persist me", CreatedAt: time.Now().UTC()}))
	require.NoError(t, repos.Close())

	repos, err = InitDatabase(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	got, err := repos.Tasks.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "persist me", got.Title)
}

func TestInitDatabase_RejectsEmptyTitleAtSchemaLevel(t *testing.T) {
	ctx := context.Background()
	repos, err := InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	err = repos.Tasks.Create(ctx, models.Task{ID: "t1", Title: "  ", CreatedAt: time.Now()})
	assert.Error(t, err)
}

func TestInitDatabase_CategoryNamesAreUnique(t *testing.T) {
	ctx := context.Background()
	repos, err := InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	require.NoError(t, repos.Categories.Create(ctx, models.Category{ID: "c1", Name: "Home"}))
	err = repos.Categories.Create(ctx, models.Category{ID: "c2", Name: "Home"})
	assert.ErrorIs(t, err, common.ErrDuplicateName)
}

func TestRunMigrations_RenamesExistingDuplicateCategories(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.UpToContext(ctx, db, ".", 2))

	_, err = db.Exec(`INSERT INTO categories (id, name) VALUES
		('aaaaaaaa-1', 'Home'), ('bbbbbbbb-2', 'Home'), ('cccccccc-3', 'Work')`)
	require.NoError(t, err)

	require.NoError(t, RunMigrations(ctx, db))

	list, err := categories.NewSQLiteRepository(db).List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Category{
		{ID: "aaaaaaaa-1", Name: "Home"},
		{ID: "bbbbbbbb-2", Name: "Home (bbbbbbbb)"},
		{ID: "cccccccc-3", Name: "Work"},
	}, list)
}
