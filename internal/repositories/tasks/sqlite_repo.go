package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/adhdo-app/adhdo/internal/common"
	"github.com/adhdo-app/adhdo/internal/dbx"
	"github.com/adhdo-app/adhdo/internal/models"
)

const selectTasks = `SELECT t.id, t.title, t.subtitle, t.created_at, t.done, t.favorite, c.id, c.name
	FROM tasks t LEFT JOIN categories c ON c.id = t.category_id`

const orderTasks = ` ORDER BY t.created_at, t.id`

// SQLiteRepository implements Repository on top of a DBTX.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, t models.Task) error {
	query := `INSERT INTO tasks (id, title, subtitle, created_at, done, favorite, category_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.Title, nullString(t.Subtitle), t.CreatedAt.UnixNano(), t.Done, t.Favorite, categoryID(t.Category))
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, t models.Task) error {
	query := `UPDATE tasks SET title = ?, subtitle = ?, done = ?, favorite = ?, category_id = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title, nullString(t.Subtitle), t.Done, t.Favorite, categoryID(t.Category), t.ID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return expectOneRow(res, t.ID)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (models.Task, error) {
	row := r.db.QueryRowContext(ctx, selectTasks+` WHERE t.id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, fmt.Errorf("task %s: %w", id, common.ErrorNotFound)
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("query row scan failed: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepository) Fetch(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	where, args := filterClause(filter)

	rows, err := r.db.QueryContext(ctx, selectTasks+where+orderTasks, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	result := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return expectOneRow(res, id)
}

func filterClause(f models.TaskFilter) (string, []any) {
	switch f.Kind {
	case models.FilterKindTodo:
		return ` WHERE t.done = 0`, nil
	case models.FilterKindDone:
		return ` WHERE t.done = 1`, nil
	case models.FilterKindFavorites:
		return ` WHERE t.favorite = 1`, nil
	case models.FilterKindCategory:
		return ` WHERE COALESCE(c.name, '') = ?`, []any{f.CategoryName}
	default:
		return "", nil
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (models.Task, error) {
	var (
		t        models.Task
		subtitle sql.NullString
		created  int64
		catID    sql.NullString
		catName  sql.NullString
	)
	if err := s.Scan(&t.ID, &t.Title, &subtitle, &created, &t.Done, &t.Favorite, &catID, &catName); err != nil {
		return models.Task{}, err
	}
	t.CreatedAt = time.Unix(0, created).UTC()
	if subtitle.Valid {
		v := subtitle.String
		t.Subtitle = &v
	}
	if catID.Valid {
		t.Category = &models.Category{ID: catID.String, Name: catName.String}
	}
	return t, nil
}

func expectOneRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("task %s: %w", id, common.ErrorNotFound)
	}
	return nil
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func categoryID(c *models.Category) any {
	if c == nil {
		return nil
	}
	return c.ID
}
