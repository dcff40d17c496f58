package categories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/adhdo-app/adhdo/internal/common"
	"github.com/adhdo-app/adhdo/internal/dbx"
	"github.com/adhdo-app/adhdo/internal/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, c models.Category) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO categories (id, name) VALUES (?, ?)`, c.ID, c.Name)
	if isUniqueViolation(err) {
		return fmt.Errorf("category %q: %w", c.Name, common.ErrDuplicateName)
	}
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Rename(ctx context.Context, id, name string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE categories SET name = ? WHERE id = ?`, name, id)
	if isUniqueViolation(err) {
		return fmt.Errorf("category %q: %w", name, common.ErrDuplicateName)
	}
	if err != nil {
		return fmt.Errorf("failed to rename category: %w", err)
	}
	return expectOneRow(res, id)
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	result := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) GetByName(ctx context.Context, name string) (models.Category, error) {
	var c models.Category
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM categories WHERE name = ?`, name).
		Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, fmt.Errorf("category %q: %w", name, common.ErrorNotFound)
	}
	if err != nil {
		return models.Category{}, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `UPDATE tasks SET category_id = NULL WHERE category_id = ?`, id); err != nil {
			return fmt.Errorf("failed to detach tasks: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return expectOneRow(res, id)
	})
}

func expectOneRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("category %s: %w", id, common.ErrorNotFound)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
