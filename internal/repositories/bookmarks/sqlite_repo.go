package bookmarks

import (
	"context"
	"fmt"

	"github.com/adhdo-app/adhdo/internal/common"
	"github.com/adhdo-app/adhdo/internal/dbx"
	"github.com/adhdo-app/adhdo/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, b models.Bookmark) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO bookmarks (id, name, url) VALUES (?, ?, ?)`, b.ID, b.Name, b.URL)
	if err != nil {
		return fmt.Errorf("failed to insert bookmark: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, b models.Bookmark) error {
	res, err := r.db.ExecContext(ctx, `UPDATE bookmarks SET name = ?, url = ? WHERE id = ?`, b.Name, b.URL, b.ID)
	if err != nil {
		return fmt.Errorf("failed to update bookmark: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("bookmark %s: %w", b.ID, common.ErrorNotFound)
	}
	return nil
}

// List returns bookmarks ordered by name.
func (r *SQLiteRepository) List(ctx context.Context) ([]models.Bookmark, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, url FROM bookmarks ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer rows.Close()

	result := []models.Bookmark{}
	for rows.Next() {
		var b models.Bookmark
		if err := rows.Scan(&b.ID, &b.Name, &b.URL); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("bookmark %s: %w", id, common.ErrorNotFound)
	}
	return nil
}
