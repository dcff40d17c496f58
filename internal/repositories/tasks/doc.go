// Package tasks provides the persistence layer for to-do items.
//
// The Repository interface covers CRUD plus Fetch, which evaluates one of the
// fixed models.TaskFilter predicates in SQL. SQLiteRepository is the
// implementation over dbx.DBTX (either *sql.DB or *sql.Tx).
//
// Fetched tasks carry their category (id and name) via a LEFT JOIN and are
// ordered by creation time, then id, so repeated fetches are stable.
//
// Typical usage:
//
//	repo := tasks.NewSQLiteRepository(db)
//	_ = repo.Create(ctx, task)
//	open, _ := repo.Fetch(ctx, models.FilterTodo)
package tasks
