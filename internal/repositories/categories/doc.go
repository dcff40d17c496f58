// Package categories persists task categories.
//
// Deleting a category never deletes tasks: DeleteByID detaches every task that
// referenced the category (category_id becomes NULL) and removes the category
// row in a single transaction.
package categories
