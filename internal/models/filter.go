package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/adhdo-app/adhdo/internal/common"
)

// FilterKind enumerates the supported task predicates.
type FilterKind int

const (
	FilterKindAll FilterKind = iota
	FilterKindTodo
	FilterKindDone
	FilterKindFavorites
	FilterKindCategory
)

// TaskFilter selects tasks from the store. It is a closed set: match-all,
// match by done flag, match favorites, or match by category name.
type TaskFilter struct {
	Kind         FilterKind
	CategoryName string
}

var (
	FilterAll       = TaskFilter{Kind: FilterKindAll}
	FilterTodo      = TaskFilter{Kind: FilterKindTodo}
	FilterDone      = TaskFilter{Kind: FilterKindDone}
	FilterFavorites = TaskFilter{Kind: FilterKindFavorites}
)

// FilterCategory matches tasks whose category name equals name. An empty name
// matches uncategorized tasks.
func FilterCategory(name string) TaskFilter {
	return TaskFilter{Kind: FilterKindCategory, CategoryName: name}
}

// Title is the display label of the filter.
func (f TaskFilter) Title() string {
	switch f.Kind {
	case FilterKindTodo:
		return "ToDo"
	case FilterKindDone:
		return "Done"
	case FilterKindFavorites:
		return "Favorites"
	case FilterKindCategory:
		return f.CategoryName
	default:
		return "All"
	}
}

func (f TaskFilter) String() string {
	if f.Kind == FilterKindCategory {
		return fmt.Sprintf("category(%q)", f.CategoryName)
	}
	return strings.ToLower(f.Title())
}

// Matches evaluates the filter against a task in memory. It agrees with the
// SQL predicate used by the task repository.
func (f TaskFilter) Matches(t Task) bool {
	switch f.Kind {
	case FilterKindTodo:
		return !t.Done
	case FilterKindDone:
		return t.Done
	case FilterKindFavorites:
		return t.Favorite
	case FilterKindCategory:
		return t.CategoryName() == f.CategoryName
	default:
		return true
	}
}

// ParseTaskFilter parses "all", "todo", "done", "favorites" (case-insensitive)
// or "category:<name>".
func ParseTaskFilter(s string) (TaskFilter, error) {
	s = strings.TrimSpace(s)
	if name, ok := strings.CutPrefix(s, "category:"); ok {
		return FilterCategory(name), nil
	}
	switch strings.ToLower(s) {
	case "all", "":
		return FilterAll, nil
	case "todo":
		return FilterTodo, nil
	case "done":
		return FilterDone, nil
	case "favorites", "favorite", "fav":
		return FilterFavorites, nil
	}
	return TaskFilter{}, fmt.Errorf("%w: %q", common.ErrUnknownFilter, s)
}

// DefaultFilters lists the selectable filters: the four fixed ones followed by
// one per category, ordered by category name.
func DefaultFilters(categories []Category) []TaskFilter {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	sort.Strings(names)

	out := []TaskFilter{FilterAll, FilterTodo, FilterDone, FilterFavorites}
	for _, n := range names {
		out = append(out, FilterCategory(n))
	}
	return out
}
