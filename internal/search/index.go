package search

import (
	"fmt"
	"strings"
	"sync"

	"github.com/adhdo-app/adhdo/internal/common"
)

// Category is the browsing mode picked next to the search field.
type Category int

const (
	CategoryAll Category = iota
	CategoryTodo
	CategoryDone
)

var categoryTitles = map[Category]string{
	CategoryAll:  "All",
	CategoryTodo: "ToDo",
	CategoryDone: "Done",
}

func (c Category) Title() string { return categoryTitles[c] }

// ParseCategory matches the category titles, ignoring case.
func ParseCategory(s string) (Category, error) {
	for c, title := range categoryTitles {
		if strings.EqualFold(s, title) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: search category %q", common.ErrUnknownFilter, s)
}

// Shuffler permutes n elements through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Index is safe for concurrent use.
type Index struct {
	rng Shuffler

	mu       sync.Mutex
	results  []Result
	category Category
}

// NewIndex copies c and shuffles the copy.
func NewIndex(c Catalog, rng Shuffler) *Index {
	x := &Index{rng: rng, results: append([]Result(nil), c...)}
	x.shuffleLocked()
	return x
}

func (x *Index) shuffleLocked() {
	x.rng.Shuffle(len(x.results), func(i, j int) {
		x.results[i], x.results[j] = x.results[j], x.results[i]
	})
}

// Search returns every entry for an empty query, otherwise the entries whose
// name or description contains query, ignoring case. Order follows the
// current shuffle.
func (x *Index) Search(query string) []Result {
	x.mu.Lock()
	defer x.mu.Unlock()

	if query == "" {
		return append([]Result(nil), x.results...)
	}
	q := strings.ToLower(query)
	out := []Result{}
	for _, r := range x.results {
		if strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(strings.ToLower(r.Description), q) {
			out = append(out, r)
		}
	}
	return out
}

func (x *Index) Category() Category {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.category
}

// SetCategory switches the browsing mode. A change reshuffles the entries.
func (x *Index) SetCategory(c Category) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if c == x.category {
		return
	}
	x.category = c
	x.shuffleLocked()
}
