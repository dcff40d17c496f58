package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/adhdo-app/adhdo/internal/search"
)

// Search prints the curated entries matching the joined arguments; no
// arguments lists everything.
func (a *App) Search(_ context.Context, args []string) error {
	query := strings.Join(args, " ")
	results := a.search.Search(query)
	if len(results) == 0 {
		printlnFn("No results.")
		return nil
	}
	printlnFn(fmt.Sprintf("Search (%s): %d result(s)", a.search.Category().Title(), len(results)))
	for _, r := range results {
		printlnFn(fmt.Sprintf("- %s: %s", r.Name, r.Description))
	}
	return nil
}

func (a *App) SearchCategory(_ context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Search category:", a.search.Category().Title())
		return nil
	}
	c, err := search.ParseCategory(args[0])
	if err != nil {
		return err
	}
	a.search.SetCategory(c)
	printlnFn("Search category:", c.Title())
	return nil
}
