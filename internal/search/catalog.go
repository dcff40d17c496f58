package search

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/jsonc"
)

// Result is one piece of curated content.
type Result struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Catalog is the read-only content the index is built from.
type Catalog []Result

var defaultCatalog = Catalog{
	{Name: "Two-minute rule", Description: "If a task takes less than two minutes, do it right away instead of writing it down."},
	{Name: "Body doubling", Description: "Work next to someone else, in person or on a call, to make starting easier."},
	{Name: "Pomodoro", Description: "Focus for 25 minutes, then take a five minute break. Repeat four times."},
	{Name: "Eat the frog", Description: "Start the day with the task you are most likely to put off."},
	{Name: "Brain dump", Description: "Write every open loop on paper before you plan, so nothing keeps nagging you."},
	{Name: "Visible timers", Description: "A clock you can see turns an abstract deadline into something concrete."},
	{Name: "Launch pad", Description: "Keep keys, wallet and bag in one fixed spot next to the door."},
	{Name: "Done list", Description: "Note what you finished today. It counters the feeling that nothing got done."},
}

// DefaultCatalog returns the built-in content.
func DefaultCatalog() Catalog {
	out := make(Catalog, len(defaultCatalog))
	copy(out, defaultCatalog)
	return out
}

// LoadCatalog reads a JSON array of {"name", "description"} objects.
// Comments and trailing commas are allowed.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read search catalog %s: %w", path, err)
	}
	var c Catalog
	if err := json.Unmarshal(jsonc.ToJSON(data), &c); err != nil {
		return nil, fmt.Errorf("parse search catalog %s: %w", path, err)
	}
	for i, r := range c {
		if strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("search catalog %s: entry %d has no name", path, i)
		}
	}
	return c, nil
}
