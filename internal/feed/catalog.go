package feed

import (
	"time"

	"github.com/adhdo-app/adhdo/internal/models"
	"github.com/google/uuid"
)

// Catalog is the read-only list adverts are drawn from.
type Catalog []models.Advert

var defaultCatalog = func() Catalog {
	date := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	const description = "Just tidy up and organize."
	titles := []string{
		"Clean up the living room",
		"Clean up the kitchen",
		"Clean up the workplace",
		"Clean up the bed room",
		"Clean up the wardrobe",
		"Clean up the car",
	}
	c := make(Catalog, 0, len(titles))
	for _, title := range titles {
		c = append(c, models.Advert{
			ID:          uuid.NewString(),
			Title:       title,
			Description: description,
			Date:        date,
		})
	}
	return c
}()

// DefaultCatalog returns the built-in adverts. Advert ids are generated once
// per process, so repeated calls return identical entries.
func DefaultCatalog() Catalog {
	out := make(Catalog, len(defaultCatalog))
	copy(out, defaultCatalog)
	return out
}

// Pick returns a uniformly random entry. An empty catalog draws from the
// default one.
func (c Catalog) Pick(rng Rand) models.Advert {
	if len(c) == 0 {
		return defaultCatalog[rng.IntN(len(defaultCatalog))]
	}
	return c[rng.IntN(len(c))]
}
