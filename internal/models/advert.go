package models

import "time"

// Advert is a synthetic promotional feed entry. Adverts are never persisted.
type Advert struct {
	ID          string
	Title       string
	Description string
	Date        time.Time
}
