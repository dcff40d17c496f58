package models

// FeedSettings holds the feed preferences persisted in the local database.
// Nil fields were never set and fall back to the configuration.
type FeedSettings struct {
	AdProbability         *int
	VisibilityProbability *int
	Shuffle               *bool
}
