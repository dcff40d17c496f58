// Package services contains the application services the CLI talks to.
//
// TaskStore is the task store contract the feed consumes: filtered fetches
// plus change notifications published on an events.Bus after every committed
// mutation. BookmarkService and SettingsService cover the remaining
// persisted state.
package services
