// Package search browses the curated content shipped with the app.
//
// An Index holds a shuffled copy of a Catalog. Search with an empty query
// returns every entry in that order; any other query keeps the entries whose
// name or description contains it, ignoring case. Switching the browsing
// Category reshuffles the index.
package search
