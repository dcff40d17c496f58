package models

import (
	"net/url"
	"strings"

	"github.com/adhdo-app/adhdo/internal/common"
)

// Bookmark is a saved link with a display name.
type Bookmark struct {
	ID   string
	Name string
	URL  string
}

// Validate requires a name and an absolute http or https URL.
func (b Bookmark) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return common.ErrEmptyName
	}
	u, err := url.Parse(strings.TrimSpace(b.URL))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return common.ErrInvalidURL
	}
	return nil
}
