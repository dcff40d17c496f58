package cli

import (
	"fmt"
	"strings"

	"github.com/adhdo-app/adhdo/internal/feed"
	"github.com/adhdo-app/adhdo/internal/models"
)

const shortIDLen = 8

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

func formatTask(t models.Task) string {
	var b strings.Builder
	check := " "
	if t.Done {
		check = "x"
	}
	fmt.Fprintf(&b, "%s  [%s] ", shortID(t.ID), check)
	if t.Favorite {
		b.WriteString("* ")
	}
	b.WriteString(t.Title)
	if t.Category != nil {
		fmt.Fprintf(&b, " (%s)", t.Category.Name)
	}
	if t.Subtitle != nil {
		fmt.Fprintf(&b, "\n            %s", *t.Subtitle)
	}
	return b.String()
}

func formatElement(e feed.Element) string {
	switch e.Kind() {
	case feed.KindAdvert:
		ad, _ := e.Advert()
		return fmt.Sprintf("AD        %s: %s", ad.Title, ad.Description)
	case feed.KindInvisibleContent:
		t, _ := e.Task()
		return fmt.Sprintf("%s  ~~~~~~~~", shortID(t.ID))
	default:
		t, _ := e.Task()
		return formatTask(t)
	}
}

func printElements(title string, elems []feed.Element) {
	c := feed.Count(elems)
	printlnFn(fmt.Sprintf("%s: %d tasks, %d hidden, %d adverts", title, c.Content, c.Invisible, c.Adverts))
	for _, e := range elems {
		printlnFn(formatElement(e))
	}
}
