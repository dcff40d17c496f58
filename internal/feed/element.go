package feed

import "github.com/adhdo-app/adhdo/internal/models"

// Kind tags the variant held by an Element.
type Kind int

const (
	KindContent Kind = iota
	KindInvisibleContent
	KindAdvert
)

func (k Kind) String() string {
	switch k {
	case KindContent:
		return "content"
	case KindInvisibleContent:
		return "invisible"
	case KindAdvert:
		return "advert"
	default:
		return "unknown"
	}
}

// Element is one entry of a feed: a visible task, a suppressed task, or an
// advert.
type Element struct {
	kind   Kind
	task   models.Task
	advert models.Advert
}

func Content(t models.Task) Element {
	return Element{kind: KindContent, task: t}
}

func InvisibleContent(t models.Task) Element {
	return Element{kind: KindInvisibleContent, task: t}
}

func AdvertElement(a models.Advert) Element {
	return Element{kind: KindAdvert, advert: a}
}

func (e Element) Kind() Kind { return e.kind }

func (e Element) IsContent() bool   { return e.kind == KindContent }
func (e Element) IsInvisible() bool { return e.kind == KindInvisibleContent }
func (e Element) IsAdvert() bool    { return e.kind == KindAdvert }

// Task returns the wrapped task; ok is false for adverts.
func (e Element) Task() (models.Task, bool) {
	if e.kind == KindAdvert {
		return models.Task{}, false
	}
	return e.task, true
}

// Advert returns the wrapped advert; ok is false for task elements.
func (e Element) Advert() (models.Advert, bool) {
	if e.kind != KindAdvert {
		return models.Advert{}, false
	}
	return e.advert, true
}

// ID is the stable identity used for diffing: "item-<task id>" for both task
// variants and "ad-<advert id>" for adverts.
func (e Element) ID() string {
	if e.kind == KindAdvert {
		return "ad-" + e.advert.ID
	}
	return "item-" + e.task.ID
}

// Equal compares identities only. Content(t) and InvisibleContent(t) are
// therefore equal, as are two elements wrapping different snapshots of the
// same task.
func (e Element) Equal(other Element) bool {
	return e.ID() == other.ID()
}

// Counts tallies the variants of a feed.
type Counts struct {
	Content   int
	Invisible int
	Adverts   int
}

// Count returns per-variant totals for elems.
func Count(elems []Element) Counts {
	var c Counts
	for _, e := range elems {
		switch e.kind {
		case KindContent:
			c.Content++
		case KindInvisibleContent:
			c.Invisible++
		case KindAdvert:
			c.Adverts++
		}
	}
	return c
}
