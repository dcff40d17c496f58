package feed

import "github.com/adhdo-app/adhdo/internal/models"

// rollRange is the width of the inclusive [0, 100] percentage roll.
const rollRange = 101

// Params configures BuildRegular.
//
// AdProbability is the percent chance that an advert follows a task; an
// advert is placed when roll < AdProbability, so values <= 0 never place
// adverts and values >= 101 always do.
//
// VisibilityProbability is the percent chance that a completed task stays
// visible; it stays visible when roll <= VisibilityProbability, so values
// >= 100 keep every task visible while 0 still lets a roll of exactly 0
// through. Open tasks are never suppressed.
type Params struct {
	AdProbability         int
	VisibilityProbability int
	Shuffle               bool
}

// BuildMPH maps every task to Content, preserving order.
func BuildMPH(tasks []models.Task) []Element {
	out := make([]Element, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, Content(t))
	}
	return out
}

// BuildRegular builds the regular feed. For each task, in order: roll for an
// advert slot, roll for visibility (completed tasks only), emit the task
// element, then the advert if the slot was won. With p.Shuffle the finished
// sequence is permuted uniformly.
func BuildRegular(tasks []models.Task, p Params, catalog Catalog, rng Rand) []Element {
	out := make([]Element, 0, len(tasks))
	for _, t := range tasks {
		showAd := rng.IntN(rollRange) < p.AdProbability
		visible := !t.Done || rng.IntN(rollRange) <= p.VisibilityProbability

		if visible {
			out = append(out, Content(t))
		} else {
			out = append(out, InvisibleContent(t))
		}
		if showAd {
			out = append(out, AdvertElement(catalog.Pick(rng)))
		}
	}

	if p.Shuffle {
		rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	}
	return out
}
