package cli

import (
	"context"

	"github.com/adhdo-app/adhdo/internal/hyperfocus"
)

func (a *App) Feed(context.Context, []string) error {
	f := a.currentFeed()
	printElements(f.Filter().Title(), f.Regular())
	return nil
}

func (a *App) MPH(context.Context, []string) error {
	f := a.currentFeed()
	printElements(f.Filter().Title()+" (MPH)", f.MPH())
	return nil
}

// RandomizeFeed reshuffles the feed. Shuffling during hyperfocus costs a
// penalty on the countdown.
func (a *App) RandomizeFeed(ctx context.Context, args []string) error {
	a.Randomize()
	if a.focus.Active() {
		a.focus.Extend(hyperfocus.Penalty)
		printlnFn("Hyperfocus penalty:", hyperfocus.Penalty)
	}
	return a.Feed(ctx, args)
}

// Reload announces an outside change, which makes the feed refetch.
func (a *App) Reload(ctx context.Context, _ []string) error {
	if err := a.tasks.NotifyRemoteChange(ctx, "cli"); err != nil {
		return err
	}
	printlnFn("Reload requested.")
	return nil
}
