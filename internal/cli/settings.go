package cli

import (
	"context"
	"fmt"
	"sort"
)

func (a *App) Settings(ctx context.Context, _ []string) error {
	p := a.currentFeed().Params()
	printlnFn(fmt.Sprintf("ad probability:         %d%%", p.AdProbability))
	printlnFn(fmt.Sprintf("visibility probability: %d%%", p.VisibilityProbability))
	printlnFn(fmt.Sprintf("shuffle:                %t", p.Shuffle))
	printlnFn(fmt.Sprintf("randomize:              %s", a.cfg.RandomizeSpec))
	printlnFn(fmt.Sprintf("hyperfocus:             %s", a.cfg.HyperfocusDuration))

	stored, err := a.settings.All(ctx)
	if err != nil {
		return err
	}
	if len(stored) == 0 {
		return nil
	}
	keys := make([]string, 0, len(stored))
	for k := range stored {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	printlnFn("saved:")
	for _, k := range keys {
		printlnFn(fmt.Sprintf("  %s = %s", k, stored[k]))
	}
	return nil
}

// Set persists a feed setting and rebuilds the feed with it. Flags given on
// the command line keep precedence for the current run.
func (a *App) Set(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("set <key> <value>")
	}
	if err := a.settings.Set(ctx, args[0], args[1]); err != nil {
		return err
	}
	return a.applySettings(ctx)
}

func (a *App) Reset(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("reset <key>")
	}
	if err := a.settings.Reset(ctx, args[0]); err != nil {
		return err
	}
	printlnFn("Reset", args[0], "(takes effect on next start)")
	return nil
}

func (a *App) applySettings(ctx context.Context) error {
	fs, err := a.settings.Feed(ctx)
	if err != nil {
		return err
	}
	a.cfg.ApplyFeedSettings(fs)
	a.rebuildFeed(ctx)
	printlnFn("Saved.")
	return nil
}
