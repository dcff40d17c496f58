package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// parseFocusDuration accepts whole minutes ("25") or a Go duration ("90s").
func parseFocusDuration(s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Minute, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, usage("focus [minutes|duration]")
	}
	return d, nil
}

func (a *App) Focus(_ context.Context, args []string) error {
	d := a.cfg.HyperfocusDuration
	if len(args) > 0 {
		var err error
		if d, err = parseFocusDuration(args[0]); err != nil {
			return err
		}
	}
	if d <= 0 {
		return fmt.Errorf("focus duration must be positive, got %s", d)
	}

	a.focus.Start(d)
	done := a.focus.Done()
	go func() {
		select {
		case <-done:
			printlnFn("Hyperfocus finished.")
		case <-a.closing:
		}
	}()
	printlnFn("Hyperfocus for", d)
	return nil
}

func (a *App) Unfocus(context.Context, []string) error {
	if !a.focus.Active() {
		printlnFn("Hyperfocus is not running.")
		return nil
	}
	a.focus.Stop()
	printlnFn("Hyperfocus stopped with", a.focus.Remaining(), "left.")
	return nil
}
