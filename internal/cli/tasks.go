package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/adhdo-app/adhdo/internal/common"
	"github.com/adhdo-app/adhdo/internal/models"
	"github.com/adhdo-app/adhdo/internal/services"
)

func usage(s string) error {
	return fmt.Errorf("usage: %s", s)
}

// afterSave rebuilds the feed right away so the next command sees the change
// without waiting for the bus.
func (a *App) afterSave(ctx context.Context) {
	a.currentFeed().Refresh(ctx)
}

func (a *App) resolveTask(ctx context.Context, args []string, cmd string) (string, error) {
	if len(args) == 0 {
		return "", usage(cmd + " <id>")
	}
	return a.tasks.ResolveID(ctx, args[0])
}

func (a *App) List(ctx context.Context, _ []string) error {
	f := a.currentFeed()
	tasks, err := a.tasks.Fetch(ctx, f.Filter())
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("%s: %d tasks", f.Filter().Title(), len(tasks)))
	for _, t := range tasks {
		printlnFn(formatTask(t))
	}
	return nil
}

func (a *App) Add(ctx context.Context, args []string) error {
	var (
		title, category string
		subtitle        *string
	)
	if len(args) > 0 {
		title = strings.Join(args, " ")
	} else {
		var err error
		if title, err = GetSimpleText(a.reader, "Title", a.out); err != nil {
			return err
		}
		sub, err := GetSimpleText(a.reader, "Subtitle (optional)", a.out)
		if err != nil {
			return err
		}
		if sub != "" {
			subtitle = &sub
		}
		if category, err = GetSimpleText(a.reader, "Category (optional)", a.out); err != nil {
			return err
		}
	}

	t, err := a.tasks.AddTask(ctx, title, subtitle, category)
	if err != nil {
		return err
	}
	a.afterSave(ctx)
	printlnFn("Added", formatTask(t))
	return nil
}

func (a *App) setDone(ctx context.Context, args []string, done bool, cmd string) error {
	id, err := a.resolveTask(ctx, args, cmd)
	if err != nil {
		return err
	}
	t, err := a.tasks.SetDone(ctx, id, done)
	if err != nil {
		return err
	}
	a.afterSave(ctx)
	printlnFn(formatTask(t))
	return nil
}

func (a *App) Done(ctx context.Context, args []string) error {
	return a.setDone(ctx, args, true, "done")
}

func (a *App) Undo(ctx context.Context, args []string) error {
	return a.setDone(ctx, args, false, "undo")
}

// Fav toggles the favorite flag.
func (a *App) Fav(ctx context.Context, args []string) error {
	id, err := a.resolveTask(ctx, args, "fav")
	if err != nil {
		return err
	}
	cur, err := a.tasks.GetTask(ctx, id)
	if err != nil {
		return err
	}
	t, err := a.tasks.SetFavorite(ctx, id, !cur.Favorite)
	if err != nil {
		return err
	}
	a.afterSave(ctx)
	printlnFn(formatTask(t))
	return nil
}

// Edit prompts for each field. An empty answer keeps the current value and
// "-" clears subtitle or category.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := a.resolveTask(ctx, args, "edit")
	if err != nil {
		return err
	}
	cur, err := a.tasks.GetTask(ctx, id)
	if err != nil {
		return err
	}
	printlnFn(formatTask(cur))

	var p services.TaskPatch
	title, err := GetSimpleText(a.reader, "Title (empty keeps current)", a.out)
	if err != nil {
		return err
	}
	if title != "" {
		p.Title = &title
	}
	sub, err := GetSimpleText(a.reader, "Subtitle (empty keeps, - clears)", a.out)
	if err != nil {
		return err
	}
	p.Subtitle = clearable(sub)
	cat, err := GetSimpleText(a.reader, "Category (empty keeps, - clears)", a.out)
	if err != nil {
		return err
	}
	p.Category = clearable(cat)

	t, err := a.tasks.UpdateTask(ctx, id, p)
	if err != nil {
		return err
	}
	a.afterSave(ctx)
	printlnFn("Updated", formatTask(t))
	return nil
}

func clearable(answer string) *string {
	switch answer {
	case "":
		return nil
	case "-":
		empty := ""
		return &empty
	default:
		return &answer
	}
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.resolveTask(ctx, args, "delete")
	if err != nil {
		return err
	}
	if err := a.tasks.DeleteTask(ctx, id); err != nil {
		return err
	}
	a.afterSave(ctx)
	printlnFn("Deleted", shortID(id))
	return nil
}

// Filter lists the selectable filters, or switches to the one named.
func (a *App) Filter(ctx context.Context, args []string) error {
	f := a.currentFeed()
	if len(args) == 0 {
		cats, err := a.tasks.Categories(ctx)
		if err != nil {
			return err
		}
		for _, tf := range models.DefaultFilters(cats) {
			mark := "  "
			if tf == f.Filter() {
				mark = "> "
			}
			name := strings.ToLower(tf.Title())
			if tf.Kind == models.FilterKindCategory {
				name = "category:" + tf.CategoryName
			}
			printlnFn(mark + name)
		}
		return nil
	}

	tf, err := models.ParseTaskFilter(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if tf.Kind == models.FilterKindCategory && tf.CategoryName != "" {
		cats, err := a.tasks.Categories(ctx)
		if err != nil {
			return err
		}
		if !hasCategory(cats, tf.CategoryName) {
			return fmt.Errorf("%w: no category %q", common.ErrUnknownFilter, tf.CategoryName)
		}
	}
	f.RefreshWith(ctx, tf)
	printlnFn("Filter:", tf.Title())
	return nil
}

func hasCategory(cats []models.Category, name string) bool {
	for _, c := range cats {
		if c.Name == name {
			return true
		}
	}
	return false
}
