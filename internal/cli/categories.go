package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) Categories(ctx context.Context, _ []string) error {
	cats, err := a.tasks.Categories(ctx)
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		printlnFn("No categories.")
		return nil
	}
	for _, c := range cats {
		printlnFn(c.Name)
	}
	return nil
}

func (a *App) AddCategory(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("addcat <name>")
	}
	c, err := a.tasks.AddCategory(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	a.afterSave(ctx)
	printlnFn("Added category", c.Name)
	return nil
}

func (a *App) RenameCategory(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usage("renamecat <old> <new>")
	}
	c, err := a.tasks.RenameCategory(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	a.afterSave(ctx)
	printlnFn(fmt.Sprintf("Renamed %s to %s", args[0], c.Name))
	return nil
}

func (a *App) DeleteCategory(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("delcat <name>")
	}
	name := strings.Join(args, " ")
	if err := a.tasks.DeleteCategory(ctx, name); err != nil {
		return err
	}
	a.afterSave(ctx)
	printlnFn("Deleted category", name)
	return nil
}
