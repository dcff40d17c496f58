package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) Bookmarks(ctx context.Context, _ []string) error {
	list, err := a.bookmarks.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		printlnFn("No bookmarks.")
		return nil
	}
	for _, b := range list {
		printlnFn(fmt.Sprintf("%s  %s  %s", shortID(b.ID), b.Name, b.URL))
	}
	return nil
}

// AddBookmark takes the url as the last argument and the name from the rest.
func (a *App) AddBookmark(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usage("addbookmark <name> <url>")
	}
	name := strings.Join(args[:len(args)-1], " ")
	b, err := a.bookmarks.Add(ctx, name, args[len(args)-1])
	if err != nil {
		return err
	}
	printlnFn("Added bookmark", shortID(b.ID), b.Name)
	return nil
}

func (a *App) RenameBookmark(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usage("renamebookmark <id> <name>")
	}
	b, err := a.bookmarks.Rename(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	printlnFn("Renamed bookmark", shortID(b.ID), "to", b.Name)
	return nil
}

func (a *App) DeleteBookmark(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("delbookmark <id>")
	}
	if err := a.bookmarks.Delete(ctx, args[0]); err != nil {
		return err
	}
	printlnFn("Deleted bookmark", args[0])
	return nil
}
