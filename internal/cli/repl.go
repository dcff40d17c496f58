package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/adhdo-app/adhdo/internal/common"
)

// printlnFn and printFn are test seams for user-facing output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface is the command surface the REPL dispatches to. *App satisfies
// it; tests use a recording stub.
type execIface interface {
	List(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Done(ctx context.Context, args []string) error
	Undo(ctx context.Context, args []string) error
	Fav(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Filter(ctx context.Context, args []string) error
	Feed(ctx context.Context, args []string) error
	MPH(ctx context.Context, args []string) error
	RandomizeFeed(ctx context.Context, args []string) error
	Categories(ctx context.Context, args []string) error
	AddCategory(ctx context.Context, args []string) error
	RenameCategory(ctx context.Context, args []string) error
	DeleteCategory(ctx context.Context, args []string) error
	Bookmarks(ctx context.Context, args []string) error
	AddBookmark(ctx context.Context, args []string) error
	RenameBookmark(ctx context.Context, args []string) error
	DeleteBookmark(ctx context.Context, args []string) error
	Focus(ctx context.Context, args []string) error
	Unfocus(ctx context.Context, args []string) error
	Settings(ctx context.Context, args []string) error
	Set(ctx context.Context, args []string) error
	Reset(ctx context.Context, args []string) error
	Reload(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	SearchCategory(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  tasks:      list, add, done, undo, fav, edit, delete, filter
  feed:       feed, mph, randomize
  categories: categories, addcat, renamecat, delcat
  bookmarks:  bookmarks, addbookmark, renamebookmark, delbookmark
  focus:      focus, unfocus
  search:     search, searchcat
  settings:   settings, set, reset, reload
  exit`

type handler func(execIface, context.Context, []string) error

var commands = map[string]handler{
	"list":           execIface.List,
	"l":              execIface.List,
	"add":            execIface.Add,
	"done":           execIface.Done,
	"undo":           execIface.Undo,
	"fav":            execIface.Fav,
	"edit":           execIface.Edit,
	"delete":         execIface.Delete,
	"filter":         execIface.Filter,
	"feed":           execIface.Feed,
	"mph":            execIface.MPH,
	"randomize":      execIface.RandomizeFeed,
	"categories":     execIface.Categories,
	"addcat":         execIface.AddCategory,
	"renamecat":      execIface.RenameCategory,
	"delcat":         execIface.DeleteCategory,
	"bookmarks":      execIface.Bookmarks,
	"addbookmark":    execIface.AddBookmark,
	"renamebookmark": execIface.RenameBookmark,
	"delbookmark":    execIface.DeleteBookmark,
	"focus":          execIface.Focus,
	"unfocus":        execIface.Unfocus,
	"settings":       execIface.Settings,
	"set":            execIface.Set,
	"reset":          execIface.Reset,
	"reload":         execIface.Reload,
	"search":         execIface.Search,
	"searchcat":      execIface.SearchCategory,
}

// runREPL reads one command per line from reader and dispatches it to a.
// promptFn is printed before each read when it returns a non-empty string.
// The loop ends on EOF, "exit" or "quit", or when ctx is cancelled.
//
// Handler errors are reported to the user and never end the loop.
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		if p := promptFn(); p != "" {
			printFn(p)
		}
		line, err := readLine(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				printlnFn("read error:", err)
			}
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help", "?":
			printlnFn(helpText)
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		h, ok := commands[cmd]
		if !ok {
			printlnFn(fmt.Sprintf("%s: %s (type 'help')", common.ErrUnknownCommand, cmd))
			continue
		}
		if err := h(a, ctx, args); err != nil {
			reportError(err)
		}
	}
}

func reportError(err error) {
	switch {
	case errors.Is(err, common.ErrNoChange):
		printlnFn("Nothing changed.")
	default:
		printlnFn("Error:", err)
	}
}
