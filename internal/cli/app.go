package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/adhdo-app/adhdo/internal/config"
	"github.com/adhdo-app/adhdo/internal/events"
	"github.com/adhdo-app/adhdo/internal/feed"
	"github.com/adhdo-app/adhdo/internal/filex"
	"github.com/adhdo-app/adhdo/internal/hyperfocus"
	"github.com/adhdo-app/adhdo/internal/logging"
	"github.com/adhdo-app/adhdo/internal/models"
	"github.com/adhdo-app/adhdo/internal/scheduler"
	"github.com/adhdo-app/adhdo/internal/search"
	"github.com/adhdo-app/adhdo/internal/services"
	"github.com/adhdo-app/adhdo/internal/store"
	"golang.org/x/term"
)

// isTerminal is a test seam for term.IsTerminal on stdin.
var isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

const busBuffer = 64

type App struct {
	cfg        *config.Config
	log        logging.Logger
	repos      *store.Repositories
	bus        *events.Bus
	tasks      *services.TaskStore
	bookmarks  *services.BookmarkService
	settings   *services.SettingsService
	focus      *hyperfocus.Session
	search     *search.Index
	randomizer *scheduler.Randomizer
	reader     *bufio.Reader
	out        io.Writer

	// rng overrides the feed's random source; nil means entropy.
	rng feed.Rand

	mu      sync.Mutex
	feed    *feed.Feed
	closing chan struct{}
	closed  bool
}

// NewApp opens the database at cfg.DatabasePath and wires the application.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	if err := filex.EnsureParentDir(cfg.DatabasePath); err != nil {
		return nil, err
	}
	repos, err := store.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}
	a, err := newApp(ctx, cfg, repos, log, nil, os.Stdin, os.Stdout)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}
	return a, nil
}

func newApp(ctx context.Context, cfg *config.Config, repos *store.Repositories, log logging.Logger, rng feed.Rand, in io.Reader, out io.Writer) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}
	catalog := search.DefaultCatalog()
	if cfg.SearchCatalogPath != "" {
		var err error
		if catalog, err = search.LoadCatalog(cfg.SearchCatalogPath); err != nil {
			return nil, err
		}
	}
	bus := events.NewBus(busBuffer)

	a := &App{
		cfg:       cfg,
		log:       log,
		repos:     repos,
		bus:       bus,
		tasks:     services.NewTaskStore(repos.Tasks, repos.Categories, bus, log),
		bookmarks: services.NewBookmarkService(repos.Bookmarks),
		settings:  services.NewSettingsService(repos.Settings),
		focus:     hyperfocus.NewSession(nil),
		search:    search.NewIndex(catalog, feed.NewRand()),
		reader:    bufio.NewReader(in),
		out:       out,
		rng:       rng,
		closing:   make(chan struct{}),
	}

	if fs, err := a.settings.Feed(ctx); err != nil {
		log.Warn(ctx, "could not load saved feed settings", "err", err)
	} else {
		cfg.ApplyFeedSettings(fs)
	}

	a.feed = feed.New(ctx, a.tasks, models.FilterTodo, a.feedOptions())

	if cfg.RandomizeSpec != "" {
		r, err := scheduler.NewRandomizer(cfg.RandomizeSpec, a, log)
		if err != nil {
			a.feed.Close()
			bus.Close()
			return nil, err
		}
		a.randomizer = r
	}
	return a, nil
}

func (a *App) feedOptions() feed.Options {
	return feed.Options{
		Params: feed.Params{
			AdProbability:         a.cfg.AdProbability,
			VisibilityProbability: a.cfg.VisibilityProbability,
			Shuffle:               a.cfg.Shuffle,
		},
		Rand:   a.rng,
		Logger: a.log,
	}
}

func (a *App) currentFeed() *feed.Feed {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.feed
}

// Randomize reshuffles the current feed. The scheduler calls it.
func (a *App) Randomize() {
	a.currentFeed().Randomize()
}

// rebuildFeed replaces the feed after a settings change, keeping the filter.
func (a *App) rebuildFeed(ctx context.Context) {
	a.mu.Lock()
	old := a.feed
	a.feed = feed.New(ctx, a.tasks, old.Filter(), a.feedOptions())
	a.mu.Unlock()
	old.Close()
}

// Run starts the randomizer and serves commands until EOF or "exit".
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to ADHDo (type 'help' for commands)")
	if a.randomizer != nil {
		a.randomizer.Start()
	}
	runREPL(ctx, a, a.prompt, a.reader)
}

func (a *App) prompt() string {
	if !isTerminal() {
		return ""
	}
	status := a.currentFeed().Filter().Title()
	if a.focus.Active() {
		status += fmt.Sprintf(", focus %s", a.focus.Remaining())
	}
	return fmt.Sprintf("adhdo (%s)> ", status)
}

// Close stops background work and releases the database.
func (a *App) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	close(a.closing)
	f := a.feed
	a.mu.Unlock()

	if a.randomizer != nil {
		a.randomizer.Stop()
	}
	a.focus.Stop()
	f.Close()
	a.bus.Close()
	return a.repos.Close()
}
