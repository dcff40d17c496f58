package feed

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/adhdo-app/adhdo/internal/events"
	"github.com/adhdo-app/adhdo/internal/logging"
	"github.com/adhdo-app/adhdo/internal/models"
)

// Store is the task source a Feed reads from.
type Store interface {
	// Fetch returns the tasks matching filter.
	Fetch(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	// Subscribe registers handler for change notifications and returns an
	// idempotent unsubscribe function.
	Subscribe(handler events.Subscriber) (unsubscribe func())
}

// Options configures a Feed. Zero Catalog, Rand and Logger fields fall back
// to DefaultCatalog, NewRand and logging.Nop.
type Options struct {
	Params
	Catalog Catalog
	Rand    Rand
	Logger  logging.Logger
}

// DefaultOptions matches the task list screen: 25% adverts, completed tasks
// visible 75% of the time, shuffled.
func DefaultOptions() Options {
	return Options{Params: Params{AdProbability: 25, VisibilityProbability: 75, Shuffle: true}}
}

// Snapshot is a consistent copy of the feed state. Version increases with
// every rebuild.
type Snapshot struct {
	Version uint64
	Filter  models.TaskFilter
	Tasks   []models.Task
	Regular []Element
	MPH     []Element
}

// Observer is called after every rebuild, in rebuild order. It may read the
// feed but must not call Refresh, RefreshWith or Randomize synchronously.
type Observer func(Snapshot)

// Feed owns a task snapshot and the two projections derived from it.
//
// All rebuilds are serialized by one mutex. Store notifications are coalesced
// into a single pending signal that a worker goroutine turns into a Refresh,
// so a burst of saves causes at most one extra rebuild.
type Feed struct {
	store   Store
	params  Params
	catalog Catalog
	log     logging.Logger
	baseCtx context.Context

	mu      sync.Mutex
	rng     Rand
	filter  models.TaskFilter
	tasks   []models.Task
	regular []Element
	mph     []Element
	version uint64

	notifyMu  sync.Mutex
	obsMu     sync.Mutex
	observers map[int]Observer
	nextObs   int

	signal      chan struct{}
	done        chan struct{}
	closed      atomic.Bool
	closeOnce   sync.Once
	unsubscribe func()
	wg          sync.WaitGroup
}

// New fetches the tasks matching filter, builds both projections and starts
// listening for store changes. Call Close to stop listening.
func New(ctx context.Context, store Store, filter models.TaskFilter, opts Options) *Feed {
	f := &Feed{
		store:     store,
		params:    opts.Params,
		catalog:   opts.Catalog,
		log:       opts.Logger,
		rng:       opts.Rand,
		filter:    filter,
		baseCtx:   context.WithoutCancel(ctx),
		observers: make(map[int]Observer),
		signal:    make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
	if len(f.catalog) == 0 {
		f.catalog = DefaultCatalog()
	}
	if f.rng == nil {
		f.rng = NewRand()
	}
	if f.log == nil {
		f.log = logging.Nop()
	}
	f.log = f.log.With("component", "feed")

	f.mu.Lock()
	f.rebuildLocked(ctx)
	f.mu.Unlock()

	f.unsubscribe = store.Subscribe(f.onStoreChange)
	f.wg.Add(1)
	go f.run()

	return f
}

func (f *Feed) onStoreChange(events.Event) {
	if f.closed.Load() {
		return
	}
	select {
	case f.signal <- struct{}{}:
	default:
	}
}

func (f *Feed) run() {
	defer f.wg.Done()
	for {
		select {
		case <-f.done:
			return
		case <-f.signal:
			if f.closed.Load() {
				return
			}
			f.Refresh(f.baseCtx)
		}
	}
}

// Refresh re-fetches with the current filter and rebuilds both projections.
func (f *Feed) Refresh(ctx context.Context) {
	f.mu.Lock()
	f.rebuildLocked(ctx)
	f.publishLocked()
}

// RefreshWith replaces the filter, then behaves like Refresh.
func (f *Feed) RefreshWith(ctx context.Context, filter models.TaskFilter) {
	f.mu.Lock()
	f.filter = filter
	f.rebuildLocked(ctx)
	f.publishLocked()
}

// Randomize rebuilds only the regular projection from the tasks already in
// memory. The MPH projection is left untouched.
func (f *Feed) Randomize() {
	f.mu.Lock()
	f.regular = BuildRegular(f.tasks, f.params, f.catalog, f.rng)
	f.version++
	f.log.Debug(f.baseCtx, "feed randomized", "version", f.version, "regular", len(f.regular))
	f.publishLocked()
}

func (f *Feed) rebuildLocked(ctx context.Context) {
	tasks, err := f.store.Fetch(ctx, f.filter)
	if err != nil {
		f.log.Warn(ctx, "task fetch failed, showing empty feed", "filter", f.filter.String(), "err", err)
		tasks = []models.Task{}
	}
	f.tasks = tasks
	f.mph = BuildMPH(tasks)
	f.regular = BuildRegular(tasks, f.params, f.catalog, f.rng)
	f.version++

	c := Count(f.regular)
	f.log.Debug(ctx, "feed rebuilt",
		"version", f.version, "filter", f.filter.String(), "tasks", len(tasks),
		"content", c.Content, "invisible", c.Invisible, "adverts", c.Adverts)
}

// publishLocked hands the fresh snapshot to observers. It must be called with
// mu held and releases it; notifyMu keeps observer calls in rebuild order.
func (f *Feed) publishLocked() {
	snap := f.snapshotLocked()
	f.notifyMu.Lock()
	f.mu.Unlock()
	defer f.notifyMu.Unlock()

	f.obsMu.Lock()
	observers := make([]Observer, 0, len(f.observers))
	for _, o := range f.observers {
		observers = append(observers, o)
	}
	f.obsMu.Unlock()

	for _, o := range observers {
		o(snap)
	}
}

func (f *Feed) snapshotLocked() Snapshot {
	return Snapshot{
		Version: f.version,
		Filter:  f.filter,
		Tasks:   slices.Clone(f.tasks),
		Regular: slices.Clone(f.regular),
		MPH:     slices.Clone(f.mph),
	}
}

// Snapshot returns a copy of the current state.
func (f *Feed) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *Feed) Regular() []Element { return f.Snapshot().Regular }

func (f *Feed) MPH() []Element { return f.Snapshot().MPH }

func (f *Feed) Tasks() []models.Task { return f.Snapshot().Tasks }

func (f *Feed) Filter() models.TaskFilter {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filter
}

// Params returns the probabilities and shuffle flag the feed was built with.
func (f *Feed) Params() Params { return f.params }

// Observe registers o for future rebuilds and returns a cancel function.
func (f *Feed) Observe(o Observer) (cancel func()) {
	f.obsMu.Lock()
	id := f.nextObs
	f.nextObs++
	f.observers[id] = o
	f.obsMu.Unlock()

	return func() {
		f.obsMu.Lock()
		delete(f.observers, id)
		f.obsMu.Unlock()
	}
}

// Close unsubscribes from the store and stops the refresh worker. It is
// idempotent; notifications arriving during or after Close are ignored.
func (f *Feed) Close() {
	f.closeOnce.Do(func() {
		f.closed.Store(true)
		if f.unsubscribe != nil {
			f.unsubscribe()
		}
		close(f.done)
		f.wg.Wait()
	})
}
