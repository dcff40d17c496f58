// Package scheduler re-randomizes the regular feed on a cron schedule while
// the list is on screen.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/adhdo-app/adhdo/internal/logging"
	"github.com/robfig/cron/v3"
)

// DefaultSpec matches the thirty second refresh of the task list screen.
const DefaultSpec = "@every 30s"

// Randomizable is implemented by *feed.Feed.
type Randomizable interface {
	Randomize()
}

var parser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ParseSpec parses a standard five field expression, a six field expression
// with leading seconds, or a descriptor such as "@every 30s".
func ParseSpec(spec string) (cron.Schedule, error) {
	s, err := parser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("parse cron %q: %w", spec, err)
	}
	return s, nil
}

// Randomizer calls Randomize on its target at every activation of the
// schedule. Activations that overlap a still running call are skipped.
type Randomizer struct {
	cron   *cron.Cron
	spec   string
	log    logging.Logger
	mu     sync.Mutex
	state  int
	target Randomizable
}

const (
	stateIdle = iota
	stateRunning
	stateStopped
)

func NewRandomizer(spec string, target Randomizable, log logging.Logger) (*Randomizer, error) {
	if log == nil {
		log = logging.Nop()
	}
	log = log.With("component", "randomizer")

	cl := cronLogger{log: log}
	c := cron.New(
		cron.WithParser(parser),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	r := &Randomizer{cron: c, spec: spec, log: log, target: target}
	if _, err := c.AddFunc(spec, r.fire); err != nil {
		return nil, fmt.Errorf("parse cron %q: %w", spec, err)
	}
	return r, nil
}

func (r *Randomizer) fire() {
	r.log.Debug(context.Background(), "randomizing feed", "spec", r.spec)
	r.target.Randomize()
}

// Spec returns the schedule expression.
func (r *Randomizer) Spec() string { return r.spec }

// Start begins scheduling. It does nothing once the randomizer was stopped.
func (r *Randomizer) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != stateIdle {
		return
	}
	r.state = stateRunning
	r.cron.Start()
	r.log.Info(context.Background(), "randomizer started", "spec", r.spec)
}

// Stop halts scheduling and waits for a running activation to return. It is
// safe to call more than once.
func (r *Randomizer) Stop() {
	r.mu.Lock()
	if r.state == stateStopped {
		r.mu.Unlock()
		return
	}
	wasRunning := r.state == stateRunning
	r.state = stateStopped
	r.mu.Unlock()

	if wasRunning {
		<-r.cron.Stop().Done()
		r.log.Info(context.Background(), "randomizer stopped")
	}
}

// cronLogger routes cron's internal logging through logging.Logger.
type cronLogger struct {
	log logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(context.Background(), msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(context.Background(), msg, append(keysAndValues, "err", err)...)
}
