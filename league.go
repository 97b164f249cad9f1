package fantaleague

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"
)

// League runs the operations of the league office over a Catalog: contracts,
// ledgers and the reference entities. Every mutating operation is validated,
// applied in memory and then saved through the Repository before returning.
//
// A League is not safe for concurrent use: it assumes a single local writer.
type League struct {
	catalog *Catalog
	repo    Repository
	season  SeasonProvider
	clock   Clock
	ids     IDGenerator
}

// Option configures a League.
type Option func(*League)

// WithSeason sets the season provider. By default the season is the clock's year.
func WithSeason(s SeasonProvider) Option { return func(l *League) { l.season = s } }

// WithClock sets the clock used for signing timestamps and transaction dates.
func WithClock(c Clock) Option { return func(l *League) { l.clock = c } }

// WithIDs sets the identity generator.
func WithIDs(g IDGenerator) Option { return func(l *League) { l.ids = g } }

// New returns a League over an existing catalog. A nil repository disables
// persistence.
func New(c *Catalog, repo Repository, opts ...Option) *League {
	l := &League{catalog: c, repo: repo, clock: time.Now, ids: RandomIDs}
	for _, opt := range opts {
		opt(l)
	}
	if l.season == nil {
		l.season = ClockSeason(l.clock)
	}
	return l
}

// Open loads the catalog from repo. When nothing is stored yet the default
// catalog is created and saved. Budgets are then re-synced with the ledgers
// on a best effort basis.
func Open(ctx context.Context, repo Repository, opts ...Option) (*League, error) {
	l := New(nil, repo, opts...)
	c, err := repo.Load(ctx)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Println("no league data stored yet, starting from the default catalog")
		l.catalog = Default(l.clock())
		if err := l.commit(ctx); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		l.catalog = c
	}
	l.resync(ctx)
	return l, nil
}

// Catalog returns the league data. Callers must not modify it directly.
func (l *League) Catalog() *Catalog { return l.catalog }

// Season returns the current season.
func (l *League) Season() int { return l.season.CurrentSeason() }

// commit saves the catalog. The in-memory state is kept even when saving fails.
func (l *League) commit(ctx context.Context) error {
	if l.repo == nil {
		return nil
	}
	if err := l.repo.Save(ctx, l.catalog); err != nil {
		return fmt.Errorf("operation applied but not saved: %w", err)
	}
	return nil
}

// resync aligns budgets with ledgers and saves the result. Failures are
// logged, never returned.
func (l *League) resync(ctx context.Context) {
	if !l.catalog.SyncBudgets() {
		return
	}
	if err := l.commit(ctx); err != nil {
		log.Printf("budget re-sync not saved: %v", err)
	}
}

// ResetToDefault replaces the catalog with the default one.
func (l *League) ResetToDefault(ctx context.Context) error {
	l.catalog = Default(l.clock())
	return l.commit(ctx)
}
