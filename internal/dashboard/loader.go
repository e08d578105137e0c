// Package dashboard selects and loads the operational summary over stores
// and vendors.
package dashboard

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Source fetches the three dashboard parts for one set of query params
type Source interface {
	Summary(ctx context.Context, params url.Values) (*Summary, error)
	Stores(ctx context.Context, params url.Values) ([]StoreRow, error)
	Vendors(ctx context.Context, params url.Values) ([]VendorRow, error)
}

// Loader fetches complete snapshots
type Loader struct {
	source Source
	logger *zap.Logger
	now    func() time.Time
}

// NewLoader creates a new dashboard loader
func NewLoader(source Source, logger *zap.Logger) *Loader {
	return &Loader{
		source: source,
		logger: logger,
		now:    time.Now,
	}
}

// Load issues the summary, store and vendor fetches concurrently for the
// same filter. Any failure fails the whole snapshot; partial results are
// never returned.
func (l *Loader) Load(ctx context.Context, filter Filter) (*Snapshot, error) {
	g, gctx := errgroup.WithContext(ctx)

	var (
		summary *Summary
		stores  []StoreRow
		vendors []VendorRow
	)

	// each fetch gets its own copy of the params
	g.Go(func() error {
		var err error
		summary, err = l.source.Summary(gctx, filter.Params())
		if err != nil {
			return fmt.Errorf("summary: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		stores, err = l.source.Stores(gctx, filter.Params())
		if err != nil {
			return fmt.Errorf("stores: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		vendors, err = l.source.Vendors(gctx, filter.Params())
		if err != nil {
			return fmt.Errorf("vendors: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		l.logger.Warn("Failed to load dashboard",
			zap.String("marketplace_id", filter.MarketplaceID),
			zap.String("store_id", filter.StoreID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}

	snap := &Snapshot{
		Filter:   filter,
		Stores:   make([]StoreRow, 0, len(stores)),
		Vendors:  make([]VendorRow, 0, len(vendors)),
		LoadedAt: l.now(),
	}
	if summary != nil {
		snap.Summary = *summary
	}
	snap.Summary.Normalize()

	for _, s := range stores {
		s.Normalize()
		snap.Stores = append(snap.Stores, s)
	}
	for _, v := range vendors {
		v.Normalize()
		snap.Vendors = append(snap.Vendors, v)
	}

	return snap, nil
}
