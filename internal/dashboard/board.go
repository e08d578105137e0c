package dashboard

import (
	"context"
	"sync"

	"github.com/jafarshop/storeconfig/internal/metrics"
	"github.com/jafarshop/storeconfig/pkg/errors"
)

// Board holds the selected filter and the last snapshot shown for it.
// Each filter change starts a new generation; a refresh that finishes
// after a change is discarded. A failed refresh keeps the previous
// snapshot.
type Board struct {
	loader *Loader

	mu      sync.Mutex
	filter  Filter
	gen     uint64
	current *Snapshot
}

// NewBoard creates a board with no filter applied
func NewBoard(loader *Loader) *Board {
	return &Board{loader: loader}
}

// Filter returns the selected filter
func (b *Board) Filter() Filter {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filter
}

// Snapshot returns the last snapshot accepted, nil before the first load
func (b *Board) Snapshot() *Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// SelectMarketplace selects a marketplace and resets the store filter
func (b *Board) SelectMarketplace(id string) Filter {
	return b.apply(func(f Filter) Filter { return f.SelectMarketplace(id) })
}

// SelectStore selects a store within the current marketplace
func (b *Board) SelectStore(id string) Filter {
	return b.apply(func(f Filter) Filter { return f.SelectStore(id) })
}

// Clear removes every filter
func (b *Board) Clear() Filter {
	return b.apply(func(f Filter) Filter { return f.Clear() })
}

func (b *Board) apply(transition func(Filter) Filter) Filter {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := transition(b.filter)
	if next != b.filter {
		b.filter = next
		b.gen++
	}
	return b.filter
}

// Refresh loads a snapshot for the current filter. It returns *errors.ErrStale
// when the filter changed while the load was in flight.
func (b *Board) Refresh(ctx context.Context) (*Snapshot, error) {
	b.mu.Lock()
	filter, gen := b.filter, b.gen
	b.mu.Unlock()

	snap, err := b.loader.Load(ctx, filter)

	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.gen {
		metrics.RecordDashboardLoad("stale")
		return nil, &errors.ErrStale{Generation: gen, Current: b.gen}
	}
	if err != nil {
		metrics.RecordDashboardLoad("failed")
		return nil, err
	}
	metrics.RecordDashboardLoad("ok")
	b.current = snap
	return snap, nil
}
