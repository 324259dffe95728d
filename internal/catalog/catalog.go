package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Catalog is an immutable snapshot of plan offerings. It is safe to share
// across sessions without synchronization.
type Catalog struct {
	plans  []Plan
	byCode map[string]Plan
}

// Source loads the full set of plan records from a backing store.
type Source interface {
	Load(ctx context.Context) ([]Plan, error)
}

// New validates the plan set and builds a snapshot. Plan codes must be unique.
func New(plans []Plan) (*Catalog, error) {
	byCode := make(map[string]Plan, len(plans))
	kept := make([]Plan, 0, len(plans))
	for _, p := range plans {
		code := strings.TrimSpace(p.Code)
		if code == "" {
			return nil, fmt.Errorf("plan %q/%q has empty plan code", p.Carrier, p.PlanName)
		}
		if _, exists := byCode[code]; exists {
			return nil, fmt.Errorf("duplicate plan code %q", code)
		}
		p.Code = code
		byCode[code] = p
		kept = append(kept, p)
	}
	return &Catalog{plans: kept, byCode: byCode}, nil
}

// All returns every plan in load order. Callers must not mutate the result.
func (c *Catalog) All() []Plan {
	return c.plans
}

// Len returns the number of plans in the snapshot.
func (c *Catalog) Len() int {
	return len(c.plans)
}

// ByCode looks up a plan by exact code match. Codes are compared as stored;
// no case folding and no fuzzy matching.
func (c *Catalog) ByCode(code string) (Plan, bool) {
	p, ok := c.byCode[code]
	return p, ok
}

// Holder hands out the current catalog snapshot and allows an atomic swap on
// reload. Readers always see a complete snapshot, never a partial load.
type Holder struct {
	mu      sync.RWMutex
	current *Catalog
	source  Source
}

// NewHolder loads the initial snapshot from source. A load failure here is
// fatal to the caller: the process must not start without a catalog.
func NewHolder(ctx context.Context, source Source) (*Holder, error) {
	h := &Holder{source: source}
	if err := h.Reload(ctx); err != nil {
		return nil, err
	}
	return h, nil
}

// Snapshot returns the current catalog.
func (h *Holder) Snapshot() *Catalog {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Reload re-reads the source and swaps the snapshot. On failure the previous
// snapshot stays in place.
func (h *Holder) Reload(ctx context.Context) error {
	plans, err := h.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load plans: %w", err)
	}
	next, err := New(plans)
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}
	h.mu.Lock()
	h.current = next
	h.mu.Unlock()
	return nil
}
