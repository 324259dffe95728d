package plans

import (
	"context"

	"switchplan-backend/internal/catalog"
)

// Service shapes catalog snapshots for the storefront.
type Service struct {
	Catalog *catalog.Holder
}

// Featured returns the postpaid plans.
func (s *Service) Featured() []ListedPlan {
	return s.list(func(p catalog.Plan) bool { return p.Postpaid() })
}

// Prepaid returns the prepaid plans.
func (s *Service) Prepaid() []ListedPlan {
	return s.list(func(p catalog.Plan) bool { return p.Prepaid() })
}

// All returns every plan.
func (s *Service) All() []ListedPlan {
	return s.list(func(catalog.Plan) bool { return true })
}

// Reload re-reads the catalog source and swaps the snapshot. On failure the
// previous snapshot stays live.
func (s *Service) Reload(ctx context.Context) error {
	return s.Catalog.Reload(ctx)
}

func (s *Service) list(keep func(catalog.Plan) bool) []ListedPlan {
	snapshot := s.Catalog.Snapshot()
	out := make([]ListedPlan, 0, snapshot.Len())
	for _, p := range snapshot.All() {
		if keep(p) {
			out = append(out, toListed(p))
		}
	}
	return out
}
