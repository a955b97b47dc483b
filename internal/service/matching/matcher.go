package matching

import (
	"context"
	"time"

	"transportmarket/internal/domain"
)

// Matcher computes the set of couriers eligible for notification about a
// newly created order. It is a pure read: a courier qualifies when any of
// their declared zones covers the pickup or the delivery country. Matching
// is deliberately country-granularity; declared region/city narrowing is
// stored but not consulted.
type Matcher struct {
	repo             coverageRepository
	operationTimeout time.Duration
}

// NewMatcher creates and configures a Matcher.
func NewMatcher(r coverageRepository, timeout time.Duration) *Matcher {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Matcher{repo: r, operationTimeout: timeout}
}

// Match returns the deduplicated courier identities covering the order's
// pickup or delivery country. No ordering is guaranteed. A store failure
// aborts the whole notification step; there is no retry here.
func (m *Matcher) Match(ctx context.Context, o domain.Order) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.operationTimeout)
	defer cancel()

	countries := []string{o.Pickup.Country}
	if o.Delivery.Country != o.Pickup.Country {
		countries = append(countries, o.Delivery.Country)
	}

	ids, err := m.repo.CouriersByCountries(ctx, countries)
	if err != nil {
		return nil, err
	}

	// the repository already deduplicates, but callers may swap in sources
	// that do not
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
