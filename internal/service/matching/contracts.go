package matching

import "context"

// coverageRepository defines storage operations required by the matcher.
type coverageRepository interface {
	CouriersByCountries(ctx context.Context, countries []string) ([]string, error)
}
