package domain

import "context"

// Source provides the anomaly dataset.
type Source interface {
	// Fetch loads and parses the dataset. Implementations may cache.
	Fetch(ctx context.Context) (Series, error)
}
