package repositories

import (
	"context"

	"github.com/spems-app/spems_backend/internal/core/domain"
)

// RateSource fetches a fresh rate snapshot for a base currency from an
// external provider. Implementations classify failures as
// apperrors.ErrSourceUnavailable or apperrors.ErrSourceInvalidResponse.
type RateSource interface {
	Fetch(ctx context.Context, base string) (domain.RateSnapshot, error)
}

// RateCache is a TTL-bounded store of rate snapshots keyed by base currency.
// Lookup is a pure local read; Store replaces unconditionally.
type RateCache interface {
	Lookup(base string) (domain.RateSnapshot, bool)
	Store(base string, snapshot domain.RateSnapshot)
}

// FallbackSource produces static rate snapshots used when the live source
// fails. Snapshots are USD-based and freshly timestamped per call.
type FallbackSource interface {
	Snapshot() domain.RateSnapshot
}
