package domain

import "context"

// ReservationRepository is the storage location holding the whole dataset.
//
// Load returns every record in stored order. A location that has never been
// used is initialised with an empty dataset (header only) before returning.
// A location that exists but cannot be decoded yields ErrCorruptStore.
//
// Save replaces the whole location with d. There is no locking: two callers
// doing Load/Append/Save at the same time lose one of the appends.
type ReservationRepository interface {
	Load(ctx context.Context) (Dataset, error)
	Save(ctx context.Context, d Dataset) error
}
