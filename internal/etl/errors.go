package etl

import (
	"errors"
	"fmt"
)

// ErrStorageUnavailable covers connection or query failures against the
// catalog store. It aborts the current phase; work committed by an earlier
// phase stays persisted.
var ErrStorageUnavailable = errors.New("catalog storage unavailable")

// PartialSyncError is what a failed sync run surfaces to the scheduler.
// It wraps the underlying fetch or storage error and names the phase that
// broke, so logs can tell a dead source from a dead database.
type PartialSyncError struct {
	Phase string // "categories" or "products"
	Err   error
}

func (e *PartialSyncError) Error() string {
	return fmt.Sprintf("sync aborted in %s phase: %v", e.Phase, e.Err)
}

func (e *PartialSyncError) Unwrap() error { return e.Err }

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
