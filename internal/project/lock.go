package project

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked reports that another fanvault process holds the project lock.
var ErrLocked = errors.New("project is locked by another process")

// Lock acquires the project's advisory lock, serializing fanvault's own
// long-running batches (download, update, build) against each other. It
// does not protect the individual file mutations from arbitrary concurrent
// writers. The caller must call the returned release function.
func (p *Project) Lock() (release func(), err error) {
	lock := flock.New(filepath.Join(p.Path, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire project lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, p.Path)
	}
	return func() { _ = lock.Unlock() }, nil
}
