// Package filelock provides advisory file locking so that concurrent agegate
// processes do not interleave writes to the config file or the activity log.
package filelock

import (
	"fmt"
	"os"
)

const lockFileMode = 0o600

// Lock is a held advisory lock. Release must be called when the critical
// section is done.
type Lock struct {
	f *os.File
}

// Acquire takes an exclusive advisory lock on the file at path, creating it
// if it does not exist. It blocks until the lock is available.
func Acquire(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFileMode) //nolint:gosec // lock file path from trusted source
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}

	if err := lockFile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("acquiring lock: %w", err)
	}
	return &Lock{f: f}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.f.Name()
}

// Release unlocks and closes the lock file.
func (l *Lock) Release() error {
	unlockErr := unlockFile(l.f)
	closeErr := l.f.Close()
	if unlockErr != nil {
		return unlockErr
	}
	return closeErr
}
