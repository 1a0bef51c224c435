//go:build unix || linux || darwin

// flock(2) implementation for Unix platforms.
package strata

import (
	"errors"
	"syscall"
)

func (l *fileLock) lock() error {
	// LOCK_NB so a held lock reports immediately instead of blocking.
	err := syscall.Flock(int(l.f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
	if errors.Is(err, syscall.EWOULDBLOCK) {
		return ErrLocked
	}
	return err
}

func (l *fileLock) unlock() error {
	return syscall.Flock(int(l.f.Fd()), syscall.LOCK_UN)
}
