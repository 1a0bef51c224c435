// OS-level locking for single-writer enforcement.
//
// The store is a single-process object; a second process appending to
// the same directory would corrupt the generation bookkeeping. Open
// therefore takes a non-blocking exclusive lock on a dedicated lock
// file and fails fast with ErrLocked instead of waiting. Segment
// discovery ignores the lock file like any other non-segment entry.
package strata

import "os"

// lockFileName is the lock file created inside the store directory.
const lockFileName = "strata.lock"

// fileLock holds the OS lock for the lifetime of the Store.
type fileLock struct {
	f *os.File
}

// acquireLock claims the store directory for this process.
func acquireLock(root *os.Root) (*fileLock, error) {
	f, err := root.OpenFile(lockFileName, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}
	l := &fileLock{f: f}
	if err := l.lock(); err != nil {
		f.Close()
		return nil, err
	}
	return l, nil
}

// release drops the lock and closes the lock file. The file itself is
// left in place for the next opener.
func (l *fileLock) release() error {
	err := l.unlock()
	if cerr := l.f.Close(); err == nil {
		err = cerr
	}
	return err
}
