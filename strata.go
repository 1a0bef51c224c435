// Core store type and lifecycle operations.
//
// Open discovers the existing segments, replays them oldest-first to
// rebuild the index, and starts a fresh active segment one generation
// past the newest. The Store owns every file handle for its lifetime:
// the active segment's writer, one reader per segment, and the lock
// file. It is a single-caller object — no internal goroutines, and not
// safe for concurrent use.
package strata

import (
	"os"

	"go.uber.org/zap"
)

// CompactionThreshold is the default stale-byte budget. Once overwritten
// and removed records account for more than this many bytes, the next
// Set triggers compaction.
const CompactionThreshold = 1024 * 1024

// Config holds store configuration options. The zero value is a working
// default.
type Config struct {
	CompactionThreshold int64              // stale-byte budget (default CompactionThreshold)
	Compression         bool               // pack large values with zstd (see compress.go)
	SyncWrites          bool               // fsync after every flushed mutation
	Logger              *zap.SugaredLogger // nil disables logging
}

// Store is an open key-value store. Not safe for concurrent use.
type Store struct {
	root        *os.Root              // sandboxed access to the store directory
	cfg         Config                //
	log         *zap.SugaredLogger    //
	lock        *fileLock             // exclusive hold on the directory
	writer      *posWriter            // active segment
	readers     map[uint64]*posReader // one per live generation
	index       map[string]commandPos // key -> latest live Set record
	uncompacted int64                 // stale bytes across all segments
	currentGen  uint64                // generation of the active segment
	closed      bool                  //
}

// Open opens the store in dir, creating the directory if needed. The
// whole history is replayed before Open returns, so a partially written
// trailing record in any segment fails the open with ErrCorruptRecord.
func Open(dir string, cfg Config) (*Store, error) {
	if cfg.CompactionThreshold == 0 {
		cfg.CompactionThreshold = CompactionThreshold
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, err
	}
	lock, err := acquireLock(root)
	if err != nil {
		root.Close()
		return nil, err
	}

	s := &Store{
		root:    root,
		cfg:     cfg,
		log:     cfg.Logger,
		lock:    lock,
		readers: make(map[uint64]*posReader),
		index:   make(map[string]commandPos),
	}

	gens, err := sortedGenerations(root)
	if err != nil {
		s.teardown()
		return nil, err
	}
	for _, gen := range gens {
		f, err := root.Open(logName(gen))
		if err != nil {
			s.teardown()
			return nil, err
		}
		reader, err := newPosReader(f)
		if err != nil {
			f.Close()
			s.teardown()
			return nil, err
		}
		stale, err := s.load(gen, reader)
		if err != nil {
			reader.Close()
			s.teardown()
			return nil, err
		}
		s.uncompacted += stale
		s.readers[gen] = reader
	}

	var last uint64
	if len(gens) > 0 {
		last = gens[len(gens)-1]
	}
	s.currentGen = last + 1
	writer, err := s.newLogFile(s.currentGen)
	if err != nil {
		s.teardown()
		return nil, err
	}
	s.writer = writer

	s.log.Infow("store opened",
		"dir", dir,
		"replayed", len(gens),
		"activeGen", s.currentGen,
		"keys", len(s.index),
		"staleBytes", s.uncompacted,
	)
	return s, nil
}

// Close flushes the active segment and releases every handle the store
// owns, including the directory lock. The store cannot be used again.
func (s *Store) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	s.log.Infow("store closed", "activeGen", s.currentGen, "keys", len(s.index))
	return s.teardown()
}

// teardown releases all handles, reporting the first failure. Also used
// to unwind a partially constructed store on Open errors.
func (s *Store) teardown() error {
	var first error
	if s.writer != nil {
		if err := s.writer.Close(); err != nil && first == nil {
			first = err
		}
	}
	for _, r := range s.readers {
		if err := r.Close(); err != nil && first == nil {
			first = err
		}
	}
	if err := s.lock.release(); err != nil && first == nil {
		first = err
	}
	if err := s.root.Close(); err != nil && first == nil {
		first = err
	}
	return first
}

// flush drains the write buffer so the record is visible through the
// segment readers, forcing it to disk when SyncWrites is set.
func (s *Store) flush() error {
	if s.cfg.SyncWrites {
		return s.writer.Sync()
	}
	return s.writer.Flush()
}
