// Compaction: rewriting live records and retiring old segments.
package strata

import (
	"io"
	"maps"
	"slices"
)

// Compact rewrites every live record into a fresh segment and deletes
// all older generations. Set calls it automatically past the stale-byte
// budget; it is exported so callers can force reclamation. A failed
// compaction leaves the store in an undefined state — drop it and
// reopen.
func (s *Store) Compact() error {
	if s.closed {
		return ErrClosed
	}
	return s.compact()
}

func (s *Store) compact() error {
	compactionGen := s.currentGen + 1
	s.currentGen += 2

	// The active segment skips a generation past the compaction output,
	// so the compacted segment is closed to appends the moment it is
	// complete and new writes stream to a fresh file.
	if err := s.writer.Close(); err != nil {
		return err
	}
	writer, err := s.newLogFile(s.currentGen)
	if err != nil {
		return err
	}
	s.writer = writer

	cw, err := s.newLogFile(compactionGen)
	if err != nil {
		return err
	}

	s.log.Debugw("compaction started",
		"gen", compactionGen,
		"keys", len(s.index),
		"staleBytes", s.uncompacted,
	)

	// Live records are copied byte-for-byte in key order, so the
	// compacted segment's layout is deterministic for a given index.
	for _, key := range slices.Sorted(maps.Keys(s.index)) {
		cp := s.index[key]
		reader := s.reader(cp.gen)
		if reader.pos != cp.pos {
			if _, err := reader.Seek(cp.pos, io.SeekStart); err != nil {
				return err
			}
		}
		newPos := cw.pos
		if _, err := io.CopyN(cw, reader, cp.len); err != nil {
			return err
		}
		s.index[key] = commandPos{gen: compactionGen, pos: newPos, len: cp.len}
	}
	if s.cfg.SyncWrites {
		if err := cw.Sync(); err != nil {
			return err
		}
	}
	if err := cw.Close(); err != nil {
		return err
	}

	for gen, reader := range s.readers {
		if gen >= compactionGen {
			continue
		}
		if err := reader.Close(); err != nil {
			return err
		}
		delete(s.readers, gen)
		if err := s.root.Remove(logName(gen)); err != nil {
			return err
		}
	}

	reclaimed := s.uncompacted
	s.uncompacted = 0
	s.log.Infow("compaction finished",
		"gen", compactionGen,
		"activeGen", s.currentGen,
		"keys", len(s.index),
		"reclaimedBytes", reclaimed,
	)
	return nil
}
