// Startup replay of a single segment.
//
// The loader streams a segment from offset 0 and applies each record to
// the index with last-write-wins semantics. It uses encoding/json's
// Decoder because InputOffset is the contract the whole store rests on:
// after each decode it reports the exact byte boundary of the record,
// which becomes the (offset, length) the index stores. The decode path
// for whole records stays on goccy (record.go).
package strata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// load replays one segment into the index and returns the number of
// stale bytes it contributed: records displaced by later Sets, records
// deleted by Removes, and the Remove records themselves.
func (s *Store) load(gen uint64, r *posReader) (int64, error) {
	pos, err := r.Seek(0, io.SeekStart)
	if err != nil {
		return 0, err
	}
	dec := json.NewDecoder(r)
	var stale int64
	for {
		var cmd Command
		err := dec.Decode(&cmd)
		if errors.Is(err, io.EOF) {
			return stale, nil
		}
		if err != nil {
			// A torn trailing record lands here too: a partial write
			// makes the segment unreadable and Open fails loudly.
			return stale, fmt.Errorf("replay %s at offset %d: %w", logName(gen), pos, ErrCorruptRecord)
		}
		newPos := dec.InputOffset()
		switch cmd.Op {
		case TypeSet:
			if old, ok := s.index[cmd.Key]; ok {
				stale += old.len
			}
			s.index[cmd.Key] = commandPos{gen: gen, pos: pos, len: newPos - pos}
		case TypeRemove:
			// A Remove with no live Set is tolerated: the record is
			// simply stale on arrival.
			if old, ok := s.index[cmd.Key]; ok {
				stale += old.len
				delete(s.index, cmd.Key)
			}
			stale += newPos - pos
		default:
			return stale, fmt.Errorf("replay %s at offset %d: op %d: %w", logName(gen), pos, cmd.Op, ErrCorruptRecord)
		}
		pos = newPos
	}
}
