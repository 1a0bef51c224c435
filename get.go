// Key retrieval and enumeration.
package strata

import (
	"fmt"
	"io"
	"maps"
	"slices"
)

// Get returns the value stored under key. The bool reports presence; a
// missing key is not an error. A hit costs one seek and one read of
// exactly the record's length in its segment.
func (s *Store) Get(key string) (string, bool, error) {
	if s.closed {
		return "", false, ErrClosed
	}
	cp, ok := s.index[key]
	if !ok {
		return "", false, nil
	}
	reader := s.reader(cp.gen)
	if _, err := reader.Seek(cp.pos, io.SeekStart); err != nil {
		return "", false, err
	}
	buf := make([]byte, cp.len)
	if _, err := io.ReadFull(reader, buf); err != nil {
		return "", false, err
	}
	cmd, err := decodeCommand(buf)
	if err != nil {
		return "", false, fmt.Errorf("%s at offset %d: %w", logName(cp.gen), cp.pos, err)
	}
	if cmd.Op != TypeSet {
		return "", false, fmt.Errorf("%s at offset %d: %w", logName(cp.gen), cp.pos, ErrUnexpectedCommand)
	}
	value, err := cmd.value()
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// reader returns the segment reader for gen. Every index entry must
// point at a registered generation; a miss is an engine bug, not a
// recoverable condition.
func (s *Store) reader(gen uint64) *posReader {
	r, ok := s.readers[gen]
	if !ok {
		panic(fmt.Sprintf("strata: no reader for generation %d", gen))
	}
	return r
}

// Keys returns every live key in sorted order.
func (s *Store) Keys() []string {
	return slices.Sorted(maps.Keys(s.index))
}

// Len returns the number of live keys.
func (s *Store) Len() int {
	return len(s.index)
}
