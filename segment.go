// Segment naming, discovery, and creation.
//
// A segment is one <gen>.log file in the store directory, where gen is a
// generation number that only ever grows. There is no manifest: the
// segment set is whatever the directory listing says it is, and anything
// that doesn't follow the naming scheme is ignored, so the directory can
// hold unrelated application data (and does hold the lock file).
package strata

import (
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
)

// logName returns the filename for generation gen.
func logName(gen uint64) string {
	return fmt.Sprintf("%d.log", gen)
}

// parseGen extracts the generation number from a segment filename.
// Returns false for anything that is not "<uint>.log".
func parseGen(name string) (uint64, bool) {
	stem, ok := strings.CutSuffix(name, ".log")
	if !ok {
		return 0, false
	}
	gen, err := strconv.ParseUint(stem, 10, 64)
	if err != nil {
		return 0, false
	}
	return gen, true
}

// sortedGenerations lists the generations present in the store
// directory in ascending order.
func sortedGenerations(root *os.Root) ([]uint64, error) {
	entries, err := fs.ReadDir(root.FS(), ".")
	if err != nil {
		return nil, err
	}
	var gens []uint64
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if gen, ok := parseGen(e.Name()); ok {
			gens = append(gens, gen)
		}
	}
	slices.Sort(gens)
	return gens, nil
}

// newLogFile creates the segment file for gen, registers a reader for
// it, and returns a writer positioned at its tail.
func (s *Store) newLogFile(gen uint64) (*posWriter, error) {
	name := logName(gen)
	wf, err := s.root.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	rf, err := s.root.Open(name)
	if err != nil {
		wf.Close()
		return nil, err
	}
	reader, err := newPosReader(rf)
	if err != nil {
		wf.Close()
		rf.Close()
		return nil, err
	}
	writer, err := newPosWriter(wf)
	if err != nil {
		wf.Close()
		rf.Close()
		return nil, err
	}
	s.readers[gen] = reader
	return writer, nil
}
