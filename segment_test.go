// Segment naming and discovery tests.
package strata

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestParseGen(t *testing.T) {
	tests := []struct {
		name string
		gen  uint64
		ok   bool
	}{
		{"1.log", 1, true},
		{"42.log", 42, true},
		{"007.log", 7, true},
		{"0.log", 0, true},
		{"x.log", 0, false},
		{"10.txt", 0, false},
		{"10.log.bak", 0, false},
		{"-1.log", 0, false},
		{"1.5.log", 0, false},
		{".log", 0, false},
		{"strata.lock", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, ok := parseGen(tt.name)
			if gen != tt.gen || ok != tt.ok {
				t.Errorf("parseGen(%q) = %d, %v; want %d, %v", tt.name, gen, ok, tt.gen, tt.ok)
			}
		})
	}
}

// TestSortedGenerations verifies numeric (not lexicographic) ordering
// and that non-segment entries are ignored: 10 must sort after 3, and
// the lock file must not be mistaken for a segment.
func TestSortedGenerations(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"3.log", "1.log", "10.log", "strata.lock", "foo.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "7.log"), 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		t.Fatalf("OpenRoot: %v", err)
	}
	defer root.Close()

	gens, err := sortedGenerations(root)
	if err != nil {
		t.Fatalf("sortedGenerations: %v", err)
	}
	if want := []uint64{1, 3, 10}; !slices.Equal(gens, want) {
		t.Errorf("sortedGenerations = %v; want %v", gens, want)
	}
}
