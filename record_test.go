// Record format tests.
//
// The store's addressing scheme depends on one property of the
// encoding: a streaming decoder over back-to-back records reports byte
// boundaries such that slicing the stream at those boundaries yields
// exactly one decodable record per slice. These tests pin that
// property, since both the loader and Get rely on it.
package strata

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
)

// TestStreamBoundaries encodes a mixed stream of commands with no
// separators, walks it with the same streaming decoder the loader uses,
// and verifies that every reported boundary cuts the stream into a
// standalone record that round-trips through the whole-record decoder.
func TestStreamBoundaries(t *testing.T) {
	cmds := []Command{
		setCommand("a", "1", false),
		setCommand("long", strings.Repeat("x", 300), false),
		removeCommand("a"),
		setCommand("esc", "tab\tnewline\nquote\"", false),
	}

	var stream bytes.Buffer
	for _, cmd := range cmds {
		data, err := cmd.encode()
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		stream.Write(data)
	}

	dec := json.NewDecoder(bytes.NewReader(stream.Bytes()))
	var pos int64
	for i, want := range cmds {
		var cmd Command
		if err := dec.Decode(&cmd); err != nil {
			t.Fatalf("record %d: decode: %v", i, err)
		}
		newPos := dec.InputOffset()

		got, err := decodeCommand(stream.Bytes()[pos:newPos])
		if err != nil {
			t.Fatalf("record %d: slice [%d:%d) does not decode: %v", i, pos, newPos, err)
		}
		if got != want {
			t.Errorf("record %d: slice decoded to %+v; want %+v", i, got, want)
		}
		pos = newPos
	}
	if pos != int64(stream.Len()) {
		t.Errorf("boundaries consumed %d of %d bytes", pos, stream.Len())
	}

	var extra Command
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		t.Errorf("decode past end = %v; want io.EOF", err)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := decodeCommand([]byte(`{"op":1,"_k":`)); !errors.Is(err, ErrCorruptRecord) {
		t.Errorf("truncated record decoded; err = %v", err)
	}
	if _, err := decodeCommand([]byte("not json at all")); !errors.Is(err, ErrCorruptRecord) {
		t.Errorf("garbage decoded; err = %v", err)
	}
}

// TestSetCommandPacking verifies the packing decision: small values stay
// inline regardless of configuration, large values move to the packed
// field, and both forms yield the original through value().
func TestSetCommandPacking(t *testing.T) {
	small := setCommand("k", "tiny", true)
	if small.Packed != "" || small.Value != "tiny" {
		t.Errorf("small value packed: %+v", small)
	}

	big := strings.Repeat("lorem ipsum ", 50)
	packed := setCommand("k", big, true)
	if packed.Packed == "" || packed.Value != "" {
		t.Errorf("large value not packed: Value has %d bytes", len(packed.Value))
	}
	got, err := packed.value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if got != big {
		t.Errorf("packed value does not round-trip")
	}

	off := setCommand("k", big, false)
	if off.Packed != "" || off.Value != big {
		t.Errorf("packing applied while disabled: %+v", off)
	}
}
