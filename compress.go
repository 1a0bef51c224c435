// Value packing for large values.
//
// When Config.Compression is on, values of at least compressMin bytes
// are zstd-compressed and then ascii85-encoded into the record's _z
// field. Ascii85 yields a printable, newline-free string with less raw
// overhead than base64; its alphabet includes the quote and backslash
// characters, which the JSON record encoding escapes. Packing
// is a write-time choice: records carry whichever form they were
// written with, and reads handle both, so a store reopened without the
// option still serves packed records.
package strata

import (
	"bytes"
	"encoding/ascii85"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// compressMin is the smallest value eligible for packing. Below this the
// zstd frame and ascii85 padding outweigh the savings.
const compressMin = 64

// Shared encoder/decoder, both safe for concurrent use. Construction is
// expensive (internal state tables), so they are allocated once.
// SpeedFastest: packing runs on every qualifying Set, unpacking only on
// reads of packed records.
var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	zstdDecoder, _ = zstd.NewReader(nil)
)

func pack(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	compressed := zstdEncoder.EncodeAll(data, nil)

	var encoded bytes.Buffer
	enc := ascii85.NewEncoder(&encoded)
	// bytes.Buffer.Write never errors; enc.Close flushes trailing padding.
	_, _ = enc.Write(compressed)
	_ = enc.Close()

	return encoded.String()
}

func unpack(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, nil
	}

	dec := ascii85.NewDecoder(bytes.NewReader([]byte(encoded)))
	compressed, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: ascii85: %w", ErrDecompress, err)
	}

	out, err := zstdDecoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %w", ErrDecompress, err)
	}
	return out, nil
}
