// Record format for the command log.
//
// Every record is a single JSON object beginning with {"op":N where N is
// the command type. Records are written back-to-back with no separator;
// the format is self-delimiting, so a streaming decoder recovers the
// exact byte boundary after each record. Those boundaries are what the
// index stores — a record is addressed as (generation, offset, length)
// and read back with one seek and one bounded read.
//
// Large values may be stored packed (see compress.go): the plaintext
// moves from _v to _z as a zstd-compressed, ascii85-encoded string.
// Both forms decode through the same struct, so readers never need to
// know whether packing was enabled when the record was written.
package strata

import (
	json "github.com/goccy/go-json"
)

// Command type markers, the first field of every record.
const (
	TypeSet    = 1
	TypeRemove = 2
)

// Command is one log record: either a Set carrying a value (inline or
// packed) or a Remove carrying only the key.
type Command struct {
	Op     int    `json:"op"`
	Key    string `json:"_k"`
	Value  string `json:"_v,omitempty"`
	Packed string `json:"_z,omitempty"`
}

// commandPos locates one record inside one segment: the generation it
// lives in, the offset of its first byte, and its exact length.
type commandPos struct {
	gen uint64
	pos int64
	len int64
}

// setCommand builds a Set record, packing the value when packing is
// enabled and the value is large enough to benefit.
func setCommand(key, value string, compress bool) Command {
	cmd := Command{Op: TypeSet, Key: key}
	if compress && len(value) >= compressMin {
		cmd.Packed = pack([]byte(value))
	} else {
		cmd.Value = value
	}
	return cmd
}

func removeCommand(key string) Command {
	return Command{Op: TypeRemove, Key: key}
}

func (c Command) encode() ([]byte, error) {
	return json.Marshal(c)
}

// decodeCommand parses one complete record.
func decodeCommand(data []byte) (Command, error) {
	var c Command
	if err := json.Unmarshal(data, &c); err != nil {
		return Command{}, ErrCorruptRecord
	}
	return c, nil
}

// value returns the Set payload, unpacking it when stored compressed.
func (c Command) value() (string, error) {
	if c.Packed == "" {
		return c.Value, nil
	}
	data, err := unpack(c.Packed)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
