// Position-tracking buffered I/O over segment files.
//
// The index stores absolute byte offsets, and serialization produces
// variable-length records, so the only reliable source of offsets is the
// buffered layer's own accounting. posWriter tracks the offset of the
// next byte to be written; posReader tracks the offset of the next byte
// to be read. Both count bytes handed to or taken from the buffer — a
// writer's pos says nothing about what has reached the disk.
package strata

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// posWriter layers buffering over the active segment file. The file is
// opened in append mode, so construction captures end-of-file and
// callers never seek it — they only record pos around each append.
type posWriter struct {
	w   *bufio.Writer
	f   *os.File
	pos int64
}

func newPosWriter(f *os.File) (*posWriter, error) {
	pos, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	return &posWriter{w: bufio.NewWriter(f), f: f, pos: pos}, nil
}

func (w *posWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.pos += int64(n)
	return n, err
}

// Flush drains buffered bytes to the OS so segment readers observe them.
func (w *posWriter) Flush() error {
	return w.w.Flush()
}

// Sync flushes and then forces the bytes to stable storage.
func (w *posWriter) Sync() error {
	if err := w.w.Flush(); err != nil {
		return err
	}
	return w.f.Sync()
}

func (w *posWriter) Close() error {
	err := w.w.Flush()
	if cerr := w.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// posReader layers buffering over a read-only segment file.
type posReader struct {
	r   *bufio.Reader
	f   *os.File
	pos int64
}

func newPosReader(f *os.File) (*posReader, error) {
	pos, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	return &posReader{r: bufio.NewReader(f), f: f, pos: pos}, nil
}

func (r *posReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	r.pos += int64(n)
	return n, err
}

// Seek sets pos to the resulting absolute offset and discards any
// buffered readahead. Relative seeks are resolved against pos, not the
// underlying file offset — the buffer keeps the two apart.
func (r *posReader) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += r.pos
	case io.SeekEnd:
		info, err := r.f.Stat()
		if err != nil {
			return 0, err
		}
		offset += info.Size()
	default:
		return 0, fmt.Errorf("posReader: invalid whence %d", whence)
	}
	abs, err := r.f.Seek(offset, io.SeekStart)
	if err != nil {
		return 0, err
	}
	r.r.Reset(r.f)
	r.pos = abs
	return abs, nil
}

func (r *posReader) Close() error {
	return r.f.Close()
}
