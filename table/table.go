// Package table implements the immutable, packed byte store a built index's
// leaves address by (offset, length): the ".dat" sidecar.
package table

import (
	"io/ioutil"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/grailbio/base/errors"
)

// Table is an immutable byte array backing leaf reads. It prefers a
// zero-copy memory map and falls back to a full in-memory read when
// mapping is unavailable (e.g. a zero-length file).
type Table struct {
	data   []byte
	mapped mmap.MMap
	file   *os.File
}

// Open loads path as a Table, memory-mapping it when possible.
func Open(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.E(err, "table.Open", path)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close() // nolint: errcheck
		return nil, errors.E(err, "table.Open: stat", path)
	}
	if fi.Size() == 0 {
		// mmap-go rejects zero-length mappings; an empty table is valid
		// (no leaves reference it) so fall back to a plain nil buffer.
		f.Close() // nolint: errcheck
		return &Table{data: nil}, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		// Fall back to a full read rather than failing the open outright
		// — some hosts (certain filesystems, certain containers) disallow
		// mmap entirely.
		data, readErr := ioutil.ReadAll(f)
		f.Close() // nolint: errcheck
		if readErr != nil {
			return nil, errors.E(readErr, "table.Open: fallback read", path)
		}
		return &Table{data: data}, nil
	}
	return &Table{data: []byte(m), mapped: m, file: f}, nil
}

// Close releases the table's mapping and file handle, if any.
func (t *Table) Close() error {
	var err error
	if t.mapped != nil {
		if unmapErr := t.mapped.Unmap(); unmapErr != nil {
			err = errors.E(unmapErr, "table.Close: unmap")
		}
	}
	if t.file != nil {
		if closeErr := t.file.Close(); closeErr != nil && err == nil {
			err = errors.E(closeErr, "table.Close: close")
		}
	}
	return err
}

// Len returns the number of bytes in the table.
func (t *Table) Len() int {
	return len(t.data)
}

// ReadRange returns the byte slice [offset, offset+length) borrowed from
// the table's backing buffer. It bounds-checks and returns a fatal error
// on an out-of-range request rather than panicking silently, since a
// corrupt sidecar is the only way a valid build can produce one.
func (t *Table) ReadRange(offset, length uint64) ([]byte, error) {
	end := offset + length
	if offset > uint64(len(t.data)) || end > uint64(len(t.data)) || end < offset {
		return nil, errors.Errorf("table.ReadRange: range [%d,%d) out of bounds for table of length %d", offset, end, len(t.data))
	}
	return t.data[offset:end], nil
}

// Ref is an (offset, length) pair identifying a record in the table.
type Ref struct {
	Offset, Length uint64
}

// ReadRanges resolves a batch of Refs into their borrowed byte slices, in
// the same order as refs.
func (t *Table) ReadRanges(refs []Ref) ([][]byte, error) {
	out := make([][]byte, len(refs))
	for i, ref := range refs {
		b, err := t.ReadRange(ref.Offset, ref.Length)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}
