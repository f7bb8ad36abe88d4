// Package geospan implements an embedded, read-mostly spatial index and
// blob store for geographic records: it builds a persistent 2D bbox
// index over a line-delimited source file, packs the records into a
// compact table, and serves paginated overlap queries against the pair.
package geospan

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/geospan/geospan/bbox"
	"github.com/geospan/geospan/geoindex"
	"github.com/geospan/geospan/reader"
	"github.com/geospan/geospan/table"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

// Options configures how a source file's lines are turned into bboxes.
// It is the same shape as reader.Options, re-exported here so callers
// never need to import the reader package directly.
type Options = reader.Options

// Database is a handle on an opened (index, table) pair. Build is
// exclusive (it happens entirely inside Open); after Open returns, a
// Database is safe for concurrent Query calls from multiple goroutines,
// since both the index and the table are immutable from that point on.
type Database struct {
	idx *geoindex.Index
	tbl *table.Table
}

// Open loads or builds the database for the source file at path. If both
// sidecars (path+".idx", path+".dat") exist, they are loaded directly;
// otherwise the source is read, the index is built and threaded, the
// table is rewritten to packed form, and both sidecars are written
// atomically (temp file, then rename); the table is then opened from its
// sidecar while the freshly built index is used as is.
func Open(ctx context.Context, path string, opts Options) (*Database, error) {
	idxPath := path + ".idx"
	datPath := path + ".dat"

	if fileExists(idxPath) && fileExists(datPath) {
		idx, err := geoindex.Load(ctx, idxPath)
		if err != nil {
			return nil, errors.E(err, "geospan.Open: load index", idxPath)
		}
		tbl, err := table.Open(datPath)
		if err != nil {
			return nil, errors.E(err, "geospan.Open: load table", datPath)
		}
		return &Database{idx: idx, tbl: tbl}, nil
	}

	log.Printf("geospan.Open: %s: sidecars missing, building", path)
	entries, source, err := reader.Read(path, opts)
	if err != nil {
		return nil, errors.E(err, "geospan.Open: read source", path)
	}
	log.Printf("geospan.Open: %s: %d entries", path, len(entries))

	idx, err := geoindex.Build(entries)
	if err != nil {
		return nil, errors.E(err, "geospan.Open: build index", path)
	}

	if err := writeDat(idx, source, datPath); err != nil {
		return nil, errors.E(err, "geospan.Open: write table", datPath)
	}
	if err := writeIdx(ctx, idx, idxPath); err != nil {
		return nil, errors.E(err, "geospan.Open: write index", idxPath)
	}

	tbl, err := table.Open(datPath)
	if err != nil {
		return nil, errors.E(err, "geospan.Open: load table", datPath)
	}
	return &Database{idx: idx, tbl: tbl}, nil
}

// writeDat packs idx's leaves into a fresh table file at a temp sibling
// of datPath, then renames it into place — a partially written table
// never appears at datPath.
func writeDat(idx *geoindex.Index, source []byte, datPath string) (err error) {
	tmp, err := ioutil.TempFile(filepath.Dir(datPath), filepath.Base(datPath)+".tmp-")
	if err != nil {
		return errors.E(err, "writeDat: create temp file")
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpPath) // nolint: errcheck
		}
	}()

	if err = idx.RewriteTable(source, tmp); err != nil {
		tmp.Close() // nolint: errcheck
		return err
	}
	if err = tmp.Close(); err != nil {
		return errors.E(err, "writeDat: close temp file")
	}
	if err = os.Rename(tmpPath, datPath); err != nil {
		return errors.E(err, "writeDat: rename into place")
	}
	return nil
}

// writeIdx serializes idx to a temp sibling of idxPath, then renames it
// into place.
func writeIdx(ctx context.Context, idx *geoindex.Index, idxPath string) (err error) {
	tmpPath := idxPath + ".tmp"
	defer func() {
		if err != nil {
			os.Remove(tmpPath) // nolint: errcheck
		}
	}()
	if err = idx.Save(ctx, tmpPath); err != nil {
		return err
	}
	if err = os.Rename(tmpPath, idxPath); err != nil {
		return errors.E(err, "writeIdx: rename into place")
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Query runs a paginated bbox overlap query, delegating to the index for
// the leaf search and to the table for resolving leaf references into
// record bytes. cursor is 0 for the first call, or a previously returned
// nextCursor to resume; nextCursor == 0 signals exhaustion.
func (db *Database) Query(q bbox.BBox, cursor uint64, cap int) (chunks [][]byte, nextCursor uint64, err error) {
	leaves, nextCursor := db.idx.Query(q, cursor, cap)
	refs := make([]table.Ref, len(leaves))
	for i, leaf := range leaves {
		refs[i] = table.Ref{Offset: leaf.V1, Length: leaf.V2}
	}
	chunks, err = db.tbl.ReadRanges(refs)
	if err != nil {
		return nil, 0, errors.E(err, "geospan.Query: resolve leaf ranges")
	}
	return chunks, nextCursor, nil
}

// Close releases the table's mapping and file handle. The index is a
// plain in-memory array and needs no release step.
func (db *Database) Close() error {
	return db.tbl.Close()
}
