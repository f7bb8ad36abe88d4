package reader

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"unicode/utf8"

	"github.com/geospan/geospan/geoindex"
	"github.com/grailbio/base/errors"
)

// Read loads path into memory (transparently decompressing a ".gz"/".br"
// suffix), splits it into newline-delimited lines, and runs each line
// (past the first opts.SkipLines) through the extractor selected by the
// file's inner extension, producing one geoindex.Entry per line. It is
// the build-time driver loop of spec.md §4.1; a returned error means the
// build must abort without writing any sidecar. The decompressed source
// buffer is also returned, since entry offsets index into it and the
// table rewrite pass (geoindex.RewriteTable) needs it afterward.
func Read(path string, opts Options) (entries []geoindex.Entry, source []byte, err error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, nil, errors.E(err, "reader.Read: open source", path)
	}

	innerPath, suffix := stripCompressionSuffix(path)
	data, err := decompress(raw, suffix)
	if err != nil {
		return nil, nil, errors.E(err, "reader.Read: decompress", path)
	}

	ext := filepath.Ext(innerPath)
	extractor, err := extractorFor(ext, opts)
	if err != nil {
		return nil, nil, errors.E(err, "reader.Read", path)
	}

	lineNo := 0
	start := 0
	emit := func(line []byte, lineStart int) error {
		lineNo++
		if lineNo <= opts.SkipLines {
			return nil
		}
		if !utf8.Valid(line) {
			return errors.Errorf("reader.Read: %s: line %d is not valid UTF-8", path, lineNo)
		}
		box, extractErr := extractor(line)
		if extractErr != nil {
			return errors.E(extractErr, fmt.Sprintf("reader.Read %s: line %d", path, lineNo))
		}
		entries = append(entries, geoindex.Entry{
			BBox:   box,
			Offset: uint64(lineStart),
			Length: uint64(len(line)),
		})
		return nil
	}

	for i, c := range data {
		if c != '\n' {
			continue
		}
		if err := emit(data[start:i], start); err != nil {
			return nil, nil, err
		}
		start = i + 1
	}
	// A final, unterminated line is still a valid record (spec.md §9).
	if start < len(data) {
		if err := emit(data[start:], start); err != nil {
			return nil, nil, err
		}
	}

	if len(entries) == 0 {
		return nil, nil, errors.Errorf("reader.Read: %s: no records", path)
	}
	return entries, data, nil
}
