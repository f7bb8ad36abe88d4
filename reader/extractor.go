package reader

import (
	"github.com/geospan/geospan/bbox"
	"github.com/grailbio/base/errors"
)

// Extractor converts one line of source text into its covering bbox. It
// is a first-class, pluggable policy selected once per file, by
// extension, at open time — not a parser: geometry/text decoding is
// delegated to a library, but "which bytes of this geometry become which
// bbox" is this function's job.
type Extractor func(line []byte) (bbox.BBox, error)

// extractorFor resolves the Extractor for a file's inner (decompressed)
// extension, using opts for the delimited-text column/separator
// defaults. An unrecognized extension is a ConfigError.
func extractorFor(ext string, opts Options) (Extractor, error) {
	switch ext {
	case ".geojson", ".geojsonl":
		return geojsonExtractor, nil
	case ".csv", ".tsv":
		return delimitedExtractor(opts.withDefaults(ext)), nil
	default:
		return nil, errors.Errorf("reader: unsupported file extension %q", ext)
	}
}
