package reader

import (
	"strconv"

	"github.com/geospan/geospan/bbox"
	pkgerrors "github.com/pkg/errors"
)

// splitFields tokenizes line on sep, a generalization of the teacher's
// interval.getTokens (which hardcodes "any byte <= ' '" as the
// delimiter) to this format's single configurable separator byte.
func splitFields(line []byte, sep byte) [][]byte {
	var fields [][]byte
	start := 0
	for i := 0; i <= len(line); i++ {
		if i == len(line) || line[i] == sep {
			fields = append(fields, line[start:i])
			start = i + 1
		}
	}
	return fields
}

// delimitedExtractor returns an Extractor that splits a line on
// opts.Separator and parses opts.ColX/opts.ColY as floats, emitting a
// degenerate point bbox — spec.md §4.1's delimited-text extractor.
func delimitedExtractor(opts Options) Extractor {
	return func(line []byte) (bbox.BBox, error) {
		fields := splitFields(line, opts.Separator)
		if opts.ColX >= len(fields) || opts.ColY >= len(fields) {
			return bbox.BBox{}, pkgerrors.Errorf(
				"reader: line has %d fields, need columns %d and %d", len(fields), opts.ColX, opts.ColY)
		}
		x, err := strconv.ParseFloat(string(fields[opts.ColX]), 32)
		if err != nil {
			return bbox.BBox{}, pkgerrors.Wrapf(err, "reader: parse x column %d", opts.ColX)
		}
		y, err := strconv.ParseFloat(string(fields[opts.ColY]), 32)
		if err != nil {
			return bbox.BBox{}, pkgerrors.Wrapf(err, "reader: parse y column %d", opts.ColY)
		}
		if isNaN32(x) || isNaN32(y) {
			return bbox.BBox{}, pkgerrors.New("reader: NaN coordinate")
		}
		return bbox.Point(float32(x), float32(y)), nil
	}
}

func isNaN32(f float64) bool {
	return f != f
}
