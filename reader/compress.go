package reader

import (
	"bytes"
	"io/ioutil"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/grailbio/base/errors"
	"github.com/klauspost/compress/gzip"
)

// stripCompressionSuffix returns the inner path and the recognized
// compression suffix (".gz", ".br", or "" for none), matching spec.md
// §4.1/§6's "compression wrappers recognized by filename suffix" rule.
func stripCompressionSuffix(path string) (inner, suffix string) {
	switch {
	case strings.HasSuffix(path, ".gz"):
		return strings.TrimSuffix(path, ".gz"), ".gz"
	case strings.HasSuffix(path, ".br"):
		return strings.TrimSuffix(path, ".br"), ".br"
	default:
		return path, ""
	}
}

// decompress returns raw's decompressed contents for the given
// compression suffix ("" passes raw through unchanged).
func decompress(raw []byte, suffix string) ([]byte, error) {
	switch suffix {
	case "":
		return raw, nil
	case ".gz":
		gz, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, errors.E(err, "reader: open gzip stream")
		}
		defer gz.Close() // nolint: errcheck
		data, err := ioutil.ReadAll(gz)
		if err != nil {
			return nil, errors.E(err, "reader: read gzip stream")
		}
		return data, nil
	case ".br":
		data, err := ioutil.ReadAll(brotli.NewReader(bytes.NewReader(raw)))
		if err != nil {
			return nil, errors.E(err, "reader: read brotli stream")
		}
		return data, nil
	default:
		return nil, errors.Errorf("reader: unrecognized compression suffix %q", suffix)
	}
}
