package reader

// Options configures how InputReader extracts (bbox, offset, length)
// entries from a source file's lines.
type Options struct {
	// Separator is the delimited-text field separator. Zero means "use
	// the extension's default": ',' for .csv, '\t' for .tsv.
	Separator byte
	// ColX and ColY are the 0-based field indices holding the X and Y
	// coordinates in delimited text. Defaults are 0 and 1.
	ColX, ColY int
	// SkipLines discards the first N lines (e.g. a header row): they are
	// counted but never emitted as entries.
	SkipLines int
}

// withDefaults returns opts with zero fields filled in for the given
// inner (decompressed) file extension.
func (o Options) withDefaults(ext string) Options {
	out := o
	if out.Separator == 0 {
		switch ext {
		case ".tsv":
			out.Separator = '\t'
		default:
			out.Separator = ','
		}
	}
	// ColX's zero value already is its default (0), so an unset ColY is
	// indistinguishable from an unset ColX except by the pair both being
	// zero: a caller who actually wants X and Y read from the same field
	// has no use case, so treat ColX == ColY == 0 as "unset" and apply
	// spec.md §4.1's default column pair (0, 1).
	if out.ColX == 0 && out.ColY == 0 {
		out.ColY = 1
	}
	return out
}
