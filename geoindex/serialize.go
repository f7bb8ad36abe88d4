package geoindex

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"math"

	"blainsmith.com/go/seahash"
	"github.com/geospan/geospan/bbox"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
)

// magic identifies an index sidecar file. version is bumped whenever the
// wire format below changes; Load rejects a sidecar with a mismatched
// version.
var magic = [4]byte{'G', 'S', 'P', '1'}

const version = 1

// wireNode is the fixed-width, exact-bit-pattern encoding of a Node.
// Field order is the wire layout; encoding/binary writes fields in
// declaration order with no padding, so this struct IS the format.
type wireNode struct {
	MinXBits, MaxXBits, MinYBits, MaxYBits uint32
	IsLeaf                                 uint8
	V1, V2, Next                           uint64
}

func toWire(n Node) wireNode {
	var isLeaf uint8
	if n.IsLeaf {
		isLeaf = 1
	}
	return wireNode{
		MinXBits: math.Float32bits(n.BBox.MinX),
		MaxXBits: math.Float32bits(n.BBox.MaxX),
		MinYBits: math.Float32bits(n.BBox.MinY),
		MaxYBits: math.Float32bits(n.BBox.MaxY),
		IsLeaf:   isLeaf,
		V1:       n.V1,
		V2:       n.V2,
		Next:     n.Next,
	}
}

func fromWire(w wireNode) Node {
	return Node{
		BBox: bbox.New(
			math.Float32frombits(w.MinXBits),
			math.Float32frombits(w.MaxXBits),
			math.Float32frombits(w.MinYBits),
			math.Float32frombits(w.MaxYBits),
		),
		IsLeaf: w.IsLeaf != 0,
		V1:     w.V1,
		V2:     w.V2,
		Next:   w.Next,
	}
}

// Save writes idx to path as a self-delimiting sidecar: a 4-byte magic, a
// 1-byte version, an 8-byte node count, an 8-byte seahash-64 checksum of
// the node stream, then the node records themselves.
func (idx *Index) Save(ctx context.Context, path string) (err error) {
	var body bytes.Buffer
	for _, n := range idx.Nodes {
		if encErr := binary.Write(&body, binary.LittleEndian, toWire(n)); encErr != nil {
			return errors.E(encErr, "geoindex.Save: encode node", path)
		}
	}

	h := seahash.New()
	h.Write(body.Bytes())
	checksum := h.Sum64()

	out, createErr := file.Create(ctx, path)
	if createErr != nil {
		return errors.E(createErr, "geoindex.Save: create", path)
	}
	defer file.CloseAndReport(ctx, out, &err)

	w := out.Writer(ctx)
	if _, err = w.Write(magic[:]); err != nil {
		return errors.E(err, "geoindex.Save: write magic", path)
	}
	if err = binary.Write(w, binary.LittleEndian, uint8(version)); err != nil {
		return errors.E(err, "geoindex.Save: write version", path)
	}
	if err = binary.Write(w, binary.LittleEndian, uint64(len(idx.Nodes))); err != nil {
		return errors.E(err, "geoindex.Save: write node count", path)
	}
	if err = binary.Write(w, binary.LittleEndian, checksum); err != nil {
		return errors.E(err, "geoindex.Save: write checksum", path)
	}
	if _, err = w.Write(body.Bytes()); err != nil {
		return errors.E(err, "geoindex.Save: write nodes", path)
	}
	return nil
}

// Load reads an Index back from path, validating the magic, version, and
// checksum written by Save. A mismatch on any of these is returned as an
// error ("sidecar decode failure"); geospan.Open passes it on to its
// caller and does not rebuild from source.
func Load(ctx context.Context, path string) (idx *Index, err error) {
	in, openErr := file.Open(ctx, path)
	if openErr != nil {
		return nil, errors.E(openErr, "geoindex.Load: open", path)
	}
	defer file.CloseAndReport(ctx, in, &err)

	r := in.Reader(ctx)
	var gotMagic [4]byte
	if _, err = io.ReadFull(r, gotMagic[:]); err != nil {
		return nil, errors.E(err, "geoindex.Load: read magic", path)
	}
	if gotMagic != magic {
		return nil, errors.Errorf("geoindex.Load: %s: bad magic %q, expected %q", path, gotMagic, magic)
	}

	var gotVersion uint8
	if err = binary.Read(r, binary.LittleEndian, &gotVersion); err != nil {
		return nil, errors.E(err, "geoindex.Load: read version", path)
	}
	if gotVersion != version {
		return nil, errors.Errorf("geoindex.Load: %s: unsupported version %d, expected %d", path, gotVersion, version)
	}

	var numNodes uint64
	if err = binary.Read(r, binary.LittleEndian, &numNodes); err != nil {
		return nil, errors.E(err, "geoindex.Load: read node count", path)
	}
	var wantChecksum uint64
	if err = binary.Read(r, binary.LittleEndian, &wantChecksum); err != nil {
		return nil, errors.E(err, "geoindex.Load: read checksum", path)
	}

	body := make([]byte, numNodes*wireNodeSize)
	if _, err = io.ReadFull(r, body); err != nil {
		return nil, errors.E(err, "geoindex.Load: read node stream", path)
	}

	h := seahash.New()
	h.Write(body)
	if got := h.Sum64(); got != wantChecksum {
		return nil, errors.Errorf("geoindex.Load: %s: checksum mismatch: got %x, want %x", path, got, wantChecksum)
	}

	br := bytes.NewReader(body)
	nodes := make([]Node, numNodes)
	for i := range nodes {
		var w wireNode
		if err = binary.Read(br, binary.LittleEndian, &w); err != nil {
			return nil, errors.E(err, "geoindex.Load: decode node", path)
		}
		nodes[i] = fromWire(w)
	}
	return &Index{Nodes: nodes}, nil
}

const wireNodeSize = 4*4 + 1 + 8*3
