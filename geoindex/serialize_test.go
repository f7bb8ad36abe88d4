package geoindex

import (
	"path/filepath"
	"testing"

	"github.com/geospan/geospan/bbox"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := vcontext.Background()
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	entries := []Entry{
		{BBox: bbox.Point(11.39979, 52.47553), Offset: 0, Length: 17},
		{BBox: bbox.Point(9.8251, 48.19072), Offset: 18, Length: 15},
		{BBox: bbox.Point(1, 1), Offset: 34, Length: 1},
	}
	idx, err := Build(entries)
	require.NoError(t, err)

	path := filepath.Join(tempDir, "test.idx")
	require.NoError(t, idx.Save(ctx, path))

	loaded, err := Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, idx.Nodes, loaded.Nodes)
}

func TestLoadRejectsBadMagic(t *testing.T) {
	ctx := vcontext.Background()
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	path := filepath.Join(tempDir, "bad.idx")
	require.NoError(t, writeRawFile(path, []byte("XXXX\x01\x00\x00\x00\x00\x00\x00\x00\x00")))

	_, err := Load(ctx, path)
	assert.Error(t, err)
}

func TestSaveDeterministic(t *testing.T) {
	ctx := vcontext.Background()
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	entries := []Entry{
		{BBox: bbox.Point(1, 1), Offset: 0, Length: 1},
		{BBox: bbox.Point(2, 2), Offset: 1, Length: 1},
		{BBox: bbox.Point(3, 3), Offset: 2, Length: 1},
	}
	idx1, err := Build(append([]Entry{}, entries...))
	require.NoError(t, err)
	idx2, err := Build(append([]Entry{}, entries...))
	require.NoError(t, err)

	path1 := filepath.Join(tempDir, "a.idx")
	path2 := filepath.Join(tempDir, "b.idx")
	require.NoError(t, idx1.Save(ctx, path1))
	require.NoError(t, idx2.Save(ctx, path2))
	assertFilesEqual(t, path1, path2)
}
