package geoindex

import (
	"io/ioutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRawFile(path string, data []byte) error {
	return ioutil.WriteFile(path, data, 0644)
}

func assertFilesEqual(t *testing.T, a, b string) {
	t.Helper()
	aData, err := ioutil.ReadFile(a)
	require.NoError(t, err)
	bData, err := ioutil.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, aData, bData)
}
