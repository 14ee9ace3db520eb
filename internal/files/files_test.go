package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, Exists(dir))

	path := filepath.Join(dir, "corpus.txt")
	assert.False(t, Exists(path))
	require.NoError(t, os.WriteFile(path, []byte("hello world\n"), 0o644))
	assert.True(t, Exists(path))
}

func TestExt(t *testing.T) {
	assert.Equal(t, "parquet", Ext("/data/corpus.PARQUET"))
	assert.Equal(t, "txt", Ext("corpus.txt"))
	assert.Equal(t, "", Ext("corpus"))
}
