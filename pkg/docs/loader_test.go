package docs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDirSortsByID(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zeta.md"), []byte("zeta body"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alpha.md"), []byte("alpha body"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("plain text"), 0644))

	docs, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "alpha.md", docs[0].ID)
	assert.Equal(t, "notes.txt", docs[1].ID)
	assert.Equal(t, "zeta.md", docs[2].ID)
	assert.Equal(t, "alpha body", docs[0].Text)
}

func TestLoadDirSkipsOtherExtensionsAndSubdirs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.md"), []byte("body"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "image.png"), []byte{0x89, 0x50}, 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "hidden.md"), []byte("nope"), 0644))

	docs, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "doc.md", docs[0].ID)
}

func TestLoadDirReportsDecodeFailures(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.md"), []byte("fine"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.md"), []byte{0xff, 0xfe, 0xfd}, 0644))

	docs, err := LoadDir(dir)
	assert.ErrorContains(t, err, "bad.md")
	// The good document still loads.
	require.Len(t, docs, 1)
	assert.Equal(t, "good.md", docs[0].ID)
}

func TestLoadDirMissingDirectory(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}
