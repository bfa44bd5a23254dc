package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func TestCollectImages_FiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.jpg", []byte{0xFF, 0xD8})
	writeFile(t, dir, "b.PNG", []byte{0x89, 0x50})
	writeFile(t, dir, "c.jpeg", []byte{0xFF, 0xD8})
	writeFile(t, dir, "notes.txt", []byte("skip me"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	items, err := CollectImages(dir)
	require.NoError(t, err)

	require.Len(t, items, 3)
	names := []string{items[0].Filename, items[1].Filename, items[2].Filename}
	assert.ElementsMatch(t, []string{"a.jpg", "b.PNG", "c.jpeg"}, names)
	for _, item := range items {
		assert.NotEmpty(t, item.Data)
	}
}

func TestCollectImages_EmptyDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "readme.md", []byte("no images here"))

	items, err := CollectImages(dir)

	assert.Nil(t, items)
	assert.Error(t, err)
}

func TestCollectImages_MissingDir(t *testing.T) {
	_, err := CollectImages(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
