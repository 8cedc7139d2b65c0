package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCreatesDirs(t *testing.T) {
	root := filepath.Join(t.TempDir(), "index99")

	area, err := New(root)
	require.NoError(t, err)

	require.DirExists(t, area.Root)
	require.DirExists(t, area.Media)
	require.Equal(t, filepath.Join(area.Root, "media"), area.Media)
}

func TestResetLeavesBothDirsEmpty(t *testing.T) {
	area, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(area.DownloadPath("a.mp4"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(area.MediaPath("b.mp3"), []byte("b"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(area.Root, "nested", "deep"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(area.Root, "nested", "deep", "c"), []byte("c"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(area.Media, "sub"), 0o755))

	require.NoError(t, area.Reset())

	rootEntries, err := os.ReadDir(area.Root)
	require.NoError(t, err)
	require.Len(t, rootEntries, 1)
	require.Equal(t, "media", rootEntries[0].Name())

	mediaEntries, err := os.ReadDir(area.Media)
	require.NoError(t, err)
	require.Empty(t, mediaEntries)
}

func TestResetRecreatesMissingDirs(t *testing.T) {
	area, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(area.Media))
	require.NoError(t, area.Reset())
	require.DirExists(t, area.Media)
}

func TestTokensAreUnique(t *testing.T) {
	seen := map[string]struct{}{}

	for range 100 {
		tok := NewToken()
		require.NotZero(t, tok.Millis)
		require.Len(t, tok.ID, 12)

		_, dup := seen[tok.String()]
		require.False(t, dup)
		seen[tok.String()] = struct{}{}
	}
}

func TestFindByPrefix(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "preview_audio_1.webm"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "preview_audio_1.mp3"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.mp3"), nil, 0o644))

	path, err := FindByPrefix(dir, "preview_audio_1", "mp3")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "preview_audio_1.mp3"), path)

	path, err = FindByPrefix(dir, "other", "")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "other.mp3"), path)

	_, err = FindByPrefix(dir, "missing", "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMediaURL(t *testing.T) {
	area, err := New(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, "/media/preview.mp4", area.MediaURL("preview.mp4"))
}
