package utils

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestStringNotEmptyCoalesce(t *testing.T) {
	require.Equal(t, "b", StringNotEmptyCoalesce("", "b", "c"))
	require.Empty(t, StringNotEmptyCoalesce("", ""))
	require.Empty(t, StringNotEmptyCoalesce())
}

func TestSanitizeFileName(t *testing.T) {
	require.Equal(t, "a_b_c_d", SanitizeFileName(`a/b"c:d`))
}

func TestContainsFold(t *testing.T) {
	require.True(t, ContainsFold("https://VM.TikTok.com/abc", "tiktok.com"))
	require.False(t, ContainsFold("https://youtube.com/watch", "tiktok.com", "vm.tiktok.com"))
}

func TestResolveReference(t *testing.T) {
	base := "https://www.tikwm.com/api/"

	require.Equal(t, "https://www.tikwm.com/video/media/play/1.mp4", ResolveReference(base, "/video/media/play/1.mp4"))
	require.Equal(t, "https://cdn.example.com/a.mp4", ResolveReference(base, "https://cdn.example.com/a.mp4"))
	require.Equal(t, "//cdn.example.com/a.mp4", ResolveReference(base, "//cdn.example.com/a.mp4"))
	require.Empty(t, ResolveReference(base, ""))
}

func TestInitLoggerLevels(t *testing.T) {
	require.Equal(t, logrus.DebugLevel, InitLogger("debug").GetLevel())
	require.Equal(t, logrus.WarnLevel, InitLogger("warn").GetLevel())
	require.Equal(t, logrus.ErrorLevel, InitLogger("").GetLevel())
}
