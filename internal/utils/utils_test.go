package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderMarkdownSanitizes(t *testing.T) {
	out := RenderMarkdown("**hi** <script>alert(1)</script>")
	require.Contains(t, out, "<strong>hi</strong>")
	require.NotContains(t, out, "<script>")
}

func TestRenderMarkdownHardensImages(t *testing.T) {
	out := RenderMarkdown("![cat](https://example.com/cat.png)")
	require.True(t, strings.Contains(out, `loading="lazy"`), out)
	require.True(t, strings.Contains(out, `referrerpolicy="no-referrer"`), out)
}

func TestRenderMarkdownEmpty(t *testing.T) {
	require.Equal(t, "", RenderMarkdown(""))
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	require.True(t, CheckPasswordHash("secret1", hash))
	require.False(t, CheckPasswordHash("secret2", hash))
}

func TestParseID(t *testing.T) {
	id, ok := ParseID("42")
	require.True(t, ok)
	require.Equal(t, uint(42), id)

	for _, bad := range []string{"", "0", "-1", "abc"} {
		_, ok := ParseID(bad)
		require.False(t, ok, bad)
	}
}
