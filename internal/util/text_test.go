package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripTags(t *testing.T) {
	assert.Equal(t, "hello world", StripTags("  <b>hello</b> world<script>alert(1)</script> "))
	assert.Equal(t, "Tom & Jerry", StripTags("Tom & Jerry"))
	assert.Equal(t, "", StripTags("   "))
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("**Buy** the [blue one](https://example.com)")
	require.NoError(t, err)

	if !strings.Contains(out, "<strong>Buy</strong>") {
		t.Errorf("Expected bold markup, got %s", out)
	}
	if !strings.Contains(out, `rel="nofollow`) {
		t.Errorf("Expected nofollow link, got %s", out)
	}
}

func TestRenderMarkdown_StripsScripts(t *testing.T) {
	out, err := RenderMarkdown("hi <script>alert(1)</script>")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
}
