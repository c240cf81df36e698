package postprocess

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestEnsureDocumentShape tests document-shape normalization
func TestEnsureDocumentShape(t *testing.T) {
	t.Run("fragment gets wrapped in a full shell", func(t *testing.T) {
		out := EnsureDocumentShape("<p>hi</p>", "https://example.com")

		assert.Contains(t, out, "<html")
		assert.Contains(t, out, `<meta charset="utf-8">`)
		assert.Contains(t, out, "<title>example.com</title>")
		assert.Contains(t, out, "<p>hi</p>")
		assert.Contains(t, out, "<body>")
		assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	})

	t.Run("document without head gets one inserted after html tag", func(t *testing.T) {
		in := "<html lang=\"en\"><body><p>hi</p></body></html>"
		out := EnsureDocumentShape(in, "https://example.com/page")

		assert.Contains(t, out, `<meta charset="utf-8">`)
		assert.Contains(t, out, "<title>example.com</title>")
		// The head lands between the opening tag and the body
		htmlIdx := strings.Index(out, "<html")
		headIdx := strings.Index(out, "<head>")
		bodyIdx := strings.Index(out, "<body>")
		assert.Greater(t, headIdx, htmlIdx)
		assert.Less(t, headIdx, bodyIdx)
	})

	t.Run("well-formed document passes through unchanged", func(t *testing.T) {
		in := "<!DOCTYPE html><html><head><title>Existing</title></head><body><p>hi</p></body></html>"
		out := EnsureDocumentShape(in, "https://example.com")

		assert.Equal(t, in, out)
		assert.Equal(t, 1, strings.Count(out, "<head>"), "no duplicate head")
	})

	t.Run("header element is not mistaken for a head", func(t *testing.T) {
		in := "<html><body><header>nav</header></body></html>"
		out := EnsureDocumentShape(in, "https://example.com")

		assert.Contains(t, out, "<head>")
		assert.Contains(t, out, "<header>nav</header>")
	})

	t.Run("unparseable URL falls back to placeholder title", func(t *testing.T) {
		out := EnsureDocumentShape("<p>hi</p>", "%%%")

		assert.Contains(t, out, "<title>"+PlaceholderTitle+"</title>")
	})

	t.Run("hostile host never appears unescaped", func(t *testing.T) {
		out := EnsureDocumentShape("<p>hi</p>", "https://evil<script>.example&co")

		assert.NotContains(t, out, "<script>")
		if strings.Contains(out, "evil") {
			assert.Contains(t, out, "evil&lt;script&gt;")
		}
	})
}

// TestEscapeAttr tests the single-pass entity escaping rule
func TestEscapeAttr(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "ampersand", input: "a&b", expected: "a&amp;b"},
		{name: "angle brackets", input: "<tag>", expected: "&lt;tag&gt;"},
		{name: "quotes", input: `"x" 'y'`, expected: "&quot;x&quot; &#39;y&#39;"},
		{name: "all five", input: `&<>"'`, expected: "&amp;&lt;&gt;&quot;&#39;"},
		{name: "clean string untouched", input: "example.com", expected: "example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeAttr(tt.input))
		})
	}
}

// TestEscapeAttr_SinglePass verifies escaping is applied exactly once
func TestEscapeAttr_SinglePass(t *testing.T) {
	once := EscapeAttr("a&b")
	assert.Equal(t, "a&amp;b", once)

	// Escaping the already-escaped string again WOULD double-escape;
	// the pipeline never does that, it escapes raw values only.
	assert.Equal(t, "a&amp;amp;b", EscapeAttr(once))
}
