package templates

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizePreview(t *testing.T) {
	raw := `<style>body{display:none}</style>
<h1 onclick="steal()">Règlement</h1>
<p onmouseover="x()" class="intro">Article 1</p>
<script>alert(1)</script>
<a href="javascript:alert(1)">piège</a>
<a href=" JaVa&#x09;script:alert(2)">piège 2</a>
<a href="/documents/rc.docx">télécharger</a>
<img src="data:text/html;base64,PHNjcmlwdD4=" alt="x">
<iframe src="https://evil.example"></iframe>`

	clean, err := SanitizePreview(raw)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(clean))
	require.NoError(t, err)

	assert.Zero(t, doc.Find("script, style, iframe").Length())
	assert.Equal(t, "Règlement", doc.Find("h1").Text())
	_, hasOnclick := doc.Find("h1").Attr("onclick")
	assert.False(t, hasOnclick)
	_, hasHover := doc.Find("p").Attr("onmouseover")
	assert.False(t, hasHover)
	assert.Equal(t, "intro", doc.Find("p").AttrOr("class", ""))

	links := doc.Find("a")
	require.Equal(t, 3, links.Length())
	_, first := links.Eq(0).Attr("href")
	assert.False(t, first)
	_, second := links.Eq(1).Attr("href")
	assert.False(t, second)
	assert.Equal(t, "/documents/rc.docx", links.Eq(2).AttrOr("href", ""))

	_, imgSrc := doc.Find("img").Attr("src")
	assert.False(t, imgSrc)
	assert.NotContains(t, clean, "alert")
}

func TestSanitizePreviewEmpty(t *testing.T) {
	clean, err := SanitizePreview("   ")
	require.NoError(t, err)
	assert.Empty(t, clean)
}

func TestIsScriptURL(t *testing.T) {
	assert.True(t, isScriptURL("javascript:void(0)"))
	assert.True(t, isScriptURL("  JAVASCRIPT:void(0)"))
	assert.True(t, isScriptURL("java\nscript:x"))
	assert.True(t, isScriptURL("vbscript:x"))
	assert.False(t, isScriptURL("https://example.com/javascript:"))
	assert.False(t, isScriptURL("/files/a.pdf"))
}
