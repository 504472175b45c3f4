package linkcheck

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractLinks(t *testing.T) {
	links, err := ExtractLinks(strings.NewReader(
		`<div><p>See <a href="docs/a.html">the <b>docs</b></a></p><img src="logo.png" alt="Logo"><a>no href</a></div>`))
	require.NoError(t, err)
	require.Equal(t, []Link{
		{URL: "docs/a.html", Text: "thedocs", Tag: "a", Attribute: "href"},
		{URL: "logo.png", Text: "Logo", Tag: "img", Attribute: "src"},
	}, links)
}

func TestIsLocal(t *testing.T) {
	tests := map[string]bool{
		"page.html":             true,
		"../up.html":            true,
		"/abs/page.html":        true,
		"page.html#section":     true,
		"#section":              false,
		"":                      false,
		"https://example.com/x": false,
		"//cdn.example.com/x":   false,
		"mailto:me@example.com": false,
		"tel:+4712345678":       false,
		"?q=1":                  false,
	}
	for in, want := range tests {
		require.Equal(t, want, IsLocal(in), in)
	}
}

func writeSite(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	return root
}

func TestChecker_Check(t *testing.T) {
	root := writeSite(t, map[string]string{
		"index.html": `<div>` +
			`<a href="guide/intro.html">ok</a>` +
			`<a href="guide/">dir with index</a>` +
			`<a href="guide/intro.html#top">fragment</a>` +
			`<a href="missing.html">broken</a>` +
			`<a href="https://example.com">external</a>` +
			`<a href="#local">anchor</a>` +
			`<img src="img/logo%20big.png" alt="Logo">` +
			`</div>`,
		"guide/index.html": `<div><a href="../index.html">up</a><a href="/img/nope.png">abs broken</a></div>`,
		"guide/intro.html": `<div><a href="../../outside.html">escapes</a></div>`,
		"img/logo big.png": "png",
		"notes.txt":        `<a href="nowhere.html">ignored</a>`,
	})

	report, err := NewChecker(root, "").Check(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, report.Pages)
	require.Equal(t, 8, report.Links)
	require.False(t, report.OK())

	var got []string
	for _, b := range report.Broken {
		got = append(got, b.Page+" "+b.URL+" "+b.Target)
	}
	require.ElementsMatch(t, []string{
		"index.html missing.html missing.html",
		"guide/index.html /img/nope.png img/nope.png",
		"guide/intro.html ../../outside.html ../outside.html",
	}, got)
	require.Contains(t, report.Broken[0].String(), "not found")
}

func TestChecker_DirectoryWithoutIndexIsBroken(t *testing.T) {
	root := writeSite(t, map[string]string{
		"index.html":    `<a href="empty/">x</a>`,
		"empty/a.html": `<p>a</p>`,
	})

	report, err := NewChecker(root, ".html").Check(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Broken, 1)
	require.Equal(t, "empty", report.Broken[0].Target)
}

func TestChecker_CustomExtensionAndCancel(t *testing.T) {
	root := writeSite(t, map[string]string{
		"index.htm":  `<a href="other.htm">x</a>`,
		"other.htm":  `<p>o</p>`,
		"stray.html": `<a href="missing.html">not a page</a>`,
	})

	report, err := NewChecker(root, ".htm").Check(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, report.Pages)
	require.True(t, report.OK())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewChecker(root, ".htm").Check(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
