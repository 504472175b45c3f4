package commands

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/mdsite/internal/errors"
)

func testGlobal(stdin string) (*Global, *bytes.Buffer) {
	var out bytes.Buffer
	return &Global{Stdin: strings.NewReader(stdin), Stdout: &out, Stderr: &bytes.Buffer{}}, &out
}

func keepLogger(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

// run parses args the way main does and executes the selected command.
func run(t *testing.T, g *Global, args ...string) error {
	t.Helper()
	keepLogger(t)

	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("mdsite"),
		kong.Vars{"version": "test"},
		kong.Bind(g),
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
	)
	require.NoError(t, err)

	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return ctx.Run(g, &cli)
}

func TestRender_Stdin(t *testing.T) {
	g, out := testGlobal("# Title\n\nSome **bold** text")
	require.NoError(t, run(t, g, "render"))
	require.Equal(t, "<div><h1>Title</h1><p>Some <b>bold</b> text</p></div>\n", out.String())
}

func TestRender_FileToOutput(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"page.md": "- one\n- two"})
	target := filepath.Join(dir, "page.html")

	g, out := testGlobal("")
	require.NoError(t, run(t, g, "render", filepath.Join(dir, "page.md"), "-o", target))
	require.Empty(t, out.String())

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, "<div><ul><li>one</li><li>two</li></ul></div>\n", string(data))
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		stdin    string
		category derrors.ErrorCategory
		exit     int
	}{
		{"unmatched delimiter", []string{"render"}, "some **bold", derrors.CategoryParse, 3},
		{"empty document", []string{"render"}, "\n\n", derrors.CategoryBuild, 11},
		{"missing file", []string{"render", "does-not-exist.md"}, "", derrors.CategoryFileSystem, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := testGlobal(tt.stdin)
			err := run(t, g, tt.args...)
			require.Error(t, err)
			require.Equal(t, tt.category, derrors.GetCategory(err))
			require.Equal(t, tt.exit, derrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
		})
	}
}

func TestTree(t *testing.T) {
	g, out := testGlobal("# Title\n\n> quoted")
	require.NoError(t, run(t, g, "tree", "-"))
	require.Equal(t, "div\n  h1 \"Title\"\n  blockquote\n    #text \"quoted\"\n", out.String())
}

func TestBuild_WithConfigAndFlags(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFiles(t, dir, map[string]string{
		"mdsite.yaml":     "content_dir: docs\nmetrics:\n  enabled: true\n",
		"docs/index.md":   "# Home\n\n[about](about.html)\n",
		"docs/about.md":   "# About\n",
		"static/site.css": "body{}",
	})

	g, out := testGlobal("")
	require.NoError(t, run(t, g, "build", "--output", "dist", "--manifest", "--check-links"))
	require.Contains(t, out.String(), "Built 2 pages (0 skipped, 1 static file)")
	require.Contains(t, out.String(), "Checked 1 link on 2 pages")

	for _, name := range []string{"index.html", "about.html", "site.css", "manifest.yaml"} {
		require.FileExists(t, filepath.Join(dir, "dist", name))
	}
}

func TestBuild_ConfigErrors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFiles(t, dir, map[string]string{"bad.yaml": "output:\n  directory: /\n"})

	g, _ := testGlobal("")
	err := run(t, g, "--config", "bad.yaml", "build")
	require.Equal(t, derrors.CategoryConfig, derrors.GetCategory(err))

	err = run(t, g, "--config", "missing.yaml", "build")
	require.Equal(t, derrors.CategoryConfig, derrors.GetCategory(err))
}

func TestLint_ReportsErrors(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"good.md": "# Fine\n\nplain text\n",
		"bad.md":  "- outer\n  - inner\n",
	})

	g, out := testGlobal("")
	err := run(t, g, "lint", dir)
	require.Error(t, err)
	require.Equal(t, derrors.CategoryLint, derrors.GetCategory(err))
	require.Contains(t, out.String(), "[nested-list]")

	g, out = testGlobal("")
	require.NoError(t, run(t, g, "lint", "--format", "json", filepath.Join(dir, "good.md")))
	require.True(t, strings.HasPrefix(out.String(), "{"))
}

func TestLint_DefaultsToContentDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFiles(t, dir, map[string]string{"content/index.md": "# Home\n"})

	g, out := testGlobal("")
	require.NoError(t, run(t, g, "lint"))
	require.Contains(t, out.String(), "1 file")
}

func TestWatch_InitialBuildThenStops(t *testing.T) {
	keepLogger(t)
	dir := t.TempDir()
	t.Chdir(dir)
	writeFiles(t, dir, map[string]string{"content/index.md": "# Home\n"})

	var cli CLI
	g, out := testGlobal("")
	cfg, err := cli.loadConfig(g)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	cmd := &WatchCmd{Debounce: 20 * time.Millisecond}
	require.NoError(t, cmd.run(ctx, g, cfg))
	require.Contains(t, out.String(), "Built 1 page")
	require.FileExists(t, filepath.Join(dir, "public", "index.html"))
	require.Contains(t, g.Stderr.(*bytes.Buffer).String(), "rebuilds=0")
}
