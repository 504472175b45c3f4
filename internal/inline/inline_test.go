package inline

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func plain(s string) Run { return PlainRun(s) }
func styled(s string, st Style) Run {
	return Run{Content: s, Style: st}
}
func target(s string, st Style, url string) Run {
	return Run{Content: s, Style: st, Target: url}
}

func TestSplitDelimiter(t *testing.T) {
	tests := []struct {
		name      string
		in        []Run
		delimiter string
		style     Style
		expected  []Run
	}{
		{
			name:      "bold",
			in:        []Run{plain("This is text with a **bold** word")},
			delimiter: BoldDelimiter,
			style:     Bold,
			expected:  []Run{plain("This is text with a "), styled("bold", Bold), plain(" word")},
		},
		{
			name:      "italic",
			in:        []Run{plain("This is text with an *italic* word")},
			delimiter: ItalicDelimiter,
			style:     Italic,
			expected:  []Run{plain("This is text with an "), styled("italic", Italic), plain(" word")},
		},
		{
			name:      "code",
			in:        []Run{plain("This is text with a `code block` word")},
			delimiter: CodeDelimiter,
			style:     Code,
			expected:  []Run{plain("This is text with a "), styled("code block", Code), plain(" word")},
		},
		{
			name:      "multiple occurrences",
			in:        []Run{plain("This has **bold** and **more bold** text")},
			delimiter: BoldDelimiter,
			style:     Bold,
			expected:  []Run{plain("This has "), styled("bold", Bold), plain(" and "), styled("more bold", Bold), plain(" text")},
		},
		{
			name:      "no delimiter",
			in:        []Run{plain("This is just plain text")},
			delimiter: BoldDelimiter,
			style:     Bold,
			expected:  []Run{plain("This is just plain text")},
		},
		{
			name:      "multiple runs",
			in:        []Run{plain("First **bold** text"), plain("Second node with **bold**")},
			delimiter: BoldDelimiter,
			style:     Bold,
			expected:  []Run{plain("First "), styled("bold", Bold), plain(" text"), plain("Second node with "), styled("bold", Bold)},
		},
		{
			name:      "delimiter at edges",
			in:        []Run{plain("**all bold**")},
			delimiter: BoldDelimiter,
			style:     Bold,
			expected:  []Run{styled("all bold", Bold)},
		},
		{
			name:      "adjacent delimiters drop empty parts",
			in:        []Run{plain("a****b")},
			delimiter: BoldDelimiter,
			style:     Bold,
			expected:  []Run{plain("a"), plain("b")},
		},
		{
			name:      "styled runs pass through",
			in:        []Run{styled("x*y*z", Code), plain("a *b*")},
			delimiter: ItalicDelimiter,
			style:     Italic,
			expected:  []Run{styled("x*y*z", Code), plain("a "), styled("b", Italic)},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := SplitDelimiter(test.in, test.delimiter, test.style)
			require.NoError(t, err)
			require.Equal(t, test.expected, got)
		})
	}
}

func TestSplitDelimiter_Unmatched(t *testing.T) {
	tests := []struct {
		text      string
		delimiter string
	}{
		{"a **b", BoldDelimiter},
		{"**a** **b", BoldDelimiter},
		{"an *open italic", ItalicDelimiter},
		{"`code", CodeDelimiter},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			got, err := SplitDelimiter([]Run{plain(test.text)}, test.delimiter, Bold)
			require.Nil(t, got)
			var ude *UnmatchedDelimiterError
			require.True(t, errors.As(err, &ude))
			require.Equal(t, test.delimiter, ude.Delimiter)
			require.Equal(t, test.text, ude.Text)
		})
	}
}

// A string with k "**" delimiters splits into k+1 parts; an odd part count
// yields exactly (parts-1)/2 bold runs.
func TestSplitDelimiter_BalanceProperty(t *testing.T) {
	for pairs := 1; pairs <= 6; pairs++ {
		text := "x" + strings.Repeat(" **b** x", pairs)
		got, err := SplitDelimiter([]Run{plain(text)}, BoldDelimiter, Bold)
		require.NoError(t, err)

		parts := strings.Count(text, BoldDelimiter) + 1
		bold := 0
		for _, r := range got {
			if r.Style == Bold {
				bold++
			}
		}
		require.Equal(t, (parts-1)/2, bold)

		_, err = SplitDelimiter([]Run{plain(text + " **")}, BoldDelimiter, Bold)
		require.Error(t, err)
	}
}

func TestExtractImages(t *testing.T) {
	got := ExtractImages("This is text with a ![rick roll](https://i.imgur.com/aKaOqIh.gif) and ![obi wan](https://i.imgur.com/fJRm4Vk.jpeg)")
	require.Len(t, got, 2)
	require.Equal(t, "rick roll", got[0].Alt)
	require.Equal(t, "https://i.imgur.com/aKaOqIh.gif", got[0].Target)
	require.Equal(t, "obi wan", got[1].Alt)
	require.Equal(t, "https://i.imgur.com/fJRm4Vk.jpeg", got[1].Target)

	require.Empty(t, ExtractImages("a [link](https://example.com)"))
}

func TestExtractLinks(t *testing.T) {
	got := ExtractLinks("This is text with a link [to boot dev](https://www.boot.dev) and [to youtube](https://www.youtube.com/@bootdotdev)")
	require.Equal(t, []Match{
		{Alt: "to boot dev", Target: "https://www.boot.dev", Start: 25, End: 60},
		{Alt: "to youtube", Target: "https://www.youtube.com/@bootdotdev", Start: 65, End: 114},
	}, got)
}

func TestExtractLinks_NeverMatchesImages(t *testing.T) {
	require.Empty(t, ExtractLinks("![a](x.png)"))
	require.Empty(t, ExtractLinks("![a](x.png) and ![b](y.png)"))

	got := ExtractLinks("![a](x.png)[b](y)")
	require.Len(t, got, 1)
	require.Equal(t, "b", got[0].Alt)
}

func TestSplitImagesAndLinks(t *testing.T) {
	runs, err := SplitImages([]Run{plain("See ![logo](l.png) and [home](/) now")})
	require.NoError(t, err)
	require.Equal(t, []Run{plain("See "), target("logo", Image, "l.png"), plain(" and [home](/) now")}, runs)

	runs, err = SplitLinks(runs)
	require.NoError(t, err)
	require.Equal(t, []Run{
		plain("See "),
		target("logo", Image, "l.png"),
		plain(" and "),
		target("home", Link, "/"),
		plain(" now"),
	}, runs)
}

func TestSplitLinks_OnlyPlainRuns(t *testing.T) {
	in := []Run{styled("[x](y)", Code), plain("[a](b)")}
	got, err := SplitLinks(in)
	require.NoError(t, err)
	require.Equal(t, []Run{styled("[x](y)", Code), target("a", Link, "b")}, got)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []Run
	}{
		{
			name:     "empty",
			text:     "",
			expected: nil,
		},
		{
			name:     "plain",
			text:     "just text",
			expected: []Run{plain("just text")},
		},
		{
			name: "bold before italic",
			text: "Some **bold** and *em* text",
			expected: []Run{
				plain("Some "), styled("bold", Bold), plain(" and "), styled("em", Italic), plain(" text"),
			},
		},
		{
			name: "everything",
			text: "This is **text** with an *italic* word and a `code block` and an ![obi wan image](https://i.imgur.com/fJRm4Vk.jpeg) and a [link](https://boot.dev)",
			expected: []Run{
				plain("This is "),
				styled("text", Bold),
				plain(" with an "),
				styled("italic", Italic),
				plain(" word and a "),
				styled("code block", Code),
				plain(" and an "),
				target("obi wan image", Image, "https://i.imgur.com/fJRm4Vk.jpeg"),
				plain(" and a "),
				target("link", Link, "https://boot.dev"),
			},
		},
		{
			name:     "code content is opaque to link pass",
			text:     "`[a](b)`",
			expected: []Run{styled("[a](b)", Code)},
		},
		{
			name:     "only delimiters",
			text:     "****",
			expected: []Run{},
		},
		{
			name:     "multi-line text keeps newlines",
			text:     "line one\nline **two**",
			expected: []Run{plain("line one\nline "), styled("two", Bold)},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Parse(test.text)
			require.NoError(t, err)
			require.Equal(t, test.expected, got)
		})
	}
}

func TestParse_UnmatchedDelimiterAborts(t *testing.T) {
	tests := []struct {
		text      string
		delimiter string
	}{
		{"a **b", BoldDelimiter},
		{"a *b", ItalicDelimiter},
		{"a `b", CodeDelimiter},
		// Italic runs before code, so a lone "*" inside a code span is unmatched.
		{"use `x*y` here", ItalicDelimiter},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			runs, err := Parse(test.text)
			require.Nil(t, runs)
			var ude *UnmatchedDelimiterError
			require.ErrorAs(t, err, &ude)
			require.Equal(t, test.delimiter, ude.Delimiter)
		})
	}
}

func TestStyleString(t *testing.T) {
	require.Equal(t, "plain", Plain.String())
	require.Equal(t, "image", Image.String())
	require.Equal(t, "style(9)", Style(9).String())
	require.Equal(t, `Run("a", link, "u")`, target("a", Link, "u").String())
	require.Equal(t, `Run("a", bold)`, styled("a", Bold).String())
}
