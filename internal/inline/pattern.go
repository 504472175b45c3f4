package inline

import "regexp"

var (
	imagePattern = regexp.MustCompile(`!\[([^\[\]]*)\]\(([^\(\)]*)\)`)
	linkPattern  = regexp.MustCompile(`\[([^\[\]]*)\]\(([^\(\)]*)\)`)
)

// Match is one image or link occurrence; Start and End are byte offsets of
// the whole construct in the scanned text.
type Match struct {
	Alt    string
	Target string
	Start  int
	End    int
}

// ExtractImages returns every ![alt](target) in text, left to right.
func ExtractImages(text string) []Match {
	return extract(imagePattern, text, false)
}

// ExtractLinks returns every [alt](target) in text that is not image syntax.
func ExtractLinks(text string) []Match {
	return extract(linkPattern, text, true)
}

func extract(re *regexp.Regexp, text string, skipBang bool) []Match {
	var out []Match
	for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
		start, end := loc[0], loc[1]
		if skipBang && start > 0 && text[start-1] == '!' {
			continue
		}
		out = append(out, Match{
			Alt:    text[loc[2]:loc[3]],
			Target: text[loc[4]:loc[5]],
			Start:  start,
			End:    end,
		})
	}
	return out
}

// SplitImages replaces image syntax inside Plain runs with Image runs.
func SplitImages(runs []Run) ([]Run, error) {
	return splitPattern(runs, ExtractImages, Image), nil
}

// SplitLinks replaces link syntax inside Plain runs with Link runs.
func SplitLinks(runs []Run) ([]Run, error) {
	return splitPattern(runs, ExtractLinks, Link), nil
}

func splitPattern(runs []Run, find func(string) []Match, style Style) []Run {
	out := make([]Run, 0, len(runs))
	for _, run := range runs {
		if run.Style != Plain {
			out = append(out, run)
			continue
		}

		matches := find(run.Content)
		if len(matches) == 0 {
			out = append(out, run)
			continue
		}

		pos := 0
		for _, m := range matches {
			if m.Start > pos {
				out = append(out, PlainRun(run.Content[pos:m.Start]))
			}
			out = append(out, Run{Content: m.Alt, Style: style, Target: m.Target})
			pos = m.End
		}
		if pos < len(run.Content) {
			out = append(out, PlainRun(run.Content[pos:]))
		}
	}
	return out
}
