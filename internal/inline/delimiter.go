package inline

import (
	"fmt"
	"strings"
)

// UnmatchedDelimiterError reports a delimiter without a closing partner.
type UnmatchedDelimiterError struct {
	Delimiter string
	Text      string
}

func (e *UnmatchedDelimiterError) Error() string {
	return fmt.Sprintf("unmatched delimiter %q in %q", e.Delimiter, e.Text)
}

// SplitDelimiter rewrites every Plain run by splitting it on delimiter. Parts
// at odd indices get style, the others stay Plain, and empty parts are
// dropped. A split with an even number of parts means a delimiter is left
// open and fails the pass.
func SplitDelimiter(runs []Run, delimiter string, style Style) ([]Run, error) {
	out := make([]Run, 0, len(runs))
	for _, run := range runs {
		if run.Style != Plain {
			out = append(out, run)
			continue
		}

		parts := strings.Split(run.Content, delimiter)
		if len(parts) == 1 {
			out = append(out, run)
			continue
		}
		if len(parts)%2 == 0 {
			return nil, &UnmatchedDelimiterError{Delimiter: delimiter, Text: run.Content}
		}

		for i, part := range parts {
			if part == "" {
				continue
			}
			if i%2 == 0 {
				out = append(out, PlainRun(part))
			} else {
				out = append(out, Run{Content: part, Style: style})
			}
		}
	}
	return out, nil
}
