package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyOutput     = "output"
	KeyBlocks     = "blocks"
	KeyBlockIndex = "block"
	KeyPages      = "pages"
	KeySkipped    = "skipped"
	KeyFindings   = "findings"
	KeyRule       = "rule"
	KeyEvent      = "event"
	KeyAddr       = "addr"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr       { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr       { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr           { return slog.String(KeyPath, p) }
func File(f string) slog.Attr           { return slog.String(KeyFile, f) }
func Output(p string) slog.Attr         { return slog.String(KeyOutput, p) }
func Blocks(n int) slog.Attr            { return slog.Int(KeyBlocks, n) }
func BlockIndex(i int) slog.Attr        { return slog.Int(KeyBlockIndex, i) }
func Pages(n int) slog.Attr             { return slog.Int(KeyPages, n) }
func Skipped(n int) slog.Attr           { return slog.Int(KeySkipped, n) }
func Findings(n int) slog.Attr          { return slog.Int(KeyFindings, n) }
func Rule(id string) slog.Attr          { return slog.String(KeyRule, id) }
func Event(op string) slog.Attr         { return slog.String(KeyEvent, op) }
func Addr(a string) slog.Attr           { return slog.String(KeyAddr, a) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
