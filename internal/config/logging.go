package config

import "strings"

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// normalizer maps case-insensitive, trimmed input onto a closed set of values.
type normalizer[T ~string] struct {
	values map[string]T
	def    T
}

func newNormalizer[T ~string](def T, values ...T) normalizer[T] {
	m := make(map[string]T, len(values))
	for _, v := range values {
		m[string(v)] = v
	}
	return normalizer[T]{values: m, def: def}
}

func (n normalizer[T]) normalize(raw string) T {
	if v, ok := n.values[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return v
	}
	return n.def
}

var (
	logLevels  = newNormalizer(LogLevelInfo, LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError)
	logFormats = newNormalizer(LogFormatText, LogFormatText, LogFormatJSON)
)

// NormalizeLogLevel returns the canonical level, defaulting to info.
func NormalizeLogLevel(raw string) LogLevel {
	if strings.EqualFold(strings.TrimSpace(raw), "warning") {
		return LogLevelWarn
	}
	return logLevels.normalize(raw)
}

// NormalizeLogFormat returns the canonical format, defaulting to text.
func NormalizeLogFormat(raw string) LogFormat {
	return logFormats.normalize(raw)
}
