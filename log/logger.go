package log

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dpotapov/slogpfx"
)

// Logger is a wrapper around a slog.Logger which keeps track of prefixes, such that prefixes can be
// added in a hierarchical manner, ex. "[signer][lcd] broadcasting tx".
type Logger struct {
	*slog.Logger

	rawLogLevel string
	prefixes    []string
}

// Default logger is simply at INFO level, writing to stderr.
func Default() *Logger {
	return NewLogger("info")
}

// Create a new logger without a prefix.
func NewLogger(rawLogLevel string) *Logger {
	return NewLoggerWithWriter(rawLogLevel, os.Stderr)
}

// Create a new logger that writes to the given writer.
func NewLoggerWithWriter(rawLogLevel string, w io.Writer) *Logger {
	slogger := newSlogger(rawLogLevel, w)
	return newLoggerWithSlogger(slogger, rawLogLevel, []string{})
}

// Create a new logger with a set of prefixes.
func NewLoggerWithPrefixes(rawLogLevel string, prefixes []string) *Logger {
	slogger := newSlogger(rawLogLevel, os.Stderr)
	return newLoggerWithSlogger(slogger, rawLogLevel, prefixes)
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *Logger {
	return NewLoggerWithWriter("error", io.Discard)
}

func newLoggerWithSlogger(slogger *slog.Logger, rawLogLevel string, prefixes []string) *Logger {
	// Copy so that siblings derived from the same parent never share a backing array
	owned := make([]string, len(prefixes))
	copy(owned, prefixes)

	prefix := strings.Join(owned, "")
	prefixedSlogger := slogger.With(prefixKey, prefix)

	return &Logger{
		Logger:      prefixedSlogger,
		rawLogLevel: rawLogLevel,
		prefixes:    owned,
	}
}

// Add an additional prefix to the logger
func (l *Logger) ApplyPrefix(prefix string) *Logger {
	return newLoggerWithSlogger(l.Logger, l.rawLogLevel, append(l.prefixes, prefix))
}

// Add a value to the logger
func (l *Logger) With(args ...any) *Logger {
	slogger := l.Logger.With(args...)
	return newLoggerWithSlogger(slogger, l.rawLogLevel, l.prefixes)
}

// Prefix key is the "magic" key that makes this all work. Any value sent to this key is a prefix,
// consumed by the slogpfx handler.
const prefixKey = "_prefixKey"

func newSlogger(rawLogLevel string, w io.Writer) *slog.Logger {
	lvl := new(slog.LevelVar)
	lvl.Set(ParseLogLevel(rawLogLevel))

	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lvl,
	})

	// The default in slogpfx uses a '>' symbol, we just concatenate.
	prefixFormatter := func(prefixes []slog.Value) string {
		p := make([]string, 0, len(prefixes))
		for _, prefix := range prefixes {
			if prefix.Any() == nil || prefix.String() == "" {
				continue
			}
			p = append(p, prefix.String())
		}
		if len(p) == 0 {
			return ""
		}
		return strings.Join(p, "") + " "
	}

	prefixHandler := slogpfx.NewHandler(textHandler, &slogpfx.HandlerOptions{
		PrefixKeys:      []string{prefixKey},
		PrefixFormatter: prefixFormatter,
	})

	return slog.New(prefixHandler)
}
