// Package logger provides leveled, color-aware console logging for sync
// runs: config warnings and other diagnostics. Per-operation summary lines
// and the "Nothing to do" notice are written directly, not through it.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const (
	levelDebug int = 0
	levelInfo  int = 1
	levelWarn  int = 2
	levelError int = 3
)

// Logger writes timestamped, level-filtered messages to a writer. Color
// output is set by NewLogger's color argument; NewAutoLogger enables it
// only when the writer is a TTY.
type Logger struct {
	writer   io.Writer
	level    int
	useColor bool
	mutex    sync.Mutex

	warnColor  *color.Color
	errorColor *color.Color
	dimColor   *color.Color
}

// NewLogger builds a Logger writing to writer, filtering to levelName
// ("debug", "info", "warn", "error"; defaults to "info"). color forces
// color output on or off regardless of TTY detection.
func NewLogger(writer io.Writer, levelName string, color_ bool) *Logger {
	l := &Logger{
		writer:   writer,
		level:    parseLevel(levelName),
		useColor: color_,
	}
	l.warnColor = color.New(color.FgYellow)
	l.errorColor = color.New(color.FgRed)
	l.dimColor = color.New(color.FgHiBlack)
	if !l.useColor {
		l.warnColor.DisableColor()
		l.errorColor.DisableColor()
		l.dimColor.DisableColor()
	}
	return l
}

// NewAutoLogger builds a Logger writing to writer, enabling color only when
// writer is a TTY (os.Stdout or os.Stderr).
func NewAutoLogger(writer io.Writer, levelName string) *Logger {
	return NewLogger(writer, levelName, isTerminal(writer))
}

func isTerminal(w io.Writer) bool {
	if w == os.Stdout {
		return isatty.IsTerminal(os.Stdout.Fd())
	}
	if w == os.Stderr {
		return isatty.IsTerminal(os.Stderr.Fd())
	}
	return false
}

func parseLevel(name string) int {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

func (l *Logger) shouldLog(level int) bool { return level >= l.level }

func (l *Logger) write(level int, prefix string, colorize func(string) string, message string) {
	if !l.shouldLog(level) {
		return
	}
	l.mutex.Lock()
	defer l.mutex.Unlock()
	line := fmt.Sprintf("[%s] [%s] %s\n", time.Now().Format("15:04:05"), prefix, message)
	if colorize != nil {
		line = colorize(line)
	}
	fmt.Fprint(l.writer, line)
}

// Debug logs a debug-level message.
func (l *Logger) Debug(message string) { l.write(levelDebug, "DEBUG", l.dimColor.Sprint, message) }

// Info logs an info-level message, uncolored.
func (l *Logger) Info(message string) { l.write(levelInfo, "INFO", nil, message) }

// Warn logs a warn-level message in yellow.
func (l *Logger) Warn(message string) { l.write(levelWarn, "WARN", l.warnColor.Sprint, message) }

// Error logs an error-level message in red.
func (l *Logger) Error(message string) { l.write(levelError, "ERROR", l.errorColor.Sprint, message) }

// Infof formats and logs an info-level message.
func (l *Logger) Infof(format string, args ...interface{}) { l.Info(fmt.Sprintf(format, args...)) }

// Warnf formats and logs a warn-level message.
func (l *Logger) Warnf(format string, args ...interface{}) { l.Warn(fmt.Sprintf(format, args...)) }

// Errorf formats and logs an error-level message.
func (l *Logger) Errorf(format string, args ...interface{}) { l.Error(fmt.Sprintf(format, args...)) }
