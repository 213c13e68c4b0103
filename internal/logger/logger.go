package logger

import (
	"fmt"
	stdlog "log"
	"os"
	"strings"
	"sync"
)

// Level represents log severity.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

var (
	mu       sync.Mutex
	out      = stdlog.New(os.Stderr, "", stdlog.LstdFlags)
	minLevel = INFO
)

// SetLevel sets the minimum severity that gets emitted.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = l
}

// ParseLevel converts a string to a Level, defaulting to INFO.
func ParseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return DEBUG
	case "WARN":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

func Debug(msg string, kv ...any) { emit(DEBUG, msg, kv...) }
func Info(msg string, kv ...any)  { emit(INFO, msg, kv...) }
func Warn(msg string, kv ...any)  { emit(WARN, msg, kv...) }

// Error logs a message with its causing error prepended to the key-value
// pairs.
func Error(msg string, err error, kv ...any) {
	emit(ERROR, msg, append([]any{"err", err}, kv...)...)
}

func emit(level Level, msg string, kv ...any) {
	mu.Lock()
	defer mu.Unlock()
	if level < minLevel {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", level, msg)
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&b, " %v=%v", kv[i], kv[i+1])
	}
	if len(kv)%2 == 1 {
		fmt.Fprintf(&b, " %v=?", kv[len(kv)-1])
	}
	out.Print(b.String())
}
