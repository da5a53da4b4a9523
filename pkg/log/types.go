package log

// Logger is the structured logging interface used throughout the SDK.
// Implementations must be safe for concurrent use. Message context is passed
// as alternating keys and values (e.g., "address", addr, "attempt", n).
type Logger interface {
	// Debug logs low-level detail useful during development.
	Debug(msg string, keysAndValues ...any)
	// Info logs routine progress and state changes.
	Info(msg string, keysAndValues ...any)
	// Warn logs unexpected situations the SDK can recover from.
	Warn(msg string, keysAndValues ...any)
	// Error logs failures that prevent an operation from completing.
	Error(msg string, keysAndValues ...any)
	// Fatal logs an unrecoverable failure; implementations may exit the process.
	Fatal(msg string, keysAndValues ...any)
	// WithKV returns a logger that attaches the key-value pair to every
	// future message.
	WithKV(key string, value any) Logger
	// WithName returns a logger scoped to the given component name.
	WithName(name string) Logger
	// Name returns the logger's component name.
	Name() string
}

// Level represents the severity of a log message.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelFatal Level = "fatal"
)
