package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Domain field helpers

func Component(name string) Field {
	return String("component", name)
}

// Structure tags the structure family ("array", "bst", ...).
func Structure(kind string) Field {
	return String("structure", kind)
}

func Operation(op string) Field {
	return String("operation", op)
}

func SessionID(id string) Field {
	return String("session_id", id)
}

// Frames is the length of a recorded trace.
func Frames(n int) Field {
	return Int("frames", n)
}

// Cursor is the player's frame index.
func Cursor(i int) Field {
	return Int("cursor", i)
}

// Source tells where an assistant answer came from.
func Source(s string) Field {
	return String("source", s)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

func Path(p string) Field {
	return String("path", p)
}
