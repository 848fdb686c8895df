package logging

import (
	"encoding/json"
	"log"
	"os"
	"sync/atomic"
	"time"

	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/constants"
)

type Fields map[string]interface{}

var debugEnabled atomic.Bool

func init() {
	debugEnabled.Store(os.Getenv(constants.EnvDebug) == "1")
}

// SetDebug toggles Debug output at runtime.
func SetDebug(on bool) { debugEnabled.Store(on) }

func output(level, msg string, fields Fields) {
	out := make(Fields, len(fields)+3)
	for k, v := range fields {
		out[k] = v
	}
	out["level"] = level
	out["ts"] = time.Now().UTC().Format(time.RFC3339)
	out["msg"] = msg
	b, err := json.Marshal(out)
	if err != nil {
		// fallback to plain logging
		log.Printf("%s: %s (%v)\n", level, msg, fields)
		return
	}
	log.Println(string(b))
}

// Debug logs a diagnostic message when SLAYER_DEBUG=1.
func Debug(msg string, fields Fields) {
	if !debugEnabled.Load() {
		return
	}
	output("debug", msg, fields)
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	output("info", msg, fields)
}

// Warn logs a recoverable problem.
func Warn(msg string, fields Fields) {
	output("warn", msg, fields)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	output("error", msg, withError(fields, err))
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	output("fatal", msg, withError(fields, err))
	os.Exit(1)
}

func withError(fields Fields, err error) Fields {
	if err == nil {
		return fields
	}
	out := make(Fields, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["error"] = err.Error()
	return out
}
