package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
)

// Logger writes leveled lines through the standard log package.
type Logger struct {
	info  *log.Logger
	error *log.Logger
	debug atomic.Bool
}

// Log is the process-wide logger.
var Log = New(os.Stdout, os.Stderr)

// New creates a logger writing info lines to out and errors to errOut.
func New(out, errOut io.Writer) *Logger {
	return &Logger{
		info:  log.New(out, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile),
		error: log.New(errOut, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile),
	}
}

// SetDebug toggles Debug output.
func (l *Logger) SetDebug(enabled bool) {
	l.debug.Store(enabled)
}

func (l *Logger) Info(msg string) {
	l.info.Output(2, msg)
}

func (l *Logger) Infof(format string, args ...any) {
	l.info.Output(2, fmt.Sprintf(format, args...))
}

func (l *Logger) Error(msg string) {
	l.error.Output(2, msg)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.error.Output(2, fmt.Sprintf(format, args...))
}

// Debugf logs on the info stream only when debug is enabled.
func (l *Logger) Debugf(format string, args ...any) {
	if !l.debug.Load() {
		return
	}
	l.info.Output(2, "DEBUG "+fmt.Sprintf(format, args...))
}
