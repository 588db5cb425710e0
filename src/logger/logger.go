// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/helper/gc"
)

// Logger defines the interface for logging operations.
// It provides methods for formatted output and redirecting the destination.
//
// The CLI uses a human-readable implementation, while the [AWS Lambda] and [MCP]
// runtimes use structured JSON lines so that log collectors can parse them.
//
// [AWS Lambda]: https://docs.aws.amazon.com/lambda/latest/dg/golang-logging.html
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type Logger interface {
	// Printf formats and prints a log message.
	Printf(format string, v ...any)
	// Println prints a log message with a newline.
	Println(v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting.
type CLILogger struct{ logger *log.Logger }

// NewCLILogger creates a new CLI logger with timestamps disabled writing to stderr,
// which keeps stdout free for reports and JSON output.
func NewCLILogger() *CLILogger {
	l := log.New(os.Stderr, "", 0)
	return &CLILogger{logger: l}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// JSONLogger implements Logger with one JSON object per line.
// Each entry carries "time", "level", "component" and "message" keys.
//
// JSONLogger is safe for concurrent use by multiple goroutines.
type JSONLogger struct {
	mu        sync.Mutex
	writer    io.Writer
	silent    bool
	component string
	now       func() time.Time
}

// NewJSONLogger creates a new structured logger.
//
// Parameters:
//   - writer: Destination; nil discards output
//   - component: Value of the "component" key (e.g. "lambda-monitor")
//   - silent: Suppress all output
//
// Returns:
//   - *JSONLogger: Ready to use logger
func NewJSONLogger(writer io.Writer, component string, silent bool) *JSONLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &JSONLogger{
		writer:    writer,
		silent:    silent,
		component: component,
		now:       time.Now,
	}
}

type entry struct {
	Time      string `json:"time"`
	Level     string `json:"level"`
	Component string `json:"component,omitempty"`
	Message   string `json:"message"`
}

// Printf formats and logs a structured message.
// Output is suppressed if silent mode is enabled.
func (j *JSONLogger) Printf(format string, v ...any) {
	if j.silent {
		return
	}
	j.write(fmt.Sprintf(format, v...))
}

// Println logs a structured message.
// Output is suppressed if silent mode is enabled.
func (j *JSONLogger) Println(v ...any) {
	if j.silent {
		return
	}
	j.write(fmt.Sprint(v...))
}

func (j *JSONLogger) write(msg string) {
	data, err := json.Marshal(entry{
		Time:      j.now().UTC().Format(time.RFC3339),
		Level:     "info",
		Component: j.component,
		Message:   msg,
	})
	if err != nil {
		return
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()
	buf.Write(data)
	buf.WriteByte('\n')

	j.mu.Lock()
	buf.WriteTo(j.writer)
	j.mu.Unlock()
}

// SetOutput sets the output destination for the JSON logger.
// A nil writer discards output.
//
// SetOutput is safe for concurrent use by multiple goroutines.
func (j *JSONLogger) SetOutput(w io.Writer) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if w == nil {
		j.writer = io.Discard
	} else {
		j.writer = w
	}
}
