package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
)

type ctxKey string

const contextKeyRequestID ctxKey = "request_id"

var (
	mu  sync.Mutex
	out io.Writer = color.Output
)

// SetOutput redirects log output and returns the previous writer
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

// WithRequestID adds request ID to context for logging
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID, requestID)
}

// RequestID retrieves the request ID from context
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(contextKeyRequestID).(string); ok {
		return id
	}
	return ""
}

// formatLog formats log message with optional request ID
func formatLog(requestID string, format string, a ...interface{}) string {
	msg := fmt.Sprintf(format, a...)
	if requestID != "" {
		return fmt.Sprintf("[req_id=%s] %s", requestID, msg)
	}
	return msg
}

func write(label string, msg string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, "%s %s\n", label, msg)
}

var (
	infoLabel  = color.New(color.FgWhite, color.BgGreen).SprintFunc()
	warnLabel  = color.New(color.FgWhite, color.BgYellow).SprintFunc()
	errorLabel = color.New(color.FgRed).SprintFunc()
)

// Info log information
func Info(format string, a ...interface{}) {
	write(infoLabel("[INFO] "), fmt.Sprintf(format, a...))
}

// InfoWithContext logs information with context (includes request ID if available)
func InfoWithContext(ctx context.Context, format string, a ...interface{}) {
	write(infoLabel("[INFO] "), formatLog(RequestID(ctx), format, a...))
}

// Warn log warning
func Warn(format string, a ...interface{}) {
	write(warnLabel("[WARN] "), fmt.Sprintf(format, a...))
}

// WarnWithContext logs warning with context (includes request ID if available)
func WarnWithContext(ctx context.Context, format string, a ...interface{}) {
	write(warnLabel("[WARN] "), formatLog(RequestID(ctx), format, a...))
}

// Error log error
func Error(format string, a ...interface{}) {
	write(errorLabel("[Error]"), fmt.Sprintf(format, a...))
}

// ErrorWithContext logs error with context (includes request ID if available)
func ErrorWithContext(ctx context.Context, format string, a ...interface{}) {
	write(errorLabel("[Error]"), formatLog(RequestID(ctx), format, a...))
}

// InfoStruct dumps values at info level
func InfoStruct(a ...interface{}) {
	write(infoLabel("[INFO] "), spew.Sdump(a...))
}
