package framework

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const timestampFormat = "15:04:05.000"

// Logger is the minimal logging interface used throughout the verifier. A *zerolog.Logger
// satisfies it, as does CapturingLogger.
type Logger interface {
	Printf(message string, args ...interface{})
}

// NullLogger returns a Logger that discards everything.
func NullLogger() Logger { return nullLogger{} }

type nullLogger struct{}

func (nullLogger) Printf(string, ...interface{}) {}

// CapturedMessage is one entry of a check's debug output.
type CapturedMessage struct {
	Time    time.Time
	Message string
}

func (m CapturedMessage) String() string {
	return "[" + m.Time.Format(timestampFormat) + "] " + m.Message
}

type CapturedOutput []CapturedMessage

// Dump writes the output with prefix at the start of every line. A message that spans several
// lines, such as a response body, keeps the prefix on each of them.
func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		for _, line := range strings.Split(m.String(), "\n") {
			fmt.Fprintf(dest, "%s%s\n", prefix, line)
		}
	}
}

// CapturingLogger keeps messages in memory so they can be shown only if a check's outcome
// calls for it.
type CapturingLogger struct {
	mu       sync.Mutex
	messages CapturedOutput
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	m := CapturedMessage{Time: now(), Message: fmt.Sprintf(message, args...)}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, m)
}

// Output returns a copy of everything logged so far.
func (l *CapturingLogger) Output() CapturedOutput {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append(CapturedOutput(nil), l.messages...)
}
