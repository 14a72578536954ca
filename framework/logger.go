package framework

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Logger is the minimal logging interface used throughout the harness. Both *log.Logger and the
// base loggers of ldlog satisfy it.
type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Printf(message string, args ...interface{}) {}

func NullLogger() Logger { return nullLogger{} }

type CapturedMessage struct {
	Time    time.Time
	Message string
}

type CapturedOutput []CapturedMessage

// CapturingLogger keeps messages in memory so that they can be shown only for the tests where
// they are wanted, typically the failed ones.
type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.lock.Lock()
	l.output = append(l.output, CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)})
	l.lock.Unlock()
}

func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append([]CapturedMessage(nil), l.output...)
	l.lock.Unlock()
	return ret
}

// Dump writes each message with its offset from the first one, which makes the time spent
// waiting for each response easy to read.
func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	if len(output) == 0 {
		return
	}
	start := output[0].Time
	for _, m := range output {
		fmt.Fprintf(dest, "%s[+%.3fs] %s\n",
			prefix,
			m.Time.Sub(start).Seconds(),
			m.Message,
		)
	}
}
