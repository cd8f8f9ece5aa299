package lib

import "testing"

// Logger receives debugging information from the transports and the checker
type Logger interface {
	Print(a ...any)
	Printf(format string, a ...any)
}

type NoLog struct{}

func (l *NoLog) Print(a ...any)                 {}
func (l *NoLog) Printf(format string, a ...any) {}

// OrNoLog returns logger, or a logger discarding everything when nil
func OrNoLog(logger Logger) Logger {
	if logger == nil {
		return &NoLog{}
	}
	return logger
}

type TestLogger struct {
	t      *testing.T
	prefix string
}

func NewTestLogger(t *testing.T, prefix string) *TestLogger {
	return &TestLogger{
		t:      t,
		prefix: prefix,
	}
}

func (l *TestLogger) Print(a ...any) {
	l.t.Helper()
	if l.prefix == "" {
		l.t.Log(a...)
	} else {
		l.t.Log(append([]any{l.prefix + ":"}, a...)...)
	}
}

func (l *TestLogger) Printf(format string, a ...any) {
	l.t.Helper()
	if l.prefix != "" {
		format = l.prefix + ": " + format
	}
	l.t.Logf(format, a...)
}
