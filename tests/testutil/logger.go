package testutil

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/systmms/cry/internal/logging"
)

// LogBuffer collects logger output for assertions.
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns everything logged so far.
func (b *LogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Lines returns the logged lines without the trailing newline.
func (b *LogBuffer) Lines() []string {
	s := strings.TrimRight(b.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// NewTestLogger returns an uncolored debug logger writing into a buffer.
//
// Example usage:
//
//	logger, logs := NewTestLogger(t)
//	d := dispatch.New(dispatch.Options{Logger: logger, ...})
//	AssertSecretRedacted(t, logs.String(), "token")
func NewTestLogger(t *testing.T) (*logging.Logger, *LogBuffer) {
	t.Helper()
	logs := &LogBuffer{}
	return logging.NewWithWriter(logs, true), logs
}
