package transport

import (
	"fmt"
	"io"
	"sync"

	"github.com/dooshek/vibelight/internal/command"
)

// LineWriter sends status frames to any writer, one per line. Used for
// plain-terminal runs where no websocket client is attached.
type LineWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{w: w}
}

func (l *LineWriter) SendLine(line string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := fmt.Fprintln(l.w, line)
	return err
}

type multi []command.Sender

// Multi fans one status frame out to several senders. The first error
// wins but every sender is attempted.
func Multi(senders ...command.Sender) command.Sender {
	return multi(senders)
}

func (m multi) SendLine(line string) error {
	var first error
	for _, s := range m {
		if err := s.SendLine(line); err != nil && first == nil {
			first = err
		}
	}
	return first
}
