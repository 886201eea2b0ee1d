// Package command routes inbound text commands to registered handlers
// and frames outbound status values. The wire contract matches the
// phone-app transport of the original hardware: one command per line,
// matched by prefix, with the remainder of the line as the parameter;
// status pushed as *<tag><value>* frames.
package command

import (
	"fmt"
	"strings"

	"github.com/dooshek/vibelight/internal/logger"
)

// Sender delivers one framed line to the transport. Implementations
// decide what a "line" is on their medium.
type Sender interface {
	SendLine(line string) error
}

// Handler receives the text that followed the matched prefix.
type Handler func(param string)

type entry struct {
	prefix string
	action Handler
}

// Router matches inbound lines against registered prefixes in
// registration order; the first match wins.
type Router struct {
	entries []entry
	sender  Sender
}

func NewRouter(sender Sender) *Router {
	return &Router{sender: sender}
}

// Register adds a command prefix. Registration order is match order.
func (r *Router) Register(prefix string, action Handler) {
	r.entries = append(r.entries, entry{prefix: prefix, action: action})
}

// Dispatch trims the line and hands it to the first handler whose
// prefix matches. It reports whether any handler ran.
func (r *Router) Dispatch(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	for _, e := range r.entries {
		if strings.HasPrefix(line, e.prefix) {
			logger.Debugf("Command %q matched prefix %q", line, e.prefix)
			e.action(line[len(e.prefix):])
			return true
		}
	}
	logger.Debugf("No handler for command %q", line)
	return false
}

// SendString pushes a framed status string: *<tag><value>*.
func (r *Router) SendString(tag, value string) {
	if r.sender == nil {
		return
	}
	if err := r.sender.SendLine(fmt.Sprintf("*%s%s*", tag, value)); err != nil {
		logger.Warnf("Failed to send status %s: %v", tag, err)
	}
}

// SendValue pushes a framed numeric status value.
func (r *Router) SendValue(tag string, value int) {
	r.SendString(tag, fmt.Sprintf("%d", value))
}
