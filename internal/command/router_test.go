package command

import (
	"errors"
	"testing"
)

type captureSender struct {
	lines []string
	fail  bool
}

func (c *captureSender) SendLine(line string) error {
	if c.fail {
		return errors.New("link down")
	}
	c.lines = append(c.lines, line)
	return nil
}

func TestDispatchPrefixMatch(t *testing.T) {
	r := NewRouter(nil)

	var gotParam string
	r.Register("A", func(param string) { gotParam = param })

	if !r.Dispatch("Ap2p") {
		t.Fatal("Dispatch reported no handler")
	}
	if gotParam != "p2p" {
		t.Errorf("param = %q, want %q", gotParam, "p2p")
	}
}

func TestDispatchFirstMatchWins(t *testing.T) {
	r := NewRouter(nil)

	var hit string
	r.Register("AB", func(string) { hit = "long" })
	r.Register("A", func(string) { hit = "short" })

	r.Dispatch("ABx")
	if hit != "long" {
		t.Errorf("hit = %q, want the first registered prefix", hit)
	}

	r.Dispatch("AZ")
	if hit != "short" {
		t.Errorf("hit = %q, want the fallback prefix", hit)
	}
}

func TestDispatchTrimsWhitespace(t *testing.T) {
	r := NewRouter(nil)

	var gotParam string
	r.Register("L", func(param string) { gotParam = param })

	if !r.Dispatch("  L150\r\n") {
		t.Fatal("Dispatch reported no handler")
	}
	if gotParam != "150" {
		t.Errorf("param = %q, want %q", gotParam, "150")
	}
}

func TestDispatchUnmatched(t *testing.T) {
	r := NewRouter(nil)
	r.Register("M", func(string) { t.Error("handler ran for unmatched line") })

	if r.Dispatch("X") {
		t.Error("Dispatch reported a handler for an unknown prefix")
	}
	if r.Dispatch("") {
		t.Error("Dispatch reported a handler for an empty line")
	}
	if r.Dispatch("   ") {
		t.Error("Dispatch reported a handler for a blank line")
	}
}

func TestSendStringFraming(t *testing.T) {
	sender := &captureSender{}
	r := NewRouter(sender)

	r.SendString("M", "rPulse")
	r.SendValue("S", 512)

	want := []string{"*MrPulse*", "*S512*"}
	if len(sender.lines) != len(want) {
		t.Fatalf("sent %d lines, want %d", len(sender.lines), len(want))
	}
	for i := range want {
		if sender.lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, sender.lines[i], want[i])
		}
	}
}

func TestSendWithoutSenderIsNoop(t *testing.T) {
	r := NewRouter(nil)
	r.SendString("M", "x") // must not panic
}

func TestSendFailureIsSwallowed(t *testing.T) {
	r := NewRouter(&captureSender{fail: true})
	r.SendValue("S", 1) // logged, not fatal
}
