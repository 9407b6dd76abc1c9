package testutils

import (
	"bytes"
	"io"
	"net"
	"sync"
	"time"
)

// EOF is a script entry that makes the next read report end-of-stream.
const EOF = "\x00eof"

// ScriptedConn is a mock net.Conn whose reads follow a fixed script: each
// entry is delivered by one Read call, and an EOF entry delivers a single
// io.EOF signal. Once the script runs out every read reports io.EOF.
type ScriptedConn struct {
	mu       sync.Mutex
	script   []string
	pending  []byte
	reads    int
	writeBuf bytes.Buffer
	closed   bool
}

// NewScriptedConn creates a mock connection delivering the given reads.
func NewScriptedConn(script ...string) *ScriptedConn {
	return &ScriptedConn{script: script}
}

func (c *ScriptedConn) Read(b []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reads++

	if len(c.pending) == 0 {
		if len(c.script) == 0 {
			return 0, io.EOF
		}
		next := c.script[0]
		c.script = c.script[1:]
		if next == EOF {
			return 0, io.EOF
		}
		c.pending = []byte(next)
	}

	n := copy(b, c.pending)
	c.pending = c.pending[n:]
	return n, nil
}

func (c *ScriptedConn) Write(b []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeBuf.Write(b)
}

func (c *ScriptedConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// Reads returns how many Read calls were made, EOF signals included.
func (c *ScriptedConn) Reads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}

// Written returns everything written to the connection so far.
func (c *ScriptedConn) Written() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeBuf.String()
}

// Closed reports whether Close was called.
func (c *ScriptedConn) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *ScriptedConn) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0}
}

func (c *ScriptedConn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 106}
}

func (c *ScriptedConn) SetDeadline(t time.Time) error      { return nil }
func (c *ScriptedConn) SetReadDeadline(t time.Time) error  { return nil }
func (c *ScriptedConn) SetWriteDeadline(t time.Time) error { return nil }
