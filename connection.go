package cgpcli

import (
	"bufio"
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/pior/cgpcli/protocol"
)

var (
	ErrConnectionClosed = errors.New("cgpcli: connection closed")
)

// Connection owns the management socket. It writes one command line and
// blocks for one reply line; it has no protocol semantics beyond framing.
type Connection struct {
	conn     net.Conn
	reader   *bufio.Reader
	timeout  time.Duration
	observer Observer
	mu       sync.Mutex
	closed   bool
}

// NewConnection wraps an established socket.
func NewConnection(conn net.Conn, timeout time.Duration, observer Observer) *Connection {
	return &Connection{
		conn:     conn,
		reader:   bufio.NewReader(conn),
		timeout:  timeout,
		observer: observer,
	}
}

// Dial opens the management socket with the connect timeout.
func Dial(addr string, timeout time.Duration, observer Observer) (*Connection, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, &protocol.ConnectionError{Op: "dial", Err: err}
	}
	return NewConnection(conn, timeout, observer), nil
}

// Send writes one CRLF-terminated command line and reads exactly one reply
// line. A single spurious end-of-stream on read is tolerated with one silent
// re-read; a second consecutive end-of-stream yields a ProtocolError and
// marks the connection unusable.
func (c *Connection) Send(command string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return "", ErrConnectionClosed
	}

	c.setDeadline()

	observe(c.observer, Send, command)
	if _, err := io.WriteString(c.conn, command+protocol.CRLF); err != nil {
		c.closed = true
		return "", &protocol.ConnectionError{Op: "write", Err: err}
	}

	line, err := c.readLine()
	if err == io.EOF {
		// one spurious end-of-stream signal is tolerated
		line, err = c.readLine()
		if err == io.EOF {
			c.closed = true
			return "", &protocol.ProtocolError{Message: "stream closed while waiting for reply"}
		}
	}
	if err != nil {
		c.closed = true
		return "", wrapReadError(err)
	}

	observe(c.observer, Recv, line)
	return line, nil
}

// ReadLine reads one unsolicited line, such as the server greeting pushed
// right after the socket opens.
func (c *Connection) ReadLine() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return "", ErrConnectionClosed
	}

	c.setDeadline()

	line, err := c.readLine()
	if err != nil {
		c.closed = true
		if err == io.EOF {
			return "", &protocol.ProtocolError{Message: "stream closed before greeting"}
		}
		return "", wrapReadError(err)
	}

	observe(c.observer, Recv, line)
	return line, nil
}

// wrapReadError keeps protocol errors intact and wraps plain I/O errors.
func wrapReadError(err error) error {
	var pe *protocol.ProtocolError
	if errors.As(err, &pe) {
		return err
	}
	return &protocol.ConnectionError{Op: "read", Err: err}
}

// readLine must be called with the lock held. io.EOF is returned untouched
// so Send can apply the single-retry tolerance.
func (c *Connection) readLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && line == "" {
			return "", io.EOF
		}
		if err == io.EOF {
			// partial line followed by stream end: the reply is unusable
			return "", &protocol.ProtocolError{Message: "truncated reply line"}
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Connection) setDeadline() {
	if c.timeout > 0 {
		_ = c.conn.SetDeadline(time.Now().Add(c.timeout))
	} else {
		_ = c.conn.SetDeadline(time.Time{})
	}
}

// IsClosed returns whether the connection is closed
func (c *Connection) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Close closes the connection
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}
