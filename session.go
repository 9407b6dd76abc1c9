package cgpcli

import (
	"errors"

	"github.com/pior/cgpcli/protocol"
)

type sessionState int

const (
	stateDisconnected sessionState = iota
	stateConnecting
	stateConnected
)

// Session orchestrates the connect/login handshake and routes each command
// through cache, transport, classifier and decoder.
//
// A session is strictly synchronous and owns exactly one socket; it is not
// safe for concurrent use. Parallel workloads open one session per worker or
// use SessionPool.
type Session struct {
	config Config
	conn   *Connection
	cache  *responseCache
	state  sessionState
}

// NewSession creates a disconnected session. The first Execute connects
// lazily; call Connect to fail fast instead.
func NewSession(config Config) *Session {
	return &Session{
		config: config,
		cache:  newResponseCache(),
	}
}

// Connect dials the management socket and performs the login handshake:
// the server greeting, the credential line, the password line, and the
// switch to inline (one-line) replies. Any classification failure aborts the
// setup, closes the socket, and surfaces the originating error untouched.
func (s *Session) Connect() error {
	if s.state == stateConnected {
		return nil
	}
	s.state = stateConnecting

	conn, err := Dial(s.config.Addr(), s.config.Timeout, s.config.Observer)
	if err != nil {
		s.state = stateDisconnected
		return err
	}

	if err := s.handshake(conn); err != nil {
		_ = conn.Close()
		s.state = stateDisconnected
		return err
	}

	s.conn = conn
	s.cache.clear()
	s.state = stateConnected
	return nil
}

func (s *Session) handshake(conn *Connection) error {
	// the server pushes its greeting before any command
	greeting, err := conn.ReadLine()
	if err != nil {
		return err
	}
	if _, err := protocol.Classify(greeting); err != nil {
		return err
	}

	steps := []Command{
		Build("USER ${login}", map[string]string{"login": s.config.Login}),
		Build("PASS ${password}", map[string]string{"password": s.config.Password}),
		Raw("INLINE"),
	}
	for _, step := range steps {
		line, err := conn.Send(step.Text())
		if err != nil {
			return err
		}
		if _, err := protocol.Classify(line); err != nil {
			return err
		}
	}
	return nil
}

// Execute sends one command and returns its decoded reply body.
//
// A disconnected session reconnects first using its configuration. Reads of
// command text already answered in this session are served from the cache
// without a round trip; any mutating command invalidates the whole cache on
// success. A command either fully succeeds with a decoded body or fully
// fails with a typed error, never both.
func (s *Session) Execute(cmd Command) (protocol.Body, error) {
	if s.state != stateConnected {
		if err := s.Connect(); err != nil {
			return protocol.Body{}, err
		}
	}

	if !cmd.Mutating() {
		if line, ok := s.cache.get(cmd.Text()); ok {
			// cached lines were classified successes when stored
			reply, err := protocol.Classify(line)
			if err != nil {
				return protocol.Body{}, err
			}
			return protocol.Decode(reply.Body), nil
		}
	}

	line, err := s.conn.Send(cmd.Text())
	if err != nil {
		s.reset()
		return protocol.Body{}, err
	}

	reply, err := protocol.Classify(line)
	if err != nil {
		if protocol.ShouldCloseConnection(err) {
			s.reset()
		}
		return protocol.Body{}, err
	}

	if cmd.Mutating() {
		s.cache.clear()
	} else {
		s.cache.put(cmd.Text(), line)
	}
	return protocol.Decode(reply.Body), nil
}

// Disconnect sends a best-effort quit line, closes the socket, clears the
// cache, and leaves the session reusable through a fresh Connect. It is safe
// to call any number of times.
func (s *Session) Disconnect() {
	if s.conn != nil {
		_, _ = s.conn.Send("QUIT")
		_ = s.conn.Close()
		s.conn = nil
	}
	s.cache.clear()
	s.state = stateDisconnected
}

// reset hard-closes the session after a transport or protocol failure.
// Unlike Disconnect it never writes to the broken socket.
func (s *Session) reset() {
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
	s.cache.clear()
	s.state = stateDisconnected
}

// Connected reports whether the session currently holds a usable socket.
func (s *Session) Connected() bool {
	return s.state == stateConnected
}

// IsUnknownObject reports whether err is the server's "no such account,
// domain, list or forwarder" reply.
func IsUnknownObject(err error) bool {
	var se *protocol.ServerError
	return errors.As(err, &se) && se.Code == protocol.CodeUnknownObject
}
