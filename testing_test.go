package cgpcli

import (
	"bufio"
	"net"
	"strings"
	"sync"
	"testing"
	"time"
)

// adminServer is a scripted stand-in for the mail server's management
// socket. It speaks just enough of the protocol for the handshake and
// answers commands from an override table, recording everything it sees.
type adminServer struct {
	addr      string
	overrides map[string]string

	mu       sync.Mutex
	commands []string
	accepted int
}

func startAdminServer(t testing.TB, overrides map[string]string) *adminServer {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to start test server: %v", err)
	}
	t.Cleanup(func() {
		listener.Close()
	})

	server := &adminServer{
		addr:      listener.Addr().String(),
		overrides: overrides,
	}

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			server.mu.Lock()
			server.accepted++
			server.mu.Unlock()

			go server.serve(conn)
		}
	}()

	// Give the server time to start
	time.Sleep(10 * time.Millisecond)

	return server
}

func (s *adminServer) serve(conn net.Conn) {
	defer conn.Close()

	_, _ = conn.Write([]byte("200 test server ready\r\n"))

	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		command := strings.TrimRight(line, "\r\n")

		s.mu.Lock()
		s.commands = append(s.commands, command)
		s.mu.Unlock()

		reply := s.reply(command)
		if _, err := conn.Write([]byte(reply + "\r\n")); err != nil {
			return
		}
		if command == "QUIT" {
			return
		}
	}
}

func (s *adminServer) reply(command string) string {
	if reply, ok := s.overrides[command]; ok {
		return reply
	}

	verb, _, _ := strings.Cut(command, " ")
	switch verb {
	case "USER":
		return "300 please send the PASS"
	case "PASS":
		return "200 login ok"
	case "INLINE":
		return "201 inline mode on"
	case "QUIT":
		return "200 good bye"
	default:
		return "200 OK"
	}
}

// Commands returns every command line received so far, handshake included.
func (s *adminServer) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

// Count returns how many times the exact command line was received.
func (s *adminServer) Count(command string) int {
	count := 0
	for _, c := range s.Commands() {
		if c == command {
			count++
		}
	}
	return count
}

// Connections returns how many sockets were accepted.
func (s *adminServer) Connections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accepted
}

// Config returns a session config pointing at the test server.
func (s *adminServer) Config() Config {
	host, port, _ := net.SplitHostPort(s.addr)
	var portNum int
	for _, c := range port {
		portNum = portNum*10 + int(c-'0')
	}
	return Config{
		Host:     host,
		Port:     portNum,
		Login:    "postmaster",
		Password: "secret",
		Timeout:  2 * time.Second,
	}
}
