package cgpcli

import (
	"net"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/require"
)

func deadServerConfig(t *testing.T) Config {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	listener.Close()

	host, port, _ := net.SplitHostPort(addr)
	var portNum int
	for _, c := range port {
		portNum = portNum*10 + int(c-'0')
	}
	return Config{Host: host, Port: portNum, Timeout: 500 * time.Millisecond}
}

func TestBreakerOpensOnConnectionFailures(t *testing.T) {
	cfg := deadServerConfig(t)

	breaker := NewCircuitBreaker(cfg.Addr(), 1, 0, time.Minute)
	session := WithBreaker(NewSession(cfg), breaker)
	defer session.Disconnect()

	for i := 0; i < 3; i++ {
		_, err := session.Execute(Raw("LISTDOMAINS"))
		require.Error(t, err)
		require.NotErrorIs(t, err, gobreaker.ErrOpenState)
	}

	_, err := session.Execute(Raw("LISTDOMAINS"))
	require.ErrorIs(t, err, gobreaker.ErrOpenState, "repeated transport failures must open the breaker")
}

func TestBreakerIgnoresServerErrors(t *testing.T) {
	server := startAdminServer(t, map[string]string{
		"BOGUS": "500 unknown command",
	})

	breaker := NewCircuitBreaker(server.Config().Addr(), 1, 0, time.Minute)
	session := WithBreaker(NewSession(server.Config()), breaker)
	defer session.Disconnect()

	for i := 0; i < 5; i++ {
		_, err := session.Execute(Raw("BOGUS"))
		require.Error(t, err)
		require.NotErrorIs(t, err, gobreaker.ErrOpenState, "server-level replies must not trip the breaker")
	}

	_, err := session.Execute(Raw("LISTDOMAINS"))
	require.NoError(t, err)
}
