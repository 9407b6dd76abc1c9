package cgpcli

import (
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/pior/cgpcli/protocol"
)

// CircuitBreaker is the subset of gobreaker used by BreakerSession.
type CircuitBreaker interface {
	Execute(fn func() (protocol.Body, error)) (protocol.Body, error)
}

// NewCircuitBreaker creates a breaker for one server host. Server-level
// replies (ServerError) count as successes: they prove the host is up and
// in sync, only transport and protocol failures trip the breaker.
func NewCircuitBreaker(name string, maxRequests uint32, interval, timeout time.Duration) *gobreaker.CircuitBreaker[protocol.Body] {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: maxRequests,
		Interval:    interval,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var se *protocol.ServerError
			return errors.As(err, &se)
		},
	}
	return gobreaker.NewCircuitBreaker[protocol.Body](settings)
}

// BreakerSession wraps a session's Execute with a circuit breaker, so a
// flapping host fails fast instead of burning a timeout per command.
type BreakerSession struct {
	session *Session
	breaker CircuitBreaker
}

// WithBreaker pairs a session with a circuit breaker.
func WithBreaker(session *Session, breaker CircuitBreaker) *BreakerSession {
	return &BreakerSession{session: session, breaker: breaker}
}

// Execute routes the command through the breaker. When the breaker is open
// the command is rejected with gobreaker.ErrOpenState without touching the
// socket.
func (b *BreakerSession) Execute(cmd Command) (protocol.Body, error) {
	return b.breaker.Execute(func() (protocol.Body, error) {
		return b.session.Execute(cmd)
	})
}

// Disconnect tears down the underlying session.
func (b *BreakerSession) Disconnect() {
	b.session.Disconnect()
}
