package cgpcli

import (
	"context"
	"sync/atomic"

	"github.com/jackc/puddle/v2"

	"github.com/pior/cgpcli/protocol"
)

// SessionPool hands out connected sessions for parallel workloads. Sessions
// share no state; each one owns its own socket and cache, so any number of
// workers can run commands concurrently as long as each holds its own
// session.
type SessionPool struct {
	pool              *puddle.Pool[*Session]
	createdSessions   atomic.Int64
	destroyedSessions atomic.Int64
}

// NewSessionPool creates a pool of at most maxSize sessions. Sessions are
// connected lazily on first acquire and disconnected when destroyed.
func NewSessionPool(config Config, maxSize int32) (*SessionPool, error) {
	p := &SessionPool{}

	poolConfig := &puddle.Config[*Session]{
		Constructor: func(ctx context.Context) (*Session, error) {
			session := NewSession(config)
			if err := session.Connect(); err != nil {
				return nil, err
			}
			p.createdSessions.Add(1)
			return session, nil
		},
		Destructor: func(session *Session) {
			p.destroyedSessions.Add(1)
			session.Disconnect()
		},
		MaxSize: maxSize,
	}

	pool, err := puddle.NewPool(poolConfig)
	if err != nil {
		return nil, err
	}
	p.pool = pool
	return p, nil
}

// Acquire returns a pooled session resource. Release it when done, or
// Destroy it if the session broke.
func (p *SessionPool) Acquire(ctx context.Context) (*puddle.Resource[*Session], error) {
	return p.pool.Acquire(ctx)
}

// With runs fn with a pooled session. The session is destroyed instead of
// released when fn's error indicates the connection is no longer usable.
func (p *SessionPool) With(ctx context.Context, fn func(session *Session) error) error {
	resource, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}

	err = fn(resource.Value())
	if protocol.ShouldCloseConnection(err) {
		resource.Destroy()
	} else {
		resource.Release()
	}
	return err
}

// PoolStats is a snapshot of pool counters.
type PoolStats struct {
	TotalSessions     int32
	IdleSessions      int32
	ActiveSessions    int32
	AcquireCount      uint64
	AcquireWaitCount  uint64
	CreatedSessions   uint64
	DestroyedSessions uint64
}

// Stats converts puddle's counters into a PoolStats snapshot.
func (p *SessionPool) Stats() PoolStats {
	s := p.pool.Stat()
	return PoolStats{
		TotalSessions:     s.TotalResources(),
		IdleSessions:      s.IdleResources(),
		ActiveSessions:    s.AcquiredResources(),
		AcquireCount:      uint64(s.AcquireCount()),
		AcquireWaitCount:  uint64(s.EmptyAcquireCount()),
		CreatedSessions:   uint64(p.createdSessions.Load()),
		DestroyedSessions: uint64(p.destroyedSessions.Load()),
	}
}

// Close disconnects every pooled session and rejects further acquires.
func (p *SessionPool) Close() {
	p.pool.Close()
}
