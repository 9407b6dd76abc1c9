package cgpcli

import (
	"log/slog"
	"strings"
)

// Direction tags a wire event.
type Direction int

const (
	// Send is a command line written to the server
	Send Direction = iota

	// Recv is a reply line read from the server
	Recv
)

func (d Direction) String() string {
	if d == Send {
		return "send"
	}
	return "recv"
}

// Observer receives a copy of every line crossing the wire. It is an
// optional side-channel: a nil observer changes nothing.
type Observer interface {
	Observe(dir Direction, line string)
}

// NewSlogObserver returns an Observer that logs wire traffic at debug level.
// The password line of the login sequence is masked.
func NewSlogObserver(logger *slog.Logger) Observer {
	return &slogObserver{logger: logger}
}

type slogObserver struct {
	logger *slog.Logger
}

func (o *slogObserver) Observe(dir Direction, line string) {
	if strings.HasPrefix(line, "PASS ") {
		line = "PASS ***"
	}
	o.logger.Debug("wire", "dir", dir.String(), "line", line)
}

// observe is the nil-safe helper call sites use.
func observe(o Observer, dir Direction, line string) {
	if o != nil {
		o.Observe(dir, line)
	}
}
