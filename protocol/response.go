// Package protocol implements the wire level of the mail server's
// line-oriented administrative protocol: classification of reply lines by
// their 3-digit status code, and structural decoding of the bracket and
// brace delimited reply bodies.
//
// The package has no connection management; it operates on single lines that
// a caller has already read from the socket.
package protocol

import (
	"strconv"
	"strings"
)

// Reply is a classified successful reply line: the status code from the
// success whitelist and the body text that follows it.
type Reply struct {
	Code int
	Body string
}

// Inline reports whether the reply carried its data on the status line.
func (r Reply) Inline() bool {
	return r.Code == CodeOKInline
}

// Classify parses one raw reply line.
//
// The line must match <3 digits><space><rest>; anything else yields a
// ProtocolError. A whitelisted code yields a Reply; any other code yields a
// ServerError carrying the code and the rest-of-line message verbatim.
func Classify(line string) (Reply, error) {
	line = strings.TrimRight(line, CRLF)

	if len(line) < 4 || line[3] != ' ' || !allDigits(line[:3]) {
		return Reply{}, &ProtocolError{Message: "malformed response: " + strconv.Quote(line)}
	}

	code, _ := strconv.Atoi(line[:3])
	rest := line[4:]

	if !IsSuccessCode(code) {
		return Reply{}, &ServerError{Code: code, Message: rest}
	}

	return Reply{Code: code, Body: rest}, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
