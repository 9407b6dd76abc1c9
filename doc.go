// Package cgpcli is a client for the line-oriented administrative protocol
// exposed by a mail server over its management socket. It authenticates,
// issues textual commands, and decodes textual replies to manage accounts,
// mailing lists, forwarders, and per-account mail-processing rules.
//
// # Sessions
//
// A Session owns one socket and is strictly synchronous: each Execute blocks
// until its one-line reply is read. Sessions share no state; parallel
// workloads open one session per worker, or use SessionPool:
//
//	cfg := cgpcli.Config{Host: "mail.example.com", Login: "postmaster", Password: secret}
//	session := cgpcli.NewSession(cfg)
//	defer session.Disconnect()
//
//	body, err := session.Execute(cgpcli.Raw("LISTDOMAINS"))
//
// Replies decode into a protocol.Body: a scalar or an ordered sequence of
// strings. Successful reply lines are cached per command text within a
// session; the cache is invalidated by any mutating command and by
// reconnects.
//
// # Errors
//
// All failures are typed (see the protocol package): ConnectionError,
// ProtocolError, ServerError with the original status code, and
// ValidationError for inputs rejected before anything is sent. There is no
// silent retry beyond the single end-of-stream tolerance in the transport.
//
// # Mail rules
//
// Per-account rules are edited through the rules package, which treats each
// rule as an opaque record and preserves sibling rules and their order:
//
//	err := session.SetAccountRedirect("john@example.com", "jane@example.net")
package cgpcli
