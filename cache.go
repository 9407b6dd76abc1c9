package cgpcli

import "github.com/zeebo/xxh3"

// responseCache remembers the last raw reply line per command text within a
// session. Entries are keyed by the xxh3 hash of the exact command text, so
// the cache never holds on to full command strings.
//
// The cache is owned by a single session and is not safe for concurrent use;
// parallel workloads hold one session per worker.
type responseCache struct {
	entries map[uint64]string
}

func newResponseCache() *responseCache {
	return &responseCache{entries: make(map[uint64]string)}
}

func (c *responseCache) get(command string) (string, bool) {
	line, ok := c.entries[xxh3.HashString(command)]
	return line, ok
}

func (c *responseCache) put(command, line string) {
	c.entries[xxh3.HashString(command)] = line
}

// clear drops every entry. The session calls it after any state-mutating
// command, on connect, and on disconnect, so identical command text is never
// served from before a mutation.
func (c *responseCache) clear() {
	clear(c.entries)
}

func (c *responseCache) len() int {
	return len(c.entries)
}
