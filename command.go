package cgpcli

import (
	"regexp"
	"strings"
)

// Command is one fully substituted line of the admin protocol, ready to
// send. It is immutable after construction.
type Command struct {
	text     string
	mutating bool
}

// Text returns the command line without its terminator.
func (c Command) Text() string { return c.text }

// Mutating reports whether the command changes server state. The session
// invalidates its response cache after every mutating command.
func (c Command) Mutating() bool { return c.mutating }

func (c Command) String() string { return c.text }

// placeholderPattern matches ${name} substitution slots in command templates.
var placeholderPattern = regexp.MustCompile(`\$\{([A-Za-z0-9]+)\}`)

// Build assembles a Command from a template with ${name} placeholders.
// Substituted values are escaped per the protocol's escaping rule, and the
// template is walked in a single pass so an escaped value can never be
// re-substituted into a later placeholder.
//
// Placeholders with no entry in subs are left untouched.
func Build(template string, subs map[string]string) Command {
	text := placeholderPattern.ReplaceAllStringFunc(template, func(m string) string {
		name := m[2 : len(m)-1]
		if value, ok := subs[name]; ok {
			return Escape(value)
		}
		return m
	})
	return newCommand(text)
}

// Raw wraps an already assembled command line. No escaping is applied.
func Raw(text string) Command {
	return newCommand(strings.TrimSpace(text))
}

func newCommand(text string) Command {
	return Command{text: text, mutating: isMutatingVerb(text)}
}

// Escape makes a value safe for embedding in a command line: backslashes are
// doubled, double quotes are backslash-escaped.
func Escape(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `"`, `\"`)
}

// mutatingVerbPrefixes classifies command verbs whose effect changes server
// state. Any other verb is treated as a read and is eligible for caching.
var mutatingVerbPrefixes = []string{
	"CREATE",
	"DELETE",
	"UPDATE",
	"RENAME",
	"SET",
	"SUBSCRIBE",
	"UNSUBSCRIBE",
}

func isMutatingVerb(text string) bool {
	verb, _, _ := strings.Cut(text, " ")
	verb = strings.ToUpper(verb)
	for _, prefix := range mutatingVerbPrefixes {
		if strings.HasPrefix(verb, prefix) {
			return true
		}
	}
	return false
}
