// Package rules encodes and decodes the nested-parenthesis rule lists stored
// in an account's settings. Each rule is treated as an opaque, positionally
// located record; only rule-type detection and top-level record boundaries
// are understood, never the condition/action grammar inside a record.
package rules

import (
	"regexp"
	"strings"
)

const (
	// Marker introduces the rule list field inside a settings body.
	Marker = "Rules="

	// Default is the serialized form of an empty rule set: no custom rules,
	// the server falls back to its defaults.
	Default = "Default"

	// Placeholder is the substitution slot inside a rule template.
	Placeholder = "^0"

	// continuation replaces embedded line breaks when a record is
	// normalized into a single protocol line.
	continuation = `\`
)

// recordShape is the defensive filter applied to every extracted record:
// a well-formed record starts with its priority digits, a comma and the
// quoted "#Type" tag. Spans that do not match are partial captures from
// malformed input and are discarded.
var recordShape = regexp.MustCompile(`^\d+,"#`)

// Record is one top-level rule entry, excluding its own wrapping parentheses.
type Record string

// Matches reports whether the record carries the given rule-type marker.
// The marker is located by plain substring search; see the package notes on
// markers containing special characters.
func (r Record) Matches(typeMarker string) bool {
	return strings.Contains(string(r), typeMarker)
}

// Set is an ordered rule list. Order is significant: the server evaluates
// rules in this order, so codec operations preserve the relative order of
// untouched records.
type Set []Record

// Decode extracts the rule records from a settings body.
//
// It locates the field whose value begins with Marker; if absent, the set is
// empty. The value is scanned byte by byte with a parenthesis depth counter:
// depth 1 is the overall wrapper, and each span between depth reaching 2 and
// returning to 1 is one record. Arbitrary nesting inside a record (conditions,
// actions) does not matter because only the depth-2 boundary is tracked.
//
// Each record is normalized before it is returned: carriage returns are
// stripped and embedded line breaks are replaced with the single-character
// continuation marker.
func Decode(blob string) Set {
	i := strings.Index(blob, Marker)
	if i < 0 {
		return nil
	}
	s := stripRedundantWrap(blob[i+len(Marker):])

	var set Set
	depth := 0
	start := -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
			if depth == 2 {
				start = i
			}
		case ')':
			if depth == 2 && start >= 0 {
				rec := normalize(s[start+1 : i])
				if recordShape.MatchString(rec) {
					set = append(set, Record(rec))
				}
				start = -1
			}
			depth--
			if depth <= 0 {
				return set
			}
		}
	}
	return set
}

// stripRedundantWrap removes a single optional extra pair of parentheses
// around the whole rule list, so that the depth scan always sees the list
// wrapper at depth 1.
func stripRedundantWrap(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "(((") {
		return s
	}

	depth := 0
	for i := 0; i < len(t); i++ {
		switch t[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				// the first group must span the whole value to be a wrapper
				if i == len(t)-1 {
					return t[1 : len(t)-1]
				}
				return s
			}
		}
	}
	return s
}

func normalize(rec string) string {
	rec = strings.ReplaceAll(rec, "\r", "")
	return strings.ReplaceAll(rec, "\n", continuation)
}

// Merge rewrites a rule set around a single rule type and serializes it.
//
// Records that do not carry typeMarker are kept verbatim, each re-wrapped in
// its own parentheses. The first record carrying typeMarker is replaced by
// template with Placeholder filled by value, or dropped entirely when value
// is empty; further records with the same marker are dropped as duplicates.
// If no record matched and value is non-empty, a new record is appended.
//
// An empty result serializes to the literal Default token.
func Merge(existing Set, typeMarker, template, value string) string {
	parts := make([]string, 0, len(existing)+1)
	matched := false
	for _, rec := range existing {
		if !rec.Matches(typeMarker) {
			parts = append(parts, "("+string(rec)+")")
			continue
		}
		if !matched && value != "" {
			parts = append(parts, "("+fill(template, value)+")")
		}
		matched = true
	}
	if !matched && value != "" {
		parts = append(parts, "("+fill(template, value)+")")
	}
	return join(parts)
}

// Serialize re-encodes a set without edits. Decode(Serialize(set)) yields a
// set with the same record boundaries and order.
func Serialize(set Set) string {
	parts := make([]string, 0, len(set))
	for _, rec := range set {
		parts = append(parts, "("+string(rec)+")")
	}
	return join(parts)
}

func join(parts []string) string {
	if len(parts) == 0 {
		return Default
	}
	return "(" + strings.Join(parts, ",") + ")"
}

func fill(template, value string) string {
	return strings.ReplaceAll(template, Placeholder, value)
}
