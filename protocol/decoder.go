package protocol

import "strings"

// BodyKind tags the decoded shape of a reply body.
type BodyKind uint8

const (
	// Scalar is a single value, e.g. a domain name or a counter
	Scalar BodyKind = iota

	// Sequence is an ordered list of strings: list entries, or raw
	// "key=value" settings fields (key/value splitting is the caller's job)
	Sequence
)

// Body is a decoded reply body: either a single scalar value or an ordered
// sequence of strings.
type Body struct {
	Kind  BodyKind
	Value string   // set when Kind == Scalar
	Items []string // set when Kind == Sequence
}

// IsEmpty reports whether the body carries no data at all.
func (b Body) IsEmpty() bool {
	if b.Kind == Scalar {
		return b.Value == ""
	}
	return len(b.Items) == 0
}

// Decode determines the structural shape of a reply body and decodes it.
//
// Shape detection, in priority order, on the trimmed body:
//  1. "((" prefix: nested list. One leading "(" and its matching trailing ")"
//     are stripped and the inside is split into top-level parenthesized
//     entries. Used for multi-record bodies such as rule lists.
//  2. "(" prefix: flat list, split on ",".
//  3. "{" prefix: field list, split on ";".
//  4. Anything else: scalar; a leading status-code remnant is dropped.
//
// A trailing empty element is discarded in every list shape, since the server
// terminates list bodies with a trailing separator. An empty body, "()" or
// "{}" decodes to an empty Sequence.
func Decode(body string) Body {
	s := strings.TrimSpace(body)

	switch {
	case s == "":
		return Body{Kind: Sequence}
	case strings.HasPrefix(s, "(("):
		return Body{Kind: Sequence, Items: splitNested(unwrap(s, '(', ')'))}
	case strings.HasPrefix(s, "("):
		return Body{Kind: Sequence, Items: splitFlat(unwrap(s, '(', ')'), ",")}
	case strings.HasPrefix(s, "{"):
		return Body{Kind: Sequence, Items: splitFlat(unwrap(s, '{', '}'), ";")}
	default:
		return Body{Kind: Scalar, Value: stripCodeRemnant(s)}
	}
}

// unwrap removes one leading opening and, if present, the trailing closing
// delimiter.
func unwrap(s string, opening, closing byte) string {
	s = strings.TrimPrefix(s, string(opening))
	return strings.TrimSuffix(s, string(closing))
}

// splitFlat splits on sep, trims every element and drops a trailing empty one.
func splitFlat(s, sep string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		items = append(items, strings.TrimSpace(p))
	}
	return dropTrailingEmpty(items)
}

// splitNested splits a nested-list interior into top-level entries. An entry
// begins where a new top-level parenthesis starts; commas inside an entry's
// own nesting do not split it.
func splitNested(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var items []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				items = append(items, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	items = append(items, strings.TrimSpace(s[start:]))
	return dropTrailingEmpty(items)
}

func dropTrailingEmpty(items []string) []string {
	if n := len(items); n > 0 && items[n-1] == "" {
		items = items[:n-1]
	}
	if len(items) == 0 {
		return nil
	}
	return items
}

// stripCodeRemnant drops a leading 3-digit status code if one leaked into the
// body (some replies repeat the code before the scalar payload).
func stripCodeRemnant(s string) string {
	if len(s) >= 4 && s[3] == ' ' && allDigits(s[:3]) {
		return strings.TrimSpace(s[4:])
	}
	return s
}
