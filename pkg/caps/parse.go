package caps

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors.
var (
	// ErrPartial indicates the string was only partly understood. The
	// returned value holds the parsed prefix.
	ErrPartial = errors.New("capability string partially parsed")

	// ErrSyntax indicates nothing usable could be parsed.
	ErrSyntax = errors.New("capability string syntax error")
)

// Group is one name(value) entry of a capability string. Value is the raw
// text between the parentheses, nested groups included.
type Group struct {
	Name  string
	Value string
}

// Tree is the parsed top-level structure of a capability string.
type Tree struct {
	Groups []Group
}

// Lookup returns the first group with the given name.
func (t *Tree) Lookup(name string) (Group, bool) {
	for _, g := range t.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return Group{}, false
}

// All returns every group with the given name, in order.
func (t *Tree) All(name string) []Group {
	var out []Group
	for _, g := range t.Groups {
		if g.Name == name {
			out = append(out, g)
		}
	}
	return out
}

// Parse splits a capability string into its top-level groups.
//
// On a malformed trailing group the groups before it are returned with an
// error wrapping ErrPartial. If no group at all can be read the tree is nil
// and the error wraps ErrSyntax.
func Parse(s string) (*Tree, error) {
	body := strings.TrimSpace(strings.TrimRight(s, "\x00"))
	var outer error
	if strings.HasPrefix(body, "(") {
		switch end := matchParen(body, 0); {
		case end < 0:
			outer = errors.New("unterminated capability list")
			body = body[1:]
		case end < len(body)-1:
			outer = fmt.Errorf("trailing text %q", body[end+1:])
			body = body[1:end]
		default:
			body = body[1:end]
		}
	}

	tree := &Tree{}
	pos := 0
	for {
		pos = skipSpace(body, pos)
		if pos >= len(body) {
			break
		}
		open := strings.IndexByte(body[pos:], '(')
		if open < 0 {
			return partial(tree, fmt.Errorf("trailing text %q", body[pos:]))
		}
		open += pos
		name := strings.TrimSpace(body[pos:open])
		if name == "" || strings.ContainsRune(name, ')') {
			return partial(tree, fmt.Errorf("missing group name at offset %d", pos))
		}
		end := matchParen(body, open)
		if end < 0 {
			return partial(tree, fmt.Errorf("unterminated group %q", name))
		}
		tree.Groups = append(tree.Groups, Group{Name: name, Value: body[open+1 : end]})
		pos = end + 1
	}

	if len(tree.Groups) == 0 {
		return nil, fmt.Errorf("%w: no groups", ErrSyntax)
	}
	if outer != nil {
		return partial(tree, outer)
	}
	return tree, nil
}

func partial(tree *Tree, cause error) (*Tree, error) {
	if len(tree.Groups) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, cause)
	}
	return tree, fmt.Errorf("%w: %v", ErrPartial, cause)
}

// matchParen returns the index of the parenthesis closing the one at open,
// or -1.
func matchParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func skipSpace(s string, pos int) int {
	for pos < len(s) && isSpace(s[pos]) {
		pos++
	}
	return pos
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexVal(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// HexEntry is a code from a hex list with its optional nested values.
type HexEntry struct {
	Code   byte
	Values []byte
}

// ParseHexList parses lists such as "02 10 14(05 08) 60(0F 11)". Runs of hex
// digits without separators are split into bytes. On error the entries read
// so far are returned.
func ParseHexList(s string) ([]HexEntry, error) {
	var out []HexEntry
	pos := 0
	for {
		pos = skipSpace(s, pos)
		if pos >= len(s) {
			return out, nil
		}
		if s[pos] == '(' {
			if len(out) == 0 {
				return out, fmt.Errorf("value list without code at offset %d", pos)
			}
			end := matchParen(s, pos)
			if end < 0 {
				return out, fmt.Errorf("unterminated value list for 0x%02X", out[len(out)-1].Code)
			}
			values, err := parseValues(s[pos+1 : end])
			if err != nil {
				return out, fmt.Errorf("values of 0x%02X: %w", out[len(out)-1].Code, err)
			}
			out[len(out)-1].Values = append(out[len(out)-1].Values, values...)
			pos = end + 1
			continue
		}
		codes, next, err := readHexRun(s, pos)
		if err != nil {
			return out, err
		}
		for _, c := range codes {
			out = append(out, HexEntry{Code: c})
		}
		pos = next
	}
}

// parseValues parses a flat list of hex bytes. Nested groups (MCCS 3
// sub-values) are skipped.
func parseValues(s string) ([]byte, error) {
	var out []byte
	pos := 0
	for {
		pos = skipSpace(s, pos)
		if pos >= len(s) {
			return out, nil
		}
		if s[pos] == '(' {
			end := matchParen(s, pos)
			if end < 0 {
				return out, fmt.Errorf("unterminated nested list")
			}
			pos = end + 1
			continue
		}
		b, next, err := readHexRun(s, pos)
		if err != nil {
			return out, err
		}
		out = append(out, b...)
		pos = next
	}
}

// readHexRun reads one run of hex digits starting at pos and splits it into
// bytes. A lone digit is a single byte.
func readHexRun(s string, pos int) ([]byte, int, error) {
	start := pos
	for pos < len(s) && isHex(s[pos]) {
		pos++
	}
	run := s[start:pos]
	switch {
	case len(run) == 0:
		return nil, pos, fmt.Errorf("unexpected %q at offset %d", s[start], start)
	case len(run) == 1:
		return []byte{hexVal(run[0])}, pos, nil
	case len(run)%2 != 0:
		return nil, pos, fmt.Errorf("odd-length hex run %q", run)
	}
	out := make([]byte, 0, len(run)/2)
	for i := 0; i < len(run); i += 2 {
		out = append(out, hexVal(run[i])<<4|hexVal(run[i+1]))
	}
	return out, pos, nil
}
