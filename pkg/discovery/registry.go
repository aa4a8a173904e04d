package discovery

import (
	"fmt"
	"strings"
)

// IDRegistry hands out display ids that are unique within one backend's
// enumeration.
type IDRegistry struct {
	ids map[string]struct{}
}

// NewIDRegistry creates an empty registry.
func NewIDRegistry() *IDRegistry {
	return &IDRegistry{ids: make(map[string]struct{})}
}

var idReplacer = strings.NewReplacer(`\`, "/", "{", "", "}", "")

// SanitizeID rewrites characters that make poor ids: backslashes become
// slashes and braces are dropped.
func SanitizeID(id string) string {
	return idReplacer.Replace(id)
}

// Insert claims id after sanitizing it. It returns false if id is empty or
// already taken.
func (r *IDRegistry) Insert(id string) (string, bool) {
	id = SanitizeID(id)
	if id == "" {
		return "", false
	}
	if _, taken := r.ids[id]; taken {
		return id, false
	}
	r.ids[id] = struct{}{}
	return id, true
}

// Assign returns a unique id for the connection at index i, preferring the
// candidates in order and falling back to "index:i".
func (r *IDRegistry) Assign(i int, candidates ...string) string {
	for _, c := range candidates {
		if id, ok := r.Insert(c); ok {
			return id
		}
	}
	fallback := fmt.Sprintf("index:%d", i)
	if id, ok := r.Insert(fallback); ok {
		return id
	}
	for n := 2; ; n++ {
		if id, ok := r.Insert(fmt.Sprintf("%s.%d", fallback, n)); ok {
			return id
		}
	}
}

// Len returns the number of ids handed out.
func (r *IDRegistry) Len() int {
	return len(r.ids)
}
