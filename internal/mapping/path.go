package mapping

import (
	"strconv"
	"strings"

	"github.com/custodia-labs/pdsync/internal/core/domain"
)

// splitPath normalises a dotted path into its segments.
// It returns false for empty paths, ".", and any path containing "..".
func splitPath(path string) ([]string, bool) {
	if path == "." || strings.Contains(path, "..") {
		return nil, false
	}
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, false
	}

	segments := make([]string, 0, strings.Count(trimmed, ".")+1)
	for _, seg := range strings.Split(trimmed, ".") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		return nil, false
	}
	return segments, true
}

// Get returns the value at path inside root.
// The second result is false when the path is invalid, root is null, a
// segment is missing, or traversal reaches a scalar before the last segment.
// Lists are indexed by non-negative decimal segments.
func Get(root domain.Value, path string) (domain.Value, bool) {
	if root.IsNull() {
		return domain.Value{}, false
	}
	segments, ok := splitPath(path)
	if !ok {
		return domain.Value{}, false
	}

	current := root
	for _, seg := range segments {
		switch current.Kind() {
		case domain.KindMap:
			current, ok = current.Lookup(seg)
		case domain.KindList:
			var idx int
			idx, ok = listIndex(seg)
			if ok {
				current, ok = current.Index(idx)
			}
		default:
			ok = false
		}
		if !ok {
			return domain.Value{}, false
		}
	}
	return current, true
}

func listIndex(seg string) (int, bool) {
	for _, r := range seg {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	idx, err := strconv.Atoi(seg)
	if err != nil {
		return 0, false
	}
	return idx, true
}

// Set writes value at path inside root, creating intermediate objects.
// Intermediate values that are missing or not objects are overwritten with
// empty objects. Set does nothing when root is not an object or the path is
// invalid.
func Set(root domain.Value, path string, value domain.Value) {
	if !root.IsMap() {
		return
	}
	segments, ok := splitPath(path)
	if !ok {
		return
	}

	current := root
	for _, seg := range segments[:len(segments)-1] {
		next, ok := current.Lookup(seg)
		if !ok || !next.IsMap() {
			next = domain.NewMap()
			current.Put(seg, next)
		}
		current = next
	}
	current.Put(segments[len(segments)-1], value)
}
