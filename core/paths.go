package core

import (
	"fmt"
	"strings"
)

// SetPath writes value at a dotted path inside target, creating
// intermediate objects as needed. An existing non-object value on the
// way down is an error.
func SetPath(target map[string]any, path string, value any) error {
	if target == nil {
		return fmt.Errorf("core: path target is nil")
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("core: path is required")
	}
	segments := strings.Split(path, ".")
	current := target
	for i, segment := range segments {
		if segment == "" {
			return fmt.Errorf("core: path %q has an empty segment", path)
		}
		if i == len(segments)-1 {
			current[segment] = value
			return nil
		}
		next, exists := current[segment]
		if !exists {
			child := map[string]any{}
			current[segment] = child
			current = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("core: path %q collides with a non-object value at %q", path, segment)
		}
		current = child
	}
	return nil
}

// LookupPath reads the value at a dotted path. The second return is false
// when any segment is missing or a non-object blocks descent.
func LookupPath(source map[string]any, path string) (any, bool) {
	if source == nil {
		return nil, false
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, false
	}
	segments := strings.Split(path, ".")
	var current any = source
	for _, segment := range segments {
		if segment == "" {
			return nil, false
		}
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
