package placeholder

import "strings"

// Data is a tree of sample values keyed by dotted path segments.
// Leaves are strings or numbers; inner nodes are Data (or plain
// map[string]any when decoded from YAML or JSON).
type Data map[string]any

// Lookup resolves a dotted path by walking the tree. It reports false as
// soon as a segment is missing or a non-map value is indexed further.
func (d Data) Lookup(path string) (any, bool) {
	var current any = d
	for _, part := range strings.Split(strings.TrimSpace(path), ".") {
		node, ok := asMap(current)
		if !ok {
			return nil, false
		}
		current, ok = node[strings.TrimSpace(part)]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Set stores value at a dotted path, creating intermediate nodes and
// replacing any non-map value found on the way. An empty final segment is
// ignored.
func (d Data) Set(path string, value any) {
	parts := strings.Split(strings.TrimSpace(path), ".")
	node := d
	for _, part := range parts[:len(parts)-1] {
		part = strings.TrimSpace(part)
		child, ok := node[part].(Data)
		if !ok {
			if m, isMap := node[part].(map[string]any); isMap {
				child = Data(m)
			} else {
				child = Data{}
			}
			node[part] = child
		}
		node = child
	}
	if last := strings.TrimSpace(parts[len(parts)-1]); last != "" {
		node[last] = value
	}
}

// Clone returns a deep copy of the tree.
func (d Data) Clone() Data {
	if d == nil {
		return nil
	}
	out := make(Data, len(d))
	for k, v := range d {
		if m, ok := asMap(v); ok {
			out[k] = Data(m).Clone()
			continue
		}
		out[k] = v
	}
	return out
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Data:
		return m, true
	case map[string]any:
		return m, true
	default:
		return nil, false
	}
}
