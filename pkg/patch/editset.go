// Package patch applies element removals and style injections to a
// markup source by splicing the original text.
//
// Only the removed spans and the injected attributes differ between the
// input and the output; every other byte is copied verbatim.
package patch

import (
	"maps"
	"slices"
	"strings"
)

// Style holds the inline style properties injected into an element.
// Empty properties are omitted.
type Style struct {
	Padding string `yaml:"padding,omitempty" json:"padding,omitempty"`
	Margin  string `yaml:"margin,omitempty" json:"margin,omitempty"`
}

// IsEmpty reports whether no property is set.
func (s Style) IsEmpty() bool {
	return s.Padding == "" && s.Margin == ""
}

// Attribute renders the style as an attribute with a leading space, such
// as ` style="padding: 8px; margin: 0"`. It returns "" for an empty style.
func (s Style) Attribute() string {
	var props []string
	if s.Padding != "" {
		props = append(props, "padding: "+s.Padding)
	}
	if s.Margin != "" {
		props = append(props, "margin: "+s.Margin)
	}
	if len(props) == 0 {
		return ""
	}
	return ` style="` + strings.ReplaceAll(strings.Join(props, "; "), `"`, "&quot;") + `"`
}

// EditSet is the set of pending edits for one source. It is immutable:
// every With/Without method returns a new set and leaves the receiver
// untouched. The zero value is an empty set.
type EditSet struct {
	removals map[int]struct{}
	styles   map[int]Style
}

// NewEditSet returns an empty edit set.
func NewEditSet() EditSet {
	return EditSet{}
}

func (e EditSet) clone() EditSet {
	return EditSet{
		removals: maps.Clone(e.removals),
		styles:   maps.Clone(e.styles),
	}
}

// IsEmpty reports whether the set holds no edits.
func (e EditSet) IsEmpty() bool {
	return len(e.removals) == 0 && len(e.styles) == 0
}

// IsRemoved reports whether the element id is marked for removal.
func (e EditSet) IsRemoved(id int) bool {
	_, ok := e.removals[id]
	return ok
}

// Style returns the pending style for id.
func (e EditSet) Style(id int) (Style, bool) {
	s, ok := e.styles[id]
	return s, ok
}

// Removals returns the ids marked for removal in ascending order.
func (e EditSet) Removals() []int {
	return slices.Sorted(maps.Keys(e.removals))
}

// StyledIDs returns the ids with a pending style in ascending order.
func (e EditSet) StyledIDs() []int {
	return slices.Sorted(maps.Keys(e.styles))
}

// WithRemoval marks id for removal and drops any pending style on it.
func (e EditSet) WithRemoval(id int) EditSet {
	out := e.clone()
	if out.removals == nil {
		out.removals = make(map[int]struct{})
	}
	out.removals[id] = struct{}{}
	delete(out.styles, id)
	return out
}

// WithoutRemoval unmarks id.
func (e EditSet) WithoutRemoval(id int) EditSet {
	out := e.clone()
	delete(out.removals, id)
	return out
}

// WithStyle replaces the pending style on id. An empty style clears it.
func (e EditSet) WithStyle(id int, style Style) EditSet {
	if style.IsEmpty() {
		return e.WithoutStyle(id)
	}
	out := e.clone()
	if out.styles == nil {
		out.styles = make(map[int]Style)
	}
	out.styles[id] = style
	return out
}

// WithPadding sets the padding of id, keeping its margin.
func (e EditSet) WithPadding(id int, padding string) EditSet {
	style := e.styles[id]
	style.Padding = padding
	return e.WithStyle(id, style)
}

// WithMargin sets the margin of id, keeping its padding.
func (e EditSet) WithMargin(id int, margin string) EditSet {
	style := e.styles[id]
	style.Margin = margin
	return e.WithStyle(id, style)
}

// WithoutStyle drops the pending style on id.
func (e EditSet) WithoutStyle(id int) EditSet {
	out := e.clone()
	delete(out.styles, id)
	return out
}
