// Package directive removes template directive tags such as <#if cond>,
// </#list> or <#assign x = 1> from markup, leaving their content in place.
//
// Stripping is structural only: the bodies of conditionals and loops are
// kept exactly once, with no evaluation.
package directive

import (
	"regexp"
	"sort"
)

// DefaultMarker is the character that introduces a directive tag name.
const DefaultMarker = "#"

// Stripper removes directive tags introduced by a fixed marker.
type Stripper struct {
	marker   string
	openTag  *regexp.Regexp
	closeTag *regexp.Regexp
	name     *regexp.Regexp
}

// NewStripper returns a Stripper for marker. An empty marker selects
// DefaultMarker.
func NewStripper(marker string) *Stripper {
	if marker == "" {
		marker = DefaultMarker
	}
	quoted := regexp.QuoteMeta(marker)
	return &Stripper{
		marker:   marker,
		openTag:  regexp.MustCompile(`<` + quoted + `\w[\s\S]*?>`),
		closeTag: regexp.MustCompile(`</` + quoted + `\w[\s\S]*?>`),
		name:     regexp.MustCompile(`^</?` + quoted + `(\w+)`),
	}
}

// Marker returns the configured marker.
func (s *Stripper) Marker() string {
	return s.marker
}

//nolint:gochecknoglobals // Stateless default instance.
var defaultStripper = NewStripper(DefaultMarker)

// Strip removes directive tags using DefaultMarker.
func Strip(source string) string {
	return defaultStripper.Strip(source)
}

// Directives lists directive tags using DefaultMarker.
func Directives(source string) []Tag {
	return defaultStripper.Directives(source)
}

// Strip removes every opening and closing directive tag, repeating until a
// pass leaves the text unchanged. Each tag extends to the first following
// '>'. All other text is preserved byte for byte. Strip is idempotent.
func (s *Stripper) Strip(source string) string {
	out := source
	for {
		next := s.openTag.ReplaceAllLiteralString(out, "")
		next = s.closeTag.ReplaceAllLiteralString(next, "")
		if next == out {
			return out
		}
		out = next
	}
}

// Tag is a directive tag found in a source string.
type Tag struct {
	Start   int    // byte offset of '<'
	End     int    // byte offset just past '>'
	Name    string // directive name without marker, such as "if"
	Closing bool   // true for </#name>
	Raw     string // the tag as written
}

// Directives lists the directive tags of a single stripping pass, ordered
// by start offset. Tags that only form after an earlier removal are not
// reported.
func (s *Stripper) Directives(source string) []Tag {
	var tags []Tag
	collect := func(re *regexp.Regexp, closing bool) {
		for _, loc := range re.FindAllStringIndex(source, -1) {
			raw := source[loc[0]:loc[1]]
			tag := Tag{Start: loc[0], End: loc[1], Closing: closing, Raw: raw}
			if m := s.name.FindStringSubmatch(raw); m != nil {
				tag.Name = m[1]
			}
			tags = append(tags, tag)
		}
	}
	collect(s.openTag, false)
	collect(s.closeTag, true)

	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].Start < tags[j].Start
	})
	return tags
}
