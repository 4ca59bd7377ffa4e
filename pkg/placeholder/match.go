package placeholder

import "sort"

// Syntax identifies which placeholder form matched.
type Syntax int

const (
	// SyntaxSimple is the {{name}} form.
	SyntaxSimple Syntax = iota
	// SyntaxPath is the ${path} form.
	SyntaxPath
)

// String returns the syntax name.
func (s Syntax) String() string {
	switch s {
	case SyntaxSimple:
		return "simple"
	case SyntaxPath:
		return "path"
	default:
		return "unknown"
	}
}

// Match is a single placeholder occurrence in a source string.
type Match struct {
	Start  int    // byte offset of the opening delimiter
	End    int    // byte offset just past the closing delimiter
	Syntax Syntax // which form matched
	Raw    string // the text as written, delimiters included
	Name   string // normalized name as used for lookup
}

// Placeholders lists every occurrence using the default resolver.
func Placeholders(source string) []Match {
	return defaultResolver.Placeholders(source)
}

// Placeholders lists every placeholder occurrence in source, ordered by
// start offset. Path occurrences with an empty name are included with an
// empty Name.
func (r *Resolver) Placeholders(source string) []Match {
	var matches []Match
	for _, loc := range simplePattern.FindAllStringSubmatchIndex(source, -1) {
		matches = append(matches, Match{
			Start:  loc[0],
			End:    loc[1],
			Syntax: SyntaxSimple,
			Raw:    source[loc[0]:loc[1]],
			Name:   source[loc[2]:loc[3]],
		})
	}
	for _, loc := range pathPattern.FindAllStringSubmatchIndex(source, -1) {
		matches = append(matches, Match{
			Start:  loc[0],
			End:    loc[1],
			Syntax: SyntaxPath,
			Raw:    source[loc[0]:loc[1]],
			Name:   r.normalize(source[loc[2]:loc[3]]),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Start < matches[j].Start
	})
	return matches
}
