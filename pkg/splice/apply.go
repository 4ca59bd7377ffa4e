package splice

import "strings"

// Apply applies a sorted, conflict-free slice of edits to source and
// returns the result. Edits must be prepared with Prepare or
// MergeDeletions first. Bytes outside the edited ranges are copied
// verbatim; source itself is never modified.
func Apply(source string, edits []Edit) string {
	if len(edits) == 0 {
		return source
	}

	delta := 0
	for _, e := range edits {
		delta += len(e.NewText) - (e.End - e.Start)
	}

	var out strings.Builder
	out.Grow(max(len(source)+delta, 0))

	cursor := 0
	for _, e := range edits {
		out.WriteString(source[cursor:e.Start])
		out.WriteString(e.NewText)
		cursor = e.End
	}
	out.WriteString(source[cursor:])

	return out.String()
}
