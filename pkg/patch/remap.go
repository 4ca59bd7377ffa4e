package patch

import (
	"slices"

	"github.com/yaklabco/tmplpatch/pkg/splice"
)

// Remapper translates offsets of the original source into offsets of the
// source with a set of disjoint spans removed.
type Remapper struct {
	removed []splice.Range
}

// NewRemapper returns a Remapper for sorted, disjoint removed spans.
func NewRemapper(removed []splice.Range) Remapper {
	return Remapper{removed: removed}
}

// Remap returns offset minus the total length of removed spans that end at
// or before it. Offsets inside a removed span map to where the span was.
func (m Remapper) Remap(offset int) int {
	shift := 0
	for _, r := range m.removed {
		if r.End > offset {
			if r.Start < offset {
				shift += offset - r.Start
			}
			break
		}
		shift += r.Len()
	}
	return offset - shift
}

// Removed reports whether offset lies inside a removed span.
func (m Remapper) Removed(offset int) bool {
	i, found := slices.BinarySearchFunc(m.removed, offset, func(r splice.Range, off int) int {
		switch {
		case r.End <= off:
			return -1
		case r.Start > off:
			return 1
		default:
			return 0
		}
	})
	return found && m.removed[i].Contains(offset)
}
