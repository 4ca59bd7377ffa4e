// Package splice provides byte-range edits over source text and the
// slice-and-splice logic that applies them without touching anything
// outside the edited ranges.
package splice

// Range is a half-open byte range [Start, End) within a specific string.
type Range struct {
	// Start is the byte index where the range begins (inclusive).
	Start int

	// End is the byte index where the range ends (exclusive).
	End int
}

// Len returns the length of the range in bytes.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains returns true if offset lies within the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Covers returns true if other lies entirely within r.
func (r Range) Covers(other Range) bool {
	return r.Start <= other.Start && r.End >= other.End
}

// Overlaps returns true if the two ranges share at least one byte.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}
