package splice

// Edit replaces the bytes [Start, End) of a string with NewText.
// A zero-length range is an insertion; an empty NewText is a deletion.
type Edit struct {
	// Start is the byte index where the edit begins (inclusive).
	Start int

	// End is the byte index where the edit ends (exclusive).
	End int

	// NewText is the replacement text.
	NewText string
}

// Range returns the byte range the edit replaces.
func (e Edit) Range() Range {
	return Range{Start: e.Start, End: e.End}
}

// IsDeletion returns true if the edit removes bytes without replacing them.
func (e Edit) IsDeletion() bool {
	return e.NewText == "" && e.End > e.Start
}

// Builder accumulates edits against a single source string.
type Builder struct {
	Edits []Edit
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		Edits: make([]Edit, 0),
	}
}

// Replace adds an edit that replaces bytes [start, end) with newText.
func (b *Builder) Replace(start, end int, newText string) {
	b.Edits = append(b.Edits, Edit{
		Start:   start,
		End:     end,
		NewText: newText,
	})
}

// Insert adds an edit that inserts text at offset.
func (b *Builder) Insert(offset int, text string) {
	b.Replace(offset, offset, text)
}

// Delete adds an edit that deletes bytes [start, end).
func (b *Builder) Delete(start, end int) {
	b.Replace(start, end, "")
}

// Len returns the number of accumulated edits.
func (b *Builder) Len() int {
	return len(b.Edits)
}
