package splice

import (
	"cmp"
	"fmt"
	"slices"
)

// ValidationError describes an edit whose range does not fit the source.
type ValidationError struct {
	Edit    Edit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.Start, e.Edit.End, e.Message)
}

// ConflictError describes two edits that overlap and cannot be merged.
type ConflictError struct {
	First  Edit
	Second Edit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.First.Start, e.First.End,
		e.Second.Start, e.Second.End)
}

// Validate checks that every edit has a valid range for a source of
// length sourceLen. Returns the first problem found.
func Validate(edits []Edit, sourceLen int) error {
	for _, edit := range edits {
		if edit.Start < 0 {
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		}
		if edit.End < edit.Start {
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		}
		if edit.End > sourceLen {
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds source length %d", edit.End, sourceLen),
			}
		}
	}
	return nil
}

// Sort orders edits by start offset, then by end offset, so an insertion
// sorts before a deletion that starts at the same offset.
func Sort(edits []Edit) {
	slices.SortStableFunc(edits, func(a, b Edit) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.End, b.End)
	})
}

// DetectConflicts reports the first pair of overlapping edits in a sorted
// slice, or nil.
func DetectConflicts(edits []Edit) error {
	for i := 1; i < len(edits); i++ {
		prev := edits[i-1]
		curr := edits[i]
		if prev.Range().Overlaps(curr.Range()) {
			return &ConflictError{First: prev, Second: curr}
		}
	}
	return nil
}

// Prepare validates, sorts and conflict-checks a copy of edits.
func Prepare(edits []Edit, sourceLen int) ([]Edit, error) {
	if len(edits) == 0 {
		return edits, nil
	}

	if err := Validate(edits, sourceLen); err != nil {
		return nil, err
	}

	result := slices.Clone(edits)
	Sort(result)

	if err := DetectConflicts(result); err != nil {
		return nil, err
	}

	return result, nil
}

// MergeDeletions validates and sorts a copy of edits, folding overlapping
// or nested deletions into one deletion covering their union. Any other
// overlap is a *ConflictError.
func MergeDeletions(edits []Edit, sourceLen int) ([]Edit, error) {
	accepted, skipped, _, err := PrepareFiltered(edits, sourceLen)
	if err != nil {
		return nil, err
	}
	if len(skipped) > 0 {
		return nil, &ConflictError{First: findOverlap(accepted, skipped[0]), Second: skipped[0]}
	}
	return accepted, nil
}

// PrepareFiltered validates and sorts a copy of edits, merges overlapping
// deletions and drops whatever still conflicts. Earlier edits win.
// Returns the accepted edits, the skipped edits and the number of merges.
// The error is only set for validation failures.
func PrepareFiltered(edits []Edit, sourceLen int) ([]Edit, []Edit, int, error) {
	if len(edits) == 0 {
		return nil, nil, 0, nil
	}

	if err := Validate(edits, sourceLen); err != nil {
		return nil, nil, 0, err
	}

	sorted := slices.Clone(edits)
	Sort(sorted)

	accepted := make([]Edit, 0, len(sorted))
	var skipped []Edit
	merged := 0

	current := sorted[0]
	for _, edit := range sorted[1:] {
		switch {
		case edit.Start >= current.End:
			accepted = append(accepted, current)
			current = edit
		case current.IsDeletion() && edit.IsDeletion():
			current = Edit{Start: min(current.Start, edit.Start), End: max(current.End, edit.End)}
			merged++
		default:
			skipped = append(skipped, edit)
		}
	}
	accepted = append(accepted, current)

	return accepted, skipped, merged, nil
}

func findOverlap(accepted []Edit, edit Edit) Edit {
	for _, a := range accepted {
		if a.Start <= edit.Start && edit.Start < a.End {
			return a
		}
	}
	return Edit{}
}
