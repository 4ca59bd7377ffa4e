package preview

import (
	"cmp"
	"slices"

	"github.com/yaklabco/tmplpatch/pkg/htmlpos"
	"github.com/yaklabco/tmplpatch/pkg/patch"
)

// IDTable maps preview indexes to source element ids.
//
// The preview of a patched source renders the elements that survived the
// edits in source order, so the n-th tagged element of the preview is the
// n-th remaining record by start offset.
type IDTable struct {
	ids   []int
	index map[int]int
}

// NewIDTable builds the table for records of the original source and the
// edit set applied to it. Removed elements and their descendants are left
// out.
func NewIDTable(records []htmlpos.Record, edits patch.EditSet) IDTable {
	var removed []htmlpos.Record
	for _, id := range edits.Removals() {
		if r, ok := htmlpos.Find(records, id); ok {
			removed = append(removed, r)
		}
	}

	remaining := make([]htmlpos.Record, 0, len(records))
	for _, r := range records {
		if !insideAny(r, removed) {
			remaining = append(remaining, r)
		}
	}
	slices.SortStableFunc(remaining, func(a, b htmlpos.Record) int {
		return cmp.Compare(a.StartOffset, b.StartOffset)
	})

	t := IDTable{ids: make([]int, len(remaining)), index: make(map[int]int, len(remaining))}
	for i, r := range remaining {
		t.ids[i] = r.ID
		t.index[r.ID] = i
	}
	return t
}

func insideAny(r htmlpos.Record, removed []htmlpos.Record) bool {
	for _, rm := range removed {
		if rm.Span().Covers(r.Span()) {
			return true
		}
	}
	return false
}

// Len returns the number of remaining elements.
func (t IDTable) Len() int {
	return len(t.ids)
}

// IDAt returns the element id shown at preview index, or -1 when the
// index is out of range.
func (t IDTable) IDAt(index int) int {
	if index < 0 || index >= len(t.ids) {
		return -1
	}
	return t.ids[index]
}

// IndexOf returns the preview index of element id.
func (t IDTable) IndexOf(id int) (int, bool) {
	i, ok := t.index[id]
	return i, ok
}

// IDs returns a copy of the ids in preview order.
func (t IDTable) IDs() []int {
	return slices.Clone(t.ids)
}
