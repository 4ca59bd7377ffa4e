package patch

import (
	"cmp"
	"slices"

	"github.com/yaklabco/tmplpatch/pkg/htmlpos"
	"github.com/yaklabco/tmplpatch/pkg/splice"
)

// SkipReason explains why an edit was not applied.
type SkipReason int

const (
	// SkipUnknownID means no record has the edit's id.
	SkipUnknownID SkipReason = iota
	// SkipOutOfRange means the record does not fit the source, usually
	// because it was computed from different text.
	SkipOutOfRange
	// SkipRemoved means a style targets an element that is itself removed.
	SkipRemoved
	// SkipEmptyStyle means a style sets no property.
	SkipEmptyStyle
	// SkipInsideRemoval means a style targets an element whose opening tag
	// lies inside a removed span, typically a descendant of a removed
	// element.
	SkipInsideRemoval
)

// String returns a short description of the reason.
func (r SkipReason) String() string {
	switch r {
	case SkipUnknownID:
		return "unknown element id"
	case SkipOutOfRange:
		return "element outside source"
	case SkipRemoved:
		return "element removed"
	case SkipEmptyStyle:
		return "no style properties"
	case SkipInsideRemoval:
		return "inside removed element"
	default:
		return "unknown"
	}
}

// Skip records an edit that was dropped.
type Skip struct {
	ID     int
	Style  bool // true for a style edit, false for a removal
	Reason SkipReason
}

// Insertion is a style attribute queued for one element.
type Insertion struct {
	ID int

	// Original is the insertion offset in the original source and Offset
	// the same point in the source after removals.
	Original int
	Offset   int

	Text string
}

// Plan is the resolved form of an edit set against one source.
type Plan struct {
	source string

	// Removals are the merged removal spans in original coordinates,
	// sorted and disjoint.
	Removals []splice.Range

	// Insertions are the style attributes to inject, sorted by offset.
	Insertions []Insertion

	// Skipped lists every edit that was not applied.
	Skipped []Skip
}

// NewPlan resolves edits against source and its records.
//
// Removal ids are resolved to spans and nested or overlapping spans are
// merged. Each remaining style is placed at its element's opening tag end,
// remapped past the removals. Stale ids, removed targets, empty styles and
// targets inside removed spans are skipped.
func NewPlan(source string, records []htmlpos.Record, edits EditSet) *Plan {
	plan := &Plan{source: source}

	var deletions []splice.Edit
	for _, id := range edits.Removals() {
		rec, ok := htmlpos.Find(records, id)
		if !ok {
			plan.skip(id, false, SkipUnknownID)
			continue
		}
		if !fits(rec, len(source)) {
			plan.skip(id, false, SkipOutOfRange)
			continue
		}
		deletions = append(deletions, splice.Edit{Start: rec.StartOffset, End: rec.EndOffset})
	}

	// Deletions only ever merge, so no conflict can remain.
	merged, err := splice.MergeDeletions(deletions, len(source))
	if err == nil {
		for _, d := range merged {
			plan.Removals = append(plan.Removals, d.Range())
		}
	}

	remap := plan.Remapper()
	for _, id := range edits.StyledIDs() {
		style, _ := edits.Style(id)
		switch rec, ok := htmlpos.Find(records, id); {
		case edits.IsRemoved(id):
			plan.skip(id, true, SkipRemoved)
		case !ok:
			plan.skip(id, true, SkipUnknownID)
		case !fits(rec, len(source)):
			plan.skip(id, true, SkipOutOfRange)
		case style.IsEmpty():
			plan.skip(id, true, SkipEmptyStyle)
		case remap.Removed(rec.OpenTagEndOffset):
			plan.skip(id, true, SkipInsideRemoval)
		default:
			plan.Insertions = append(plan.Insertions, Insertion{
				ID:       id,
				Original: rec.OpenTagEndOffset,
				Offset:   remap.Remap(rec.OpenTagEndOffset),
				Text:     style.Attribute(),
			})
		}
	}
	sortInsertions(plan.Insertions)

	return plan
}

func (p *Plan) skip(id int, style bool, reason SkipReason) {
	p.Skipped = append(p.Skipped, Skip{ID: id, Style: style, Reason: reason})
}

func fits(rec htmlpos.Record, size int) bool {
	return rec.StartOffset >= 0 && rec.StartOffset <= rec.OpenTagEndOffset &&
		rec.OpenTagEndOffset < rec.EndOffset && rec.EndOffset <= size
}

// Remapper maps original offsets through the plan's removals.
func (p *Plan) Remapper() Remapper {
	return Remapper{removed: p.Removals}
}

// Apply executes the plan: removals first, then insertions at their
// remapped offsets.
func (p *Plan) Apply() string {
	deletions := make([]splice.Edit, len(p.Removals))
	for i, r := range p.Removals {
		deletions[i] = splice.Edit{Start: r.Start, End: r.End}
	}
	out := splice.Apply(p.source, deletions)

	inserts := make([]splice.Edit, len(p.Insertions))
	for i, ins := range p.Insertions {
		inserts[i] = splice.Edit{Start: ins.Offset, End: ins.Offset, NewText: ins.Text}
	}
	return splice.Apply(out, inserts)
}

// Edits returns the plan as one validated, sorted list of edits against
// the original source, ready for a single splice.Apply pass.
func (p *Plan) Edits() ([]splice.Edit, error) {
	b := splice.NewBuilder()
	for _, r := range p.Removals {
		b.Delete(r.Start, r.End)
	}
	for _, ins := range p.Insertions {
		b.Insert(ins.Original, ins.Text)
	}
	return splice.Prepare(b.Edits, len(p.source))
}

// Apply returns source with edits applied. Records must come from
// indexing source itself.
func Apply(source string, records []htmlpos.Record, edits EditSet) string {
	return NewPlan(source, records, edits).Apply()
}

func sortInsertions(ins []Insertion) {
	slices.SortStableFunc(ins, func(a, b Insertion) int {
		return cmp.Compare(a.Original, b.Original)
	})
}
