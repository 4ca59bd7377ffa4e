// Package htmlpos indexes the elements of a markup source by byte offset.
//
// Unlike a conforming HTML parser it never moves, inserts or repairs
// nodes: every element it reports is backed by an opening tag in the
// source, so its offsets can be used to splice the original text.
package htmlpos

import (
	"github.com/yaklabco/tmplpatch/pkg/splice"
)

// Record locates one element in the parsed source.
//
// IDs are assigned in document pre-order starting at 0 and are only
// meaningful for the source they were computed from. Two records of the
// same source are either disjoint or nested.
type Record struct {
	ID int `json:"id" yaml:"id"`

	// StartOffset and EndOffset delimit the element from the '<' of its
	// opening tag through the '>' of its closing tag, half-open.
	StartOffset int `json:"start" yaml:"start"`
	EndOffset   int `json:"end" yaml:"end"`

	// OpenTagEndOffset is the offset of the '>' of the opening tag. Text
	// inserted there lands inside the opening tag.
	OpenTagEndOffset int `json:"open_tag_end" yaml:"open_tag_end"`

	TagName string `json:"tag" yaml:"tag"`
}

// Span returns the element's byte range.
func (r Record) Span() splice.Range {
	return splice.Range{Start: r.StartOffset, End: r.EndOffset}
}

// Len returns the length of the element in bytes.
func (r Record) Len() int {
	return r.EndOffset - r.StartOffset
}

// Contains reports whether the element covers [from, to].
func (r Record) Contains(from, to int) bool {
	return r.StartOffset <= from && r.EndOffset >= to
}

// Index returns the element records of source with default options.
func Index(source string) ([]Record, error) {
	return Options{}.Index(source)
}

// Index returns one record per element of source, in pre-order.
func (o Options) Index(source string) ([]Record, error) {
	root, err := o.Parse(source)
	if err != nil {
		return nil, err
	}
	return Records(root), nil
}

// Records flattens the elements of a parsed tree into records.
func Records(root *Node) []Record {
	id := 0
	return Collect(root, func(n *Node) (Record, bool) {
		r := Record{
			ID:               id,
			StartOffset:      n.Start,
			EndOffset:        n.End,
			OpenTagEndOffset: n.OpenTagEnd,
			TagName:          n.Tag,
		}
		if r.OpenTagEndOffset < r.StartOffset {
			r.OpenTagEndOffset = r.EndOffset - 1
		}
		id++
		return r, true
	})
}

// ContainingID returns the id of the smallest record covering [from, to].
// Ties go to the lowest id. It reports false when no record qualifies.
func ContainingID(records []Record, from, to int) (int, bool) {
	best := -1
	bestLen := 0
	for _, r := range records {
		if !r.Contains(from, to) {
			continue
		}
		if best < 0 || r.Len() < bestLen {
			best, bestLen = r.ID, r.Len()
		}
	}
	return best, best >= 0
}

// Find returns the record with the given id.
func Find(records []Record, id int) (Record, bool) {
	if id >= 0 && id < len(records) && records[id].ID == id {
		return records[id], true
	}
	for _, r := range records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}
