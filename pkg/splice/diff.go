package splice

import (
	"fmt"
	"strings"
)

// LineKind classifies a line of a unified diff.
type LineKind int

const (
	// LineContext is an unchanged line.
	LineContext LineKind = iota

	// LineAdd is a line present only in the patched text.
	LineAdd

	// LineRemove is a line present only in the original text.
	LineRemove
)

// Line is one line of a diff hunk, without its prefix or newline.
type Line struct {
	Kind    LineKind
	Content string
}

// Hunk is a contiguous group of changes with surrounding context.
type Hunk struct {
	// OriginalStart is the 1-based first line of the hunk in the original.
	OriginalStart int
	OriginalCount int

	// PatchedStart is the 1-based first line of the hunk in the patched text.
	PatchedStart int
	PatchedCount int

	Lines []Line
}

// Diff is a line-oriented unified diff between an original and a patched
// version of one source.
type Diff struct {
	Path      string
	Hunks     []Hunk
	Additions int
	Deletions int
}

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// Unified computes the diff between original and patched.
// Returns nil when the two are line-for-line identical.
func Unified(path, original, patched string) *Diff {
	if original == patched {
		return nil
	}

	ops := diffLines(splitLines(original), splitLines(patched))
	hunks := groupHunks(ops)
	if len(hunks) == 0 {
		return nil
	}

	d := &Diff{Path: path, Hunks: hunks}
	for _, h := range hunks {
		for _, l := range h.Lines {
			switch l.Kind {
			case LineAdd:
				d.Additions++
			case LineRemove:
				d.Deletions++
			}
		}
	}
	return d
}

// HasChanges returns true if the diff contains at least one hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders the diff in unified format.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n", path)
	fmt.Fprintf(&b, "+++ b/%s\n", path)

	for _, h := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n",
			h.OriginalStart, h.OriginalCount, h.PatchedStart, h.PatchedCount)
		for _, l := range h.Lines {
			b.WriteByte(l.Kind.prefix())
			b.WriteString(l.Content)
			b.WriteByte('\n')
		}
	}

	return b.String()
}

func (k LineKind) prefix() byte {
	switch k {
	case LineAdd:
		return '+'
	case LineRemove:
		return '-'
	default:
		return ' '
	}
}

// splitLines splits s on newlines, dropping the empty tail after a final
// newline.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

type lineOp struct {
	kind    LineKind
	content string
}

// diffLines produces an edit script from a longest-common-subsequence table.
func diffLines(orig, patched []string) []lineOp {
	rows, cols := len(orig), len(patched)

	// lcs[i][j] is the LCS length of orig[i:] and patched[j:].
	lcs := make([][]int, rows+1)
	for i := range lcs {
		lcs[i] = make([]int, cols+1)
	}
	for i := rows - 1; i >= 0; i-- {
		for j := cols - 1; j >= 0; j-- {
			if orig[i] == patched[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	ops := make([]lineOp, 0, rows+cols)
	i, j := 0, 0
	for i < rows && j < cols {
		switch {
		case orig[i] == patched[j]:
			ops = append(ops, lineOp{LineContext, orig[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			ops = append(ops, lineOp{LineRemove, orig[i]})
			i++
		default:
			ops = append(ops, lineOp{LineAdd, patched[j]})
			j++
		}
	}
	for ; i < rows; i++ {
		ops = append(ops, lineOp{LineRemove, orig[i]})
	}
	for ; j < cols; j++ {
		ops = append(ops, lineOp{LineAdd, patched[j]})
	}
	return ops
}

// groupHunks groups changed ops into hunks, merging changes whose gap is
// small enough for their context to touch.
func groupHunks(ops []lineOp) []Hunk {
	type span struct{ start, end int }

	var changes []span
	for idx := 0; idx < len(ops); {
		if ops[idx].kind == LineContext {
			idx++
			continue
		}
		start := idx
		for idx < len(ops) && ops[idx].kind != LineContext {
			idx++
		}
		if n := len(changes); n > 0 && start-changes[n-1].end <= contextLines*2 {
			changes[n-1].end = idx
			continue
		}
		changes = append(changes, span{start, idx})
	}

	hunks := make([]Hunk, 0, len(changes))
	for _, c := range changes {
		from := max(c.start-contextLines, 0)
		to := min(c.end+contextLines, len(ops))

		h := Hunk{OriginalStart: 1, PatchedStart: 1}
		for _, op := range ops[:from] {
			if op.kind != LineAdd {
				h.OriginalStart++
			}
			if op.kind != LineRemove {
				h.PatchedStart++
			}
		}
		for _, op := range ops[from:to] {
			h.Lines = append(h.Lines, Line{Kind: op.kind, Content: op.content})
			if op.kind != LineAdd {
				h.OriginalCount++
			}
			if op.kind != LineRemove {
				h.PatchedCount++
			}
		}
		hunks = append(hunks, h)
	}
	return hunks
}
