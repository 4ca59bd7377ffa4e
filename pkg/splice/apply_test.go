package splice_test

import (
	"testing"

	"github.com/yaklabco/tmplpatch/pkg/splice"
)

func TestApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		edits  []splice.Edit
		want   string
	}{
		{
			name:   "no edits returns source",
			source: "<p>hi</p>",
			edits:  nil,
			want:   "<p>hi</p>",
		},
		{
			name:   "single deletion",
			source: "<div><p>x</p></div>",
			edits:  []splice.Edit{{Start: 5, End: 13}},
			want:   "<div></div>",
		},
		{
			name:   "single insertion before closing bracket",
			source: "<div>x</div>",
			edits:  []splice.Edit{{Start: 4, End: 4, NewText: ` style="margin: 0"`}},
			want:   `<div style="margin: 0">x</div>`,
		},
		{
			name:   "insertion then deletion at adjacent offsets",
			source: "<a></a><b></b>",
			edits: []splice.Edit{
				{Start: 2, End: 2, NewText: " x"},
				{Start: 7, End: 14},
			},
			want: "<a x></a>",
		},
		{
			name:   "whitespace outside edits is untouched",
			source: "  <i>a</i>\n\t  <b>b</b>  \n",
			edits:  []splice.Edit{{Start: 2, End: 10}},
			want:   "  \n\t  <b>b</b>  \n",
		},
		{
			name:   "insert at start and end",
			source: "mid",
			edits: []splice.Edit{
				{Start: 0, End: 0, NewText: "<"},
				{Start: 3, End: 3, NewText: ">"},
			},
			want: "<mid>",
		},
		{
			name:   "replace everything",
			source: "old",
			edits:  []splice.Edit{{Start: 0, End: 3, NewText: "new"}},
			want:   "new",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := splice.Apply(tt.source, tt.edits)
			if got != tt.want {
				t.Errorf("Apply() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuilder(t *testing.T) {
	t.Parallel()

	b := splice.NewBuilder()
	b.Delete(5, 9)
	b.Insert(1, "x")
	b.Replace(2, 3, "yy")

	if b.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", b.Len())
	}

	prepared, err := splice.Prepare(b.Edits, 10)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	got := splice.Apply("0123456789", prepared)
	if got != "0x1yy349" {
		t.Errorf("Apply() = %q, want %q", got, "0x1yy349")
	}
}

func TestEditKinds(t *testing.T) {
	t.Parallel()

	if !(splice.Edit{Start: 1, End: 4}).IsDeletion() {
		t.Error("expected deletion")
	}
	if (splice.Edit{Start: 2, End: 2, NewText: "a"}).IsDeletion() {
		t.Error("insertion is not a deletion")
	}
	if (splice.Edit{Start: 2, End: 2}).IsDeletion() {
		t.Error("empty edit is not a deletion")
	}
}

func TestRange(t *testing.T) {
	t.Parallel()

	outer := splice.Range{Start: 0, End: 100}
	inner := splice.Range{Start: 20, End: 40}
	disjoint := splice.Range{Start: 100, End: 110}

	if !outer.Covers(inner) {
		t.Error("outer should cover inner")
	}
	if inner.Covers(outer) {
		t.Error("inner should not cover outer")
	}
	if outer.Overlaps(disjoint) {
		t.Error("adjacent ranges do not overlap")
	}
	if !outer.Contains(99) || outer.Contains(100) {
		t.Error("Contains should treat End as exclusive")
	}
	if inner.Len() != 20 {
		t.Errorf("Len() = %d, want 20", inner.Len())
	}
	if !(splice.Range{Start: 3, End: 3}).IsEmpty() {
		t.Error("expected empty range")
	}
}
