package htmlpos_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/yaklabco/tmplpatch/pkg/htmlpos"
)

func rec(id, start, end, openEnd int, tag string) htmlpos.Record {
	return htmlpos.Record{ID: id, StartOffset: start, EndOffset: end, OpenTagEndOffset: openEnd, TagName: tag}
}

func TestIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   []htmlpos.Record
	}{
		{
			name:   "empty",
			source: "",
			want:   nil,
		},
		{
			name:   "text only",
			source: "hello {{name}}",
			want:   nil,
		},
		{
			name:   "single element with placeholder",
			source: `<div style="padding: 8px">Hello {{name}}</div>`,
			want:   []htmlpos.Record{rec(0, 0, 46, 25, "div")},
		},
		{
			name:   "uppercase tag is lowered",
			source: "<DIV>x</DIV>",
			want:   []htmlpos.Record{rec(0, 0, 12, 4, "div")},
		},
		{
			name:   "implied li and p ends",
			source: "<ul><li>a<li>b</ul><p>x<div>y</div>",
			want: []htmlpos.Record{
				rec(0, 0, 19, 3, "ul"),
				rec(1, 4, 9, 7, "li"),
				rec(2, 9, 14, 12, "li"),
				rec(3, 19, 23, 21, "p"),
				rec(4, 23, 35, 27, "div"),
			},
		},
		{
			name:   "implied table cells and rows",
			source: "<table><tr><td>1<td>2<tr><td>3</table>",
			want: []htmlpos.Record{
				rec(0, 0, 38, 6, "table"),
				rec(1, 7, 21, 10, "tr"),
				rec(2, 11, 16, 14, "td"),
				rec(3, 16, 21, 19, "td"),
				rec(4, 21, 30, 24, "tr"),
				rec(5, 25, 30, 28, "td"),
			},
		},
		{
			name:   "unclosed inline child does not nest the next li",
			source: "<ul><li><b>one<li>two</ul>",
			want: []htmlpos.Record{
				rec(0, 0, 26, 3, "ul"),
				rec(1, 4, 14, 7, "li"),
				rec(2, 8, 14, 10, "b"),
				rec(3, 14, 21, 17, "li"),
			},
		},
		{
			name:   "li closes through div",
			source: "<ul><li><div>a<li>b</ul>",
			want: []htmlpos.Record{
				rec(0, 0, 24, 3, "ul"),
				rec(1, 4, 14, 7, "li"),
				rec(2, 8, 14, 12, "div"),
				rec(3, 14, 19, 17, "li"),
			},
		},
		{
			name:   "nested list keeps its items",
			source: "<ul><li>a<ul><li>b</ul></ul>",
			want: []htmlpos.Record{
				rec(0, 0, 28, 3, "ul"),
				rec(1, 4, 23, 7, "li"),
				rec(2, 9, 23, 12, "ul"),
				rec(3, 13, 18, 16, "li"),
			},
		},
		{
			name:   "block closes p through inline child",
			source: "<p><span>intro<div>block</div>",
			want: []htmlpos.Record{
				rec(0, 0, 14, 2, "p"),
				rec(1, 3, 14, 8, "span"),
				rec(2, 14, 30, 18, "div"),
			},
		},
		{
			name:   "button scope keeps p open",
			source: "<p><button><div>x</div></button></p>",
			want: []htmlpos.Record{
				rec(0, 0, 36, 2, "p"),
				rec(1, 3, 32, 10, "button"),
				rec(2, 11, 23, 15, "div"),
			},
		},
		{
			name:   "shell tags are skipped",
			source: "<html><head><title>T</title></head><body><div>A</div></body></html>",
			want: []htmlpos.Record{
				rec(0, 12, 28, 18, "title"),
				rec(1, 41, 53, 45, "div"),
			},
		},
		{
			name:   "void and self-closing are leaves",
			source: "<p>a<br>b<x-icon/></p>",
			want: []htmlpos.Record{
				rec(0, 0, 22, 2, "p"),
				rec(1, 4, 8, 7, "br"),
				rec(2, 9, 18, 17, "x-icon"),
			},
		},
		{
			name:   "directives are not elements",
			source: "<#if x><p>a</p></#if>",
			want:   []htmlpos.Record{rec(0, 7, 15, 9, "p")},
		},
		{
			name:   "stray end tag ignored",
			source: "</span><b>x</b>",
			want:   []htmlpos.Record{rec(0, 7, 15, 9, "b")},
		},
		{
			name:   "unclosed at end of input",
			source: "<div><span>x",
			want: []htmlpos.Record{
				rec(0, 0, 12, 4, "div"),
				rec(1, 5, 12, 10, "span"),
			},
		},
		{
			name:   "end tag closes unclosed children",
			source: "<div><span>x</div>",
			want: []htmlpos.Record{
				rec(0, 0, 18, 4, "div"),
				rec(1, 5, 12, 10, "span"),
			},
		},
		{
			name:   "script content is raw text",
			source: "<script>if (a<b) {}</script><i>z</i>",
			want: []htmlpos.Record{
				rec(0, 0, 28, 7, "script"),
				rec(1, 28, 36, 30, "i"),
			},
		},
		{
			name:   "comments are skipped",
			source: "<!-- <b>no</b> --><em>y</em>",
			want:   []htmlpos.Record{rec(0, 18, 28, 21, "em")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := htmlpos.Index(tt.source)
			if err != nil {
				t.Fatalf("Index() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Index() =\n  %+v\nwant\n  %+v", got, tt.want)
			}
		})
	}
}

func TestIndex_SpansCoverTags(t *testing.T) {
	t.Parallel()

	src := "<section>\n  <h1 class=\"t\">Title</h1>\n  <p>Body ${x.y}</p>\n</section>\n"
	records, err := htmlpos.Index(src)
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}

	for _, r := range records {
		text := src[r.StartOffset:r.EndOffset]
		if !strings.HasPrefix(text, "<"+r.TagName) {
			t.Errorf("record %d %q does not start with its tag", r.ID, text)
		}
		if !strings.HasSuffix(text, "</"+r.TagName+">") {
			t.Errorf("record %d %q does not end with its closing tag", r.ID, text)
		}
		if src[r.OpenTagEndOffset] != '>' {
			t.Errorf("record %d OpenTagEndOffset points at %q", r.ID, src[r.OpenTagEndOffset])
		}
	}
}

func TestIndex_MaxBuf(t *testing.T) {
	t.Parallel()

	src := `<div class="` + strings.Repeat("a", 64) + `">x</div>`

	_, err := htmlpos.Options{MaxBuf: 16}.Index(src)
	if !errors.Is(err, htmlpos.ErrUnparseable) {
		t.Fatalf("Index() error = %v, want ErrUnparseable", err)
	}

	records, err := htmlpos.Options{MaxBuf: 1024}.Index(src)
	if err != nil || len(records) != 1 {
		t.Fatalf("Index() = %v, %v", records, err)
	}
}

func TestContainingID(t *testing.T) {
	t.Parallel()

	src := "<div><p>Hello <b>world</b></p></div>"
	records, err := htmlpos.Index(src)
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}

	tests := []struct {
		name     string
		from, to int
		wantID   int
		wantOK   bool
	}{
		{"inside bold text", 18, 20, 2, true},
		{"inside paragraph text", 8, 10, 1, true},
		{"spanning p and b", 10, 20, 1, true},
		{"whole div", 0, len(src), 0, true},
		{"caret at div start", 0, 0, 0, true},
		{"outside", 0, len(src) + 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			id, ok := htmlpos.ContainingID(records, tt.from, tt.to)
			if ok != tt.wantOK || (ok && id != tt.wantID) {
				t.Errorf("ContainingID(%d, %d) = %d, %v; want %d, %v", tt.from, tt.to, id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestContainingID_Smallest(t *testing.T) {
	t.Parallel()

	src := "<div><section><p>a</p><p>bb</p></section><span>c</span></div>"
	records, err := htmlpos.Index(src)
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}

	for from := 0; from <= len(src); from++ {
		for to := from; to <= len(src); to++ {
			id, ok := htmlpos.ContainingID(records, from, to)
			if !ok {
				continue
			}
			winner, _ := htmlpos.Find(records, id)
			for _, r := range records {
				if r.Contains(from, to) && r.Len() < winner.Len() {
					t.Fatalf("[%d,%d]: record %d is smaller than chosen %d", from, to, r.ID, id)
				}
			}
		}
	}
}

func TestContainingID_TieLowestID(t *testing.T) {
	t.Parallel()

	records := []htmlpos.Record{
		rec(0, 0, 10, 2, "a"),
		rec(1, 0, 10, 2, "b"),
	}
	id, ok := htmlpos.ContainingID(records, 3, 4)
	if !ok || id != 0 {
		t.Errorf("ContainingID() = %d, %v; want 0, true", id, ok)
	}
	if _, ok := htmlpos.ContainingID(nil, 0, 0); ok {
		t.Error("ContainingID(nil) reported a match")
	}
}

func TestFind(t *testing.T) {
	t.Parallel()

	records := []htmlpos.Record{rec(0, 0, 5, 2, "a"), rec(1, 1, 4, 2, "b")}
	if r, ok := htmlpos.Find(records, 1); !ok || r.TagName != "b" {
		t.Errorf("Find(1) = %+v, %v", r, ok)
	}
	if _, ok := htmlpos.Find(records, 7); ok {
		t.Error("Find(7) reported a match")
	}
	if _, ok := htmlpos.Find(records, -1); ok {
		t.Error("Find(-1) reported a match")
	}
}
