package placeholder_test

import (
	"testing"

	"github.com/yaklabco/tmplpatch/pkg/placeholder"
)

func TestData_SetLookup(t *testing.T) {
	t.Parallel()

	d := placeholder.Data{}
	d.Set("a.b.c", "leaf")
	d.Set("a.x", 1)
	d.Set("top", "t")
	d.Set("a.", "ignored")

	tests := []struct {
		path   string
		want   any
		wantOK bool
	}{
		{"a.b.c", "leaf", true},
		{"a.x", 1, true},
		{"top", "t", true},
		{" a . b . c ", "leaf", true},
		{"a.b.missing", nil, false},
		{"top.deeper", nil, false},
		{"nope", nil, false},
	}
	for _, tt := range tests {
		got, ok := d.Lookup(tt.path)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Lookup(%q) = %v, %v; want %v, %v", tt.path, got, ok, tt.want, tt.wantOK)
		}
	}

	if _, ok := d.Lookup("a."); ok {
		t.Error("empty final segment should not be stored")
	}
}

func TestData_SetReplacesLeaf(t *testing.T) {
	t.Parallel()

	d := placeholder.Data{"a": "leaf"}
	d.Set("a.b", "nested")
	if v, ok := d.Lookup("a.b"); !ok || v != "nested" {
		t.Errorf("Lookup(a.b) = %v, %v", v, ok)
	}
}

func TestData_Clone(t *testing.T) {
	t.Parallel()

	d := placeholder.Data{}
	d.Set("a.b", "x")
	c := d.Clone()
	c.Set("a.b", "y")

	if v, _ := d.Lookup("a.b"); v != "x" {
		t.Errorf("original mutated: %v", v)
	}
}
