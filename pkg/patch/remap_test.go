package patch_test

import (
	"testing"

	"github.com/yaklabco/tmplpatch/pkg/patch"
	"github.com/yaklabco/tmplpatch/pkg/splice"
)

func TestRemapper(t *testing.T) {
	t.Parallel()

	m := patch.NewRemapper([]splice.Range{{Start: 10, End: 20}, {Start: 30, End: 45}})

	tests := []struct {
		offset      int
		want        int
		wantRemoved bool
	}{
		{0, 0, false},
		{9, 9, false},
		{10, 10, true},
		{15, 10, true},
		{20, 10, false},
		{25, 15, false},
		{30, 20, true},
		{44, 20, true},
		{45, 20, false},
		{50, 25, false},
	}

	for _, tt := range tests {
		if got := m.Remap(tt.offset); got != tt.want {
			t.Errorf("Remap(%d) = %d, want %d", tt.offset, got, tt.want)
		}
		if got := m.Removed(tt.offset); got != tt.wantRemoved {
			t.Errorf("Removed(%d) = %v, want %v", tt.offset, got, tt.wantRemoved)
		}
	}
}

func TestRemapper_Empty(t *testing.T) {
	t.Parallel()

	var m patch.Remapper
	if m.Remap(7) != 7 || m.Removed(7) {
		t.Error("zero Remapper should be the identity")
	}
}
