package patch_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tmplpatch/pkg/patch"
)

func TestEditSet_CopyOnWrite(t *testing.T) {
	t.Parallel()

	base := patch.NewEditSet().WithPadding(1, "2px")
	removed := base.WithRemoval(2)
	restyled := base.WithMargin(1, "3px")

	assert.False(t, base.IsRemoved(2), "base mutated by WithRemoval")
	assert.True(t, removed.IsRemoved(2))

	style, ok := base.Style(1)
	require.True(t, ok)
	assert.Equal(t, patch.Style{Padding: "2px"}, style)

	style, _ = restyled.Style(1)
	assert.Equal(t, patch.Style{Padding: "2px", Margin: "3px"}, style)
}

func TestEditSet_ZeroValue(t *testing.T) {
	t.Parallel()

	var e patch.EditSet
	assert.True(t, e.IsEmpty())
	assert.Empty(t, e.Removals())
	assert.Empty(t, e.StyledIDs())
	assert.False(t, e.IsRemoved(0))

	e = e.WithRemoval(3).WithoutRemoval(3)
	assert.True(t, e.IsEmpty())
}

func TestEditSet_WithRemovalDropsStyle(t *testing.T) {
	t.Parallel()

	e := patch.NewEditSet().WithPadding(4, "1px").WithRemoval(4)
	_, ok := e.Style(4)
	assert.False(t, ok)
	assert.Equal(t, []int{4}, e.Removals())
}

func TestEditSet_EmptyStyleClears(t *testing.T) {
	t.Parallel()

	e := patch.NewEditSet().WithPadding(1, "1px").WithPadding(1, "")
	assert.Empty(t, e.StyledIDs())

	e = patch.NewEditSet().WithStyle(2, patch.Style{Margin: "0"}).WithoutStyle(2)
	assert.Empty(t, e.StyledIDs())
}

func TestEditSet_Sorted(t *testing.T) {
	t.Parallel()

	e := patch.NewEditSet().WithRemoval(9).WithRemoval(2).WithRemoval(5).
		WithMargin(7, "0").WithMargin(1, "0")
	assert.Equal(t, []int{2, 5, 9}, e.Removals())
	assert.Equal(t, []int{1, 7}, e.StyledIDs())
}

func TestStyle_Attribute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		style patch.Style
		want  string
	}{
		{patch.Style{}, ""},
		{patch.Style{Padding: "8px"}, ` style="padding: 8px"`},
		{patch.Style{Margin: "1em"}, ` style="margin: 1em"`},
		{patch.Style{Padding: "1px", Margin: "2px"}, ` style="padding: 1px; margin: 2px"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.style.Attribute())
	}
}

func TestEditSet_YAML(t *testing.T) {
	t.Parallel()

	input := `
removals: [3, 1]
styles:
  2:
    padding: 8px
  3:
    margin: 0 auto
  5:
    padding: 1px
    margin: 2px
`
	e, err := patch.ParseEditSet([]byte(input))
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3}, e.Removals())
	assert.Equal(t, []int{2, 5}, e.StyledIDs(), "style on removed id 3 should be dropped")

	out, err := patch.MarshalEditSet(e)
	require.NoError(t, err)

	again, err := patch.ReadEditSet(strings.NewReader(string(out)))
	require.NoError(t, err)
	assert.True(t, reflect.DeepEqual(e, again), "round trip changed the set:\n%s", out)
}

func TestParseEditSet_Empty(t *testing.T) {
	t.Parallel()

	e, err := patch.ParseEditSet(nil)
	require.NoError(t, err)
	assert.True(t, e.IsEmpty())
}

func TestParseEditSet_Invalid(t *testing.T) {
	t.Parallel()

	_, err := patch.ParseEditSet([]byte("removals: {a: b}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing edits")
}

func TestLoadEditSet(t *testing.T) {
	t.Parallel()

	_, err := patch.LoadEditSet("/nonexistent/edits.yaml")
	require.Error(t, err)
}

func TestParseEditSetJSON(t *testing.T) {
	t.Parallel()

	edits, err := patch.ParseEditSetJSON([]byte(`{
  // drop the banner
  "removals": [3],
  "styles": {
    "2": {"padding": "8px"},
    "3": {"margin": "0"}, /* removed below */
  },
}`))
	require.NoError(t, err)

	assert.Equal(t, []int{3}, edits.Removals())
	assert.Equal(t, []int{2}, edits.StyledIDs())
	style, ok := edits.Style(2)
	require.True(t, ok)
	assert.Equal(t, "8px", style.Padding)
}

func TestLoadEditSet_ByExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "edits.jsonc")
	yamlPath := filepath.Join(dir, "edits.yaml")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"removals": [1]}`), 0o600))
	require.NoError(t, os.WriteFile(yamlPath, []byte("removals: [1]\n"), 0o600))

	fromJSON, err := patch.LoadEditSet(jsonPath)
	require.NoError(t, err)
	fromYAML, err := patch.LoadEditSet(yamlPath)
	require.NoError(t, err)

	assert.Equal(t, fromYAML.Removals(), fromJSON.Removals())
}
