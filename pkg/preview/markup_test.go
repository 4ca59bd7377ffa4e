package preview_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tmplpatch/pkg/preview"
)

func TestBuildMarkup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		resolved string
		want     string
	}{
		{
			name:     "single element",
			resolved: "<div>Hello World</div>",
			want:     `<div data-node-id="0" data-tag-name="div">Hello World</div>`,
		},
		{
			name:     "pre-order numbering",
			resolved: "<ul><li>a</li><li>b</li></ul><p>c</p>",
			want: `<ul data-node-id="0" data-tag-name="ul"><li data-node-id="1" data-tag-name="li">a</li>` +
				`<li data-node-id="2" data-tag-name="li">b</li></ul><p data-node-id="3" data-tag-name="p">c</p>`,
		},
		{
			name:     "existing attributes kept",
			resolved: `<a href="/x" class="btn">go</a>`,
			want:     `<a href="/x" class="btn" data-node-id="0" data-tag-name="a">go</a>`,
		},
		{
			name:     "text only",
			resolved: "just text",
			want:     "just text",
		},
		{
			name:     "empty",
			resolved: "",
			want:     "",
		},
		{
			name:     "unclosed element is repaired",
			resolved: "<p>one<p>two",
			want:     `<p data-node-id="0" data-tag-name="p">one</p><p data-node-id="1" data-tag-name="p">two</p>`,
		},
		{
			name:     "implied tbody is untagged",
			resolved: "<table><tr><td>1</td></tr></table>",
			want: `<table data-node-id="0" data-tag-name="table"><tbody><tr data-node-id="1" data-tag-name="tr">` +
				`<td data-node-id="2" data-tag-name="td">1</td></tr></tbody></table>`,
		},
		{
			name:     "shell tags dropped",
			resolved: "<html><head><title>T</title></head><body><p>x</p></body></html>",
			want:     `<title data-node-id="0" data-tag-name="title">T</title><p data-node-id="1" data-tag-name="p">x</p>`,
		},
		{
			name:     "reopened formatting element is untagged",
			resolved: "<ul><li><b>one<li>two</ul>",
			want: `<ul data-node-id="0" data-tag-name="ul"><li data-node-id="1" data-tag-name="li">` +
				`<b data-node-id="2" data-tag-name="b">one</b></li><li data-node-id="3" data-tag-name="li"><b>two</b></li></ul>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, preview.BuildMarkup(tt.resolved))
		})
	}
}

func TestBuildMarkup_Minify(t *testing.T) {
	t.Parallel()

	src := "<div>\n    <p id=\"intro\">Hello</p>\n    <p>World</p>\n</div>\n"
	plain := preview.BuildMarkup(src)
	small := preview.Options{Minify: true}.BuildMarkup(src)

	assert.Less(t, len(small), len(plain))
	assert.NotContains(t, small, "\n    ")
	assert.Contains(t, small, preview.AttrNodeID)

	idx, ok := preview.MatchIndex(small, "#intro")
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestBuildMarkup_CountsMatchElements(t *testing.T) {
	t.Parallel()

	out := preview.BuildMarkup("<section><h1>T</h1><p>a <b>b</b> <i>c</i></p></section>")
	assert.Equal(t, 5, strings.Count(out, preview.AttrNodeID+"="))
	assert.Contains(t, out, `data-node-id="4" data-tag-name="i"`)
}
