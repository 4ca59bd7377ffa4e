package sniff_test

import (
	"testing"

	"github.com/yaklabco/tmplpatch/pkg/sniff"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		content    string
		wantLang   string
		wantMarkup bool
	}{
		{
			name:     "empty",
			content:  "  \n",
			wantLang: sniff.LangText,
		},
		{
			name:       "html by extension",
			path:       "mail/welcome.html",
			content:    "hello",
			wantLang:   sniff.LangHTML,
			wantMarkup: true,
		},
		{
			name:       "doctype",
			path:       "-",
			content:    "<!DOCTYPE html><p>x</p>",
			wantLang:   sniff.LangHTML,
			wantMarkup: true,
		},
		{
			name:       "xml declaration",
			content:    `<?xml version="1.0"?><feed/>`,
			wantLang:   sniff.LangXML,
			wantMarkup: true,
		},
		{
			name:       "template directives",
			content:    `<#if user??>Hi ${user.name}</#if>`,
			wantLang:   sniff.LangFreeMarker,
			wantMarkup: true,
		},
		{
			name:       "bare fragment",
			content:    `<div class="card">{{title}}</div>`,
			wantLang:   sniff.LangHTML,
			wantMarkup: true,
		},
		{
			name:     "shebang script",
			content:  "#!/bin/sh\necho hi\n",
			wantLang: "shell",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := sniff.Detect(tt.path, []byte(tt.content))
			if got.Language != tt.wantLang {
				t.Errorf("Language = %q, want %q (strategy %s)", got.Language, tt.wantLang, got.Strategy)
			}
			if got.Markup != tt.wantMarkup {
				t.Errorf("Markup = %v, want %v", got.Markup, tt.wantMarkup)
			}
		})
	}
}

func TestLooksLikeMarkup_SingleComparison(t *testing.T) {
	t.Parallel()

	if sniff.LooksLikeMarkup("", []byte("if a < b then c")) {
		t.Error("a lone comparison should not count as markup")
	}
}
