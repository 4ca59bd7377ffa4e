// Package sniff guesses whether an input looks like markup before it is
// indexed. It uses go-enry for file-name and content based detection and a
// few fast byte patterns for template markup that the classifier does not
// know about.
package sniff

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language names returned by Detect.
const (
	LangHTML       = "html"
	LangXML        = "xml"
	LangFreeMarker = "freemarker"
	LangText       = "text"
)

// minTagCount is the number of tag-like sequences that marks plain content
// as markup.
const minTagCount = 2

//nolint:gochecknoglobals // Read-only lookup table.
var markupLanguages = map[string]bool{
	"html":        true,
	"xml":         true,
	"svg":         true,
	"xhtml":       true,
	"freemarker":  true,
	"html+django": true,
	"html+erb":    true,
	"html+php":    true,
	"handlebars":  true,
	"mustache":    true,
	"twig":        true,
	"vue":         true,
	"jinja":       true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"HTML", "XML", "FreeMarker", "Markdown", "JSON", "YAML",
	"JavaScript", "CSS", "Go", "Python", "Shell", "Text",
}

// Result describes a detected input.
type Result struct {
	// Language is the lower-cased language name, or "text".
	Language string

	// Markup reports whether the input is expected to index cleanly.
	Markup bool

	// Strategy names how the language was found.
	Strategy string
}

// Detect guesses the language of content. path may be empty or "-" for
// standard input.
func Detect(path string, content []byte) Result {
	if len(bytes.TrimSpace(content)) == 0 {
		return Result{Language: LangText, Strategy: "empty"}
	}

	if path != "" && path != "-" {
		if lang := byExtension(filepath.Base(path)); lang != "" {
			return result(lang, "extension")
		}
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return result(lang, "shebang")
	}

	if lang := detectByPattern(content); lang != "" {
		return result(lang, "pattern")
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return result(lang, "classifier")
	}

	return Result{Language: LangText, Strategy: "fallback"}
}

// LooksLikeMarkup is shorthand for Detect(path, content).Markup.
func LooksLikeMarkup(path string, content []byte) bool {
	return Detect(path, content).Markup
}

// byExtension picks a language for name. Extensions shared by several
// languages resolve to the first markup language among them.
func byExtension(name string) string {
	langs := enry.GetLanguagesByExtension(name, nil, nil)
	switch len(langs) {
	case 0:
		return ""
	case 1:
		return langs[0]
	}
	for _, lang := range langs {
		if markupLanguages[normalize(lang)] {
			return lang
		}
	}
	return ""
}

func result(lang, strategy string) Result {
	name := normalize(lang)
	return Result{Language: name, Markup: markupLanguages[name], Strategy: strategy}
}

func detectByPattern(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	lower := bytes.ToLower(trimmed)

	switch {
	case bytes.HasPrefix(lower, []byte("<?xml")):
		return LangXML
	case bytes.Contains(lower, []byte("<!doctype html")),
		bytes.Contains(lower, []byte("<html")),
		bytes.Contains(lower, []byte("<body")):
		return LangHTML
	case bytes.Contains(trimmed, []byte("<#")), bytes.Contains(trimmed, []byte("</#")):
		return LangFreeMarker
	case countTags(trimmed) >= minTagCount:
		return LangHTML
	}
	return ""
}

// countTags counts "<" followed by a letter or "/", stopping at minTagCount.
func countTags(content []byte) int {
	count := 0
	for i := 0; i+1 < len(content) && count < minTagCount; i++ {
		if content[i] != '<' {
			continue
		}
		next := content[i+1]
		if next == '/' || (next|0x20 >= 'a' && next|0x20 <= 'z') {
			count++
		}
	}
	return count
}

func normalize(lang string) string {
	return strings.ToLower(lang)
}
