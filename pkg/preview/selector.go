package preview

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

//nolint:gochecknoglobals // Compiled once, read-only.
var (
	idAttrPattern    = regexp.MustCompile(`(?i)\bid\s*=\s*["']([^"']+)["']`)
	classAttrPattern = regexp.MustCompile(`(?i)\bclass\s*=\s*["']([^"']+)["']`)
	spacePattern     = regexp.MustCompile(`\s+`)
)

// SelectorFromCode derives a CSS selector from a selected snippet of
// source. An id attribute gives "#id"; otherwise the first class of a
// class attribute gives ".class" when it is longer than one character.
func SelectorFromCode(code string) (string, bool) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "", false
	}
	if m := idAttrPattern.FindStringSubmatch(trimmed); m != nil {
		return "#" + spacePattern.ReplaceAllString(m[1], ""), true
	}
	if m := classAttrPattern.FindStringSubmatch(trimmed); m != nil {
		if fields := strings.Fields(m[1]); len(fields) > 0 && len(fields[0]) > 1 {
			return "." + fields[0], true
		}
	}
	return "", false
}

// MatchIndex finds the first tagged element of markup matching a "#id" or
// ".class" selector and returns its preview index. Other selector forms
// never match.
func MatchIndex(markup, selector string) (int, bool) {
	match, ok := matcher(selector)
	if !ok {
		return -1, false
	}

	nodes, err := parseBody(markup)
	if err != nil {
		return -1, false
	}

	for _, n := range nodes {
		if idx, found := firstMatch(n, match); found {
			return idx, true
		}
	}
	return -1, false
}

func matcher(selector string) (func(*html.Node) bool, bool) {
	if len(selector) < 2 {
		return nil, false
	}
	name := selector[1:]
	switch selector[0] {
	case '#':
		return func(n *html.Node) bool {
			return attr(n, "id") == name
		}, true
	case '.':
		return func(n *html.Node) bool {
			return slices.Contains(strings.Fields(attr(n, "class")), name)
		}, true
	default:
		return nil, false
	}
}

func firstMatch(n *html.Node, match func(*html.Node) bool) (int, bool) {
	if n.Type == html.ElementNode && match(n) {
		if idx, err := strconv.Atoi(attr(n, AttrNodeID)); err == nil {
			return idx, true
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if idx, ok := firstMatch(c, match); ok {
			return idx, true
		}
	}
	return -1, false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
