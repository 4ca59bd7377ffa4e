// Package preview renders resolved markup for display and maps between
// rendered elements and the source elements they came from.
package preview

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/tdewolff/minify/v2"
	mhtml "github.com/tdewolff/minify/v2/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yaklabco/tmplpatch/pkg/htmlpos"
)

const (
	// AttrNodeID carries the preview index of a rendered element: the
	// pre-order position of the source element it came from.
	AttrNodeID = "data-node-id"
	// AttrTagName carries the lowercase tag name of a rendered element.
	AttrTagName = "data-tag-name"

	mediaType = "text/html"

	// attrSource marks source start tags before parsing so elements the
	// parser synthesizes or clones can be told apart.
	attrSource = "data-tmplpatch-src"
)

// Options configures BuildMarkup.
type Options struct {
	// Minify compacts the tagged markup. Data attributes are kept.
	Minify bool
}

//nolint:gochecknoglobals // Lazily built, shared minifier.
var (
	minifier     *minify.M
	minifierOnce sync.Once
)

func getMinifier() *minify.M {
	minifierOnce.Do(func() {
		minifier = minify.New()
		minifier.AddFunc(mediaType, mhtml.Minify)
	})
	return minifier
}

// BuildMarkup renders resolved markup with every source element tagged by
// its preview index and tag name.
func BuildMarkup(resolved string) string {
	return Options{}.BuildMarkup(resolved)
}

// BuildMarkup parses resolved as a body fragment, adds AttrNodeID and
// AttrTagName to each element written in resolved and serializes the
// result. Elements the parser adds while repairing structure, such as an
// implied tbody or a reopened formatting element, are left untagged, and
// html, head and body tags are dropped. The parser may also normalize
// whitespace, so the output is for display only. It never fails:
// unparseable input is returned escaped inside a <pre> element.
func (o Options) BuildMarkup(resolved string) string {
	out, err := tag(resolved)
	if err != nil {
		return fallback(resolved)
	}
	if o.Minify {
		if small, err := getMinifier().String(mediaType, out); err == nil {
			return small
		}
	}
	return out
}

func tag(resolved string) (string, error) {
	marked, err := markSource(resolved)
	if err != nil {
		return "", err
	}
	nodes, err := parseBody(marked)
	if err != nil {
		return "", err
	}

	seen := make(map[string]bool)
	for _, n := range nodes {
		walkElements(n, func(el *html.Node) {
			index, ok := takeAttr(el, attrSource)
			if !ok || seen[index] {
				return
			}
			seen[index] = true
			el.Attr = append(el.Attr,
				html.Attribute{Key: AttrNodeID, Val: index},
				html.Attribute{Key: AttrTagName, Val: strings.ToLower(el.Data)},
			)
		})
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// markSource numbers the start tags of markup in source order, skipping
// the shell tags the position indexer skips, so the numbers line up with
// element records.
func markSource(markup string) (string, error) {
	z := html.NewTokenizer(strings.NewReader(markup))

	var out strings.Builder
	out.Grow(len(markup))
	offset, last, next := 0, 0, 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", err
			}
			break
		}

		start := offset
		offset += len(z.Raw())
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		name, _ := z.TagName()
		if htmlpos.IsShell(string(name)) {
			continue
		}

		at := start + 1 + len(name)
		out.WriteString(markup[last:at])
		out.WriteString(" " + attrSource + `="` + strconv.Itoa(next) + `"`)
		last = at
		next++
	}
	out.WriteString(markup[last:])
	return out.String(), nil
}

func parseBody(markup string) ([]*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	return html.ParseFragmentWithOptions(strings.NewReader(markup), body, html.ParseOptionEnableScripting(false))
}

// takeAttr removes attribute key from n and returns its value.
func takeAttr(n *html.Node, key string) (string, bool) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr = slices.Delete(n.Attr, i, i+1)
			return a.Val, true
		}
	}
	return "", false
}

func walkElements(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkElements(c, fn)
	}
}

func fallback(resolved string) string {
	return "<pre>" + html.EscapeString(resolved) + "</pre>"
}
