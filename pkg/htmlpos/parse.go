package htmlpos

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ErrUnparseable is returned when the source cannot be tokenized.
var ErrUnparseable = errors.New("markup could not be parsed")

// Options configures parsing.
type Options struct {
	// MaxBuf caps the tokenizer buffer, and therefore the size of a single
	// token, in bytes. Zero means unlimited.
	MaxBuf int
}

// Parse builds a positioned tree of source with default options.
func Parse(source string) (*Node, error) {
	return Options{}.Parse(source)
}

// Parse builds a positioned tree of source.
//
// Offsets are tracked from the raw bytes of each token, so they always
// point into source itself. Elements missing their end tag are closed by
// the HTML implied end tag rules, or at the end of input. End tags with no
// open element of the same name are ignored. The html, head and body tags
// are skipped, as in a body fragment parse.
func (o Options) Parse(source string) (*Node, error) {
	z := html.NewTokenizer(strings.NewReader(source))
	if o.MaxBuf > 0 {
		z.SetMaxBuf(o.MaxBuf)
	}

	b := newBuilder(len(source))
	offset := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: at byte %d: %w", ErrUnparseable, offset, err)
			}
			break
		}

		start := offset
		offset += len(z.Raw())

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			name, attrs := tagOf(z)
			b.start(name, attrs, start, offset, tt == html.SelfClosingTagToken)
		case html.EndTagToken:
			name, _ := z.TagName()
			b.end(string(name), start, offset)
		case html.TextToken:
			b.leaf(KindText, source[start:offset], start, offset)
		case html.CommentToken:
			b.leaf(KindComment, source[start:offset], start, offset)
		}
	}

	return b.finish(), nil
}

func tagOf(z *html.Tokenizer) (string, []html.Attribute) {
	name, more := z.TagName()
	var attrs []html.Attribute
	for more {
		var key, val []byte
		key, val, more = z.TagAttr()
		attrs = append(attrs, html.Attribute{Key: string(key), Val: string(val)})
	}
	return string(name), attrs
}

// builder assembles the element tree from a token stream.
type builder struct {
	root  *Node
	stack []*Node
	size  int
}

func newBuilder(size int) *builder {
	root := &Node{Kind: KindDocument, End: size}
	return &builder{root: root, stack: []*Node{root}, size: size}
}

func (b *builder) top() *Node {
	return b.stack[len(b.stack)-1]
}

func (b *builder) attach(n *Node) {
	parent := b.top()
	n.Parent = parent
	parent.Children = append(parent.Children, n)
}

// pop closes the innermost open element at offset.
func (b *builder) pop(offset int, implied bool) {
	n := b.top()
	n.End = offset
	n.Implied = implied
	b.stack = b.stack[:len(b.stack)-1]
}

// open returns the stack index of the innermost element rule ends, or -1
// when a barrier or the root is reached first.
func (b *builder) open(rule closeRule) int {
	for i := len(b.stack) - 1; i > 0; i-- {
		tag := b.stack[i].Tag
		if in(rule.targets, tag) {
			return i
		}
		if rule.barrier(tag) {
			return -1
		}
	}
	return -1
}

// popThrough closes the element at stack index i and everything above it.
func (b *builder) popThrough(i, offset int) {
	for len(b.stack) > i {
		b.pop(offset, true)
	}
}

func (b *builder) start(name string, attrs []html.Attribute, start, end int, selfClosing bool) {
	if IsShell(name) {
		return
	}
	for _, rule := range closeRules(name) {
		if i := b.open(rule); i > 0 {
			b.popThrough(i, start)
		}
	}

	n := &Node{
		Kind:       KindElement,
		Tag:        name,
		Attrs:      attrs,
		Start:      start,
		End:        end,
		OpenTagEnd: end - 1,
	}
	b.attach(n)

	if selfClosing || isVoid(name) {
		n.SelfClosing = true
		return
	}
	b.stack = append(b.stack, n)
}

func (b *builder) end(name string, start, end int) {
	if IsShell(name) {
		return
	}
	match := -1
	for i := len(b.stack) - 1; i > 0; i-- {
		if b.stack[i].Tag == name {
			match = i
			break
		}
	}
	if match < 0 {
		return
	}
	for len(b.stack)-1 > match {
		b.pop(start, true)
	}
	b.pop(end, false)
}

func (b *builder) leaf(kind Kind, data string, start, end int) {
	b.attach(&Node{Kind: kind, Data: data, Start: start, End: end, OpenTagEnd: -1})
}

func (b *builder) finish() *Node {
	for len(b.stack) > 1 {
		b.pop(b.size, true)
	}
	return b.root
}
