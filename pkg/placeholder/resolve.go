// Package placeholder substitutes and enumerates template placeholders.
//
// Two syntaxes are recognized:
//
//	{{name}}       a bare word-character identifier
//	${path.to.x}   an expression, usually a dotted path, optionally
//	               followed by a conditional suffix such as ?has_content
//
// Substitution is total: placeholders without a value are left verbatim,
// delimiters included, so a partially filled template stays recognizable.
package placeholder

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultSuffix is the conditional suffix stripped from path expressions.
const DefaultSuffix = "?has_content"

//nolint:gochecknoglobals // Compiled once, read-only.
var (
	simplePattern = regexp.MustCompile(`\{\{(\w+)\}\}`)
	pathPattern   = regexp.MustCompile(`\$\{([^}]+)\}`)
)

// Resolver substitutes placeholders. The zero value is not usable; call
// NewResolver.
type Resolver struct {
	suffix string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithSuffix sets the conditional suffix stripped from the end of path
// expressions. An empty suffix disables stripping.
func WithSuffix(suffix string) Option {
	return func(r *Resolver) {
		r.suffix = suffix
	}
}

// NewResolver returns a Resolver using DefaultSuffix unless overridden.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{suffix: DefaultSuffix}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

//nolint:gochecknoglobals // Stateless default instance.
var defaultResolver = NewResolver()

// Resolve substitutes placeholders in source using the default resolver.
func Resolve(source string, data Data) string {
	return defaultResolver.Resolve(source, data)
}

// CollectNames lists the names referenced by source using the default
// resolver.
func CollectNames(source string) []string {
	return defaultResolver.CollectNames(source)
}

// Resolve replaces every placeholder with the string form of its value.
// Simple placeholders are looked up as flat keys. Path expressions are
// looked up as a flat key first, then by dotted traversal. Unresolved
// placeholders are kept as written.
func (r *Resolver) Resolve(source string, data Data) string {
	out := simplePattern.ReplaceAllStringFunc(source, func(match string) string {
		key := match[2 : len(match)-2]
		if s, ok := format(data[key]); ok {
			return s
		}
		return match
	})

	return pathPattern.ReplaceAllStringFunc(out, func(match string) string {
		path := r.normalize(match[2 : len(match)-1])
		value, ok := data[path]
		if !ok {
			value, _ = data.Lookup(path)
		}
		if s, ok := format(value); ok {
			return s
		}
		return match
	})
}

// CollectNames returns every distinct name referenced by source: simple
// names in first-seen order, followed by path expressions (suffix
// stripped) in first-seen order.
func (r *Resolver) CollectNames(source string) []string {
	var names []string
	seen := make(map[string]struct{})
	add := func(name string) {
		if name == "" {
			return
		}
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	for _, m := range simplePattern.FindAllStringSubmatch(source, -1) {
		add(m[1])
	}
	for _, m := range pathPattern.FindAllStringSubmatch(source, -1) {
		add(r.normalize(m[1]))
	}
	return names
}

// normalize strips the conditional suffix and surrounding whitespace.
func (r *Resolver) normalize(expr string) string {
	if r.suffix != "" {
		expr = strings.TrimSuffix(expr, r.suffix)
	}
	return strings.TrimSpace(expr)
}

// format renders a primitive value. Nil and container values have no
// string form.
func format(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case uint64:
		return strconv.FormatUint(val, 10), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}
