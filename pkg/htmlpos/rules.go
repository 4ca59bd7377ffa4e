package htmlpos

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	voidElements = set(
		"area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "param", "source", "track", "wbr",
	)

	// blockStarters close an open <p>.
	blockStarters = set(
		"address", "article", "aside", "blockquote", "center", "details",
		"dialog", "dir", "div", "dl", "fieldset", "figcaption", "figure",
		"footer", "form", "h1", "h2", "h3", "h4", "h5", "h6", "header",
		"hgroup", "hr", "listing", "main", "menu", "nav", "ol", "p", "pre",
		"search", "section", "summary", "table", "ul", "xmp",
	)

	tableSections = set("thead", "tbody", "tfoot")
	tableCells    = set("td", "th")
	definitions   = set("dt", "dd")
	ruby          = set("rp", "rt")
	captionEnders = set("caption", "colgroup", "col", "thead", "tbody", "tfoot", "tr", "td", "th")
	headings      = set("h1", "h2", "h3", "h4", "h5", "h6")

	paragraphs = set("p")
	listItems  = set("li")
	options    = set("option")
	optgroups  = set("optgroup")
	colgroups  = set("colgroup")
	captions   = set("caption")
	rows       = set("tr")

	shellElements = set("html", "head", "body")

	// specialElements have scoping behavior in the HTML tree builder.
	specialElements = set(
		"address", "applet", "area", "article", "aside", "base", "basefont",
		"bgsound", "blockquote", "body", "br", "button", "caption", "center",
		"col", "colgroup", "dd", "details", "dir", "div", "dl", "dt", "embed",
		"fieldset", "figcaption", "figure", "footer", "form", "frame",
		"frameset", "h1", "h2", "h3", "h4", "h5", "h6", "head", "header",
		"hgroup", "hr", "html", "iframe", "img", "input", "keygen", "li",
		"link", "listing", "main", "marquee", "menu", "meta", "nav",
		"noembed", "noframes", "noscript", "object", "ol", "p", "param",
		"plaintext", "pre", "script", "search", "section", "select", "source",
		"style", "summary", "table", "tbody", "td", "template", "textarea",
		"tfoot", "th", "thead", "title", "tr", "track", "ul", "wbr", "xmp",
	)
	listPassable    = set("address", "div", "p")
	scopeBoundaries = set("applet", "caption", "html", "marquee", "object", "table", "td", "template", "th")
	tableBoundaries = set("html", "table", "template")
)

func set(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

func in(m map[string]struct{}, name string) bool {
	_, ok := m[name]
	return ok
}

// isVoid reports whether tag never has content or an end tag.
func isVoid(tag string) bool {
	return in(voidElements, tag)
}

// IsShell reports whether tag is one of the document shell elements a
// body fragment parse drops. Shell tags are skipped by Parse and their
// content attaches to the enclosing element.
func IsShell(tag string) bool {
	return in(shellElements, tag)
}

// closeRule names the open elements an incoming start tag ends and the
// open elements that stop the search for one.
type closeRule struct {
	targets map[string]struct{}
	barrier func(tag string) bool
}

func topOnly(string) bool { return true }

// listBarrier stops an li, dt or dd search at special elements other
// than address, div and p.
func listBarrier(tag string) bool {
	return in(specialElements, tag) && !in(listPassable, tag)
}

func buttonScope(tag string) bool {
	return in(scopeBoundaries, tag) || tag == "button"
}

func tableScope(tag string) bool {
	return in(tableBoundaries, tag)
}

// closeRules returns the rules applied, in order, before incoming opens.
func closeRules(incoming string) []closeRule {
	var rules []closeRule
	if incoming != "col" {
		rules = append(rules, closeRule{colgroups, topOnly})
	}

	switch {
	case incoming == "li":
		rules = append(rules, closeRule{listItems, listBarrier}, closeRule{paragraphs, buttonScope})
	case in(definitions, incoming):
		rules = append(rules, closeRule{definitions, listBarrier}, closeRule{paragraphs, buttonScope})
	case in(headings, incoming):
		rules = append(rules, closeRule{paragraphs, buttonScope}, closeRule{headings, topOnly})
	case in(blockStarters, incoming):
		rules = append(rules, closeRule{paragraphs, buttonScope})
	case incoming == "option":
		rules = append(rules, closeRule{options, topOnly})
	case incoming == "optgroup":
		rules = append(rules, closeRule{options, topOnly}, closeRule{optgroups, topOnly})
	case in(ruby, incoming):
		rules = append(rules, closeRule{ruby, topOnly})
	}

	if in(captionEnders, incoming) {
		rules = append(rules, closeRule{captions, tableScope})
	}
	switch {
	case in(tableCells, incoming):
		rules = append(rules, closeRule{tableCells, tableScope})
	case incoming == "tr":
		rules = append(rules, closeRule{tableCells, tableScope}, closeRule{rows, tableScope})
	case in(tableSections, incoming):
		rules = append(rules,
			closeRule{tableCells, tableScope},
			closeRule{rows, tableScope},
			closeRule{tableSections, tableScope},
		)
	}
	return rules
}
