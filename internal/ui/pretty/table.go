package pretty

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/tmplpatch/pkg/directive"
	"github.com/yaklabco/tmplpatch/pkg/htmlpos"
	"github.com/yaklabco/tmplpatch/pkg/placeholder"
)

// Table formatting constants.
const (
	tablePadding    = 2
	minIDWidth      = 3
	minTagWidth     = 8
	minOffsetWidth  = 5
	minSnippetWidth = 20
	heavySeparator  = "="
	lightSeparator  = "-"
	removedSymbol   = "x"
	styledSymbol    = "*"
)

// RecordMarks flags records that an edit set touches.
type RecordMarks struct {
	Removed map[int]bool
	Styled  map[int]bool
}

// TableFormatter formats records and placeholders as styled tables.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

type recordWidths struct {
	id      int
	tag     int
	offset  int
	snippet int
}

// FormatRecords renders one row per record: id, tag, start, end, the
// opening tag end and a one-line snippet of the element's source.
func (t *TableFormatter) FormatRecords(source string, records []htmlpos.Record, marks RecordMarks) string {
	if len(records) == 0 {
		return ""
	}

	widths := t.recordWidths(records)

	var b strings.Builder
	b.WriteString(t.styles.TableHeader.Render(fmt.Sprintf(" %-*s  %-*s  %*s  %*s  %*s  %-*s",
		widths.id, "ID",
		widths.tag, "TAG",
		widths.offset, "START",
		widths.offset, "END",
		widths.offset, "OPEN",
		widths.snippet, "SOURCE",
	)))
	b.WriteString("\n")
	b.WriteString(t.separator(widths.total(), heavySeparator))
	b.WriteString("\n")

	for _, rec := range records {
		b.WriteString(t.recordRow(source, rec, widths, marks))
		b.WriteString("\n")
	}

	b.WriteString(t.separator(widths.total(), heavySeparator))
	b.WriteString("\n")
	if len(marks.Removed) > 0 || len(marks.Styled) > 0 {
		b.WriteString(t.styles.TableLegend.Render(fmt.Sprintf(" Legend: %s = removed  %s = styled",
			t.styles.Removed.Render(removedSymbol), t.styles.Inserted.Render(styledSymbol))))
		b.WriteString("\n")
	}
	return b.String()
}

func (w recordWidths) total() int {
	const columns = 6
	return w.id + w.tag + 3*w.offset + w.snippet + tablePadding*(columns-1) + 1
}

func (t *TableFormatter) recordWidths(records []htmlpos.Record) recordWidths {
	widths := recordWidths{id: minIDWidth, tag: minTagWidth, offset: minOffsetWidth}
	for _, rec := range records {
		widths.id = max(widths.id, len(strconv.Itoa(rec.ID))+1)
		widths.tag = max(widths.tag, len(rec.TagName))
		widths.offset = max(widths.offset, len(strconv.Itoa(rec.EndOffset)))
	}
	fixed := widths.total()
	widths.snippet = max(minSnippetWidth, t.termWidth-fixed)
	return widths
}

func (t *TableFormatter) recordRow(source string, rec htmlpos.Record, widths recordWidths, marks RecordMarks) string {
	mark := " "
	style := lipgloss.NewStyle()
	switch {
	case marks.Removed[rec.ID]:
		mark = removedSymbol
		style = t.styles.Removed
	case marks.Styled[rec.ID]:
		mark = styledSymbol
		style = t.styles.Inserted
	}

	id := fmt.Sprintf("%s%-*d", mark, widths.id-1, rec.ID)
	return " " + style.Render(id) + "  " +
		t.styles.TagName.Render(fmt.Sprintf("%-*s", widths.tag, rec.TagName)) + "  " +
		t.styles.Offset.Render(fmt.Sprintf("%*d  %*d  %*d",
			widths.offset, rec.StartOffset,
			widths.offset, rec.EndOffset,
			widths.offset, rec.OpenTagEndOffset)) + "  " +
		t.styles.Snippet.Render(truncateString(Snippet(source, rec), widths.snippet))
}

// FormatNames renders placeholder occurrences and directive tags ordered
// by offset.
func (t *TableFormatter) FormatNames(matches []placeholder.Match, tags []directive.Tag) string {
	type row struct {
		start, end int
		kind, text string
		style      lipgloss.Style
	}

	rows := make([]row, 0, len(matches)+len(tags))
	for _, m := range matches {
		rows = append(rows, row{m.Start, m.End, m.Syntax.String(), m.Name, t.styles.Name})
	}
	for _, tag := range tags {
		rows = append(rows, row{tag.Start, tag.End, "directive", tag.Raw, t.styles.Directive})
	}
	if len(rows) == 0 {
		return ""
	}
	slices.SortStableFunc(rows, func(a, b row) int { return cmp.Compare(a.start, b.start) })

	offsetWidth := minOffsetWidth
	for _, r := range rows {
		offsetWidth = max(offsetWidth, len(strconv.Itoa(r.end)))
	}
	const kindWidth = 9
	textWidth := max(minSnippetWidth, t.termWidth-2*offsetWidth-kindWidth-4*tablePadding)
	total := 2*offsetWidth + kindWidth + textWidth + 3*tablePadding + 1

	var b strings.Builder
	b.WriteString(t.styles.TableHeader.Render(fmt.Sprintf(" %*s  %*s  %-*s  %s",
		offsetWidth, "START", offsetWidth, "END", kindWidth, "KIND", "NAME")))
	b.WriteString("\n")
	b.WriteString(t.separator(total, lightSeparator))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(" " + t.styles.Offset.Render(fmt.Sprintf("%*d  %*d", offsetWidth, r.start, offsetWidth, r.end)))
		b.WriteString("  " + t.styles.Dim.Render(fmt.Sprintf("%-*s", kindWidth, r.kind)) + "  ")
		b.WriteString(r.style.Render(truncateString(r.text, textWidth)))
		b.WriteString("\n")
	}
	return b.String()
}

func (t *TableFormatter) separator(width int, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, width))
}

// Snippet returns the element's source on one line, whitespace collapsed.
func Snippet(source string, rec htmlpos.Record) string {
	if rec.StartOffset < 0 || rec.EndOffset > len(source) || rec.StartOffset > rec.EndOffset {
		return ""
	}
	return strings.Join(strings.Fields(source[rec.StartOffset:rec.EndOffset]), " ")
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}
