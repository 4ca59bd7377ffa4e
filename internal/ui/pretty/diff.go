package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/tmplpatch/pkg/splice"
)

// FormatDiff renders a unified diff with added and removed lines colored.
// A nil or empty diff renders as "".
func (s *Styles) FormatDiff(diff *splice.Diff) string {
	if !diff.HasChanges() {
		return ""
	}

	var b strings.Builder
	for _, line := range strings.SplitAfter(diff.String(), "\n") {
		if line == "" {
			continue
		}
		text := strings.TrimSuffix(line, "\n")
		b.WriteString(s.diffLine(text))
		b.WriteString("\n")
	}

	b.WriteString(s.Dim.Render(fmt.Sprintf("%d insertions(+), %d deletions(-)",
		diff.Additions, diff.Deletions)))
	b.WriteString("\n")
	return b.String()
}

func (s *Styles) diffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return s.DiffHeader.Render(line)
	case strings.HasPrefix(line, "@@"):
		return s.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+"):
		return s.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		return s.DiffRemove.Render(line)
	default:
		return s.DiffContext.Render(line)
	}
}
