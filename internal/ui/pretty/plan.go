package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/tmplpatch/pkg/patch"
)

const summaryDividerWidth = 40

// FormatPlanOneLine summarizes a plan on one line.
// Example: "2 removals, 1 style, 1 skipped".
func (s *Styles) FormatPlanOneLine(plan *patch.Plan) string {
	if plan == nil || len(plan.Removals)+len(plan.Insertions)+len(plan.Skipped) == 0 {
		return s.Success.Render("No changes") + "\n"
	}

	parts := []string{
		s.Removed.Render(plural(len(plan.Removals), "removal", "removals")),
		s.Inserted.Render(plural(len(plan.Insertions), "style", "styles")),
	}
	if len(plan.Skipped) > 0 {
		parts = append(parts, s.Skipped.Render(fmt.Sprintf("%d skipped", len(plan.Skipped))))
	}
	return strings.Join(parts, ", ") + "\n"
}

// FormatPlan explains a plan: each merged removal span, each style
// insertion with its original and remapped offset, and each skipped edit
// with its reason.
func (s *Styles) FormatPlan(plan *patch.Plan) string {
	var b strings.Builder

	b.WriteString(s.SummaryTitle.Render("Plan"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", summaryDividerWidth))
	b.WriteString("\n")

	if plan == nil {
		b.WriteString("  " + s.Dim.Render("nothing to do") + "\n")
		return b.String()
	}

	if len(plan.Removals) > 0 {
		b.WriteString("  Removals:\n")
		for _, r := range plan.Removals {
			b.WriteString("    " + s.Removed.Render(fmt.Sprintf("[%d, %d)", r.Start, r.End)) +
				s.Dim.Render(fmt.Sprintf("  %d bytes", r.Len())) + "\n")
		}
	}

	if len(plan.Insertions) > 0 {
		b.WriteString("  Styles:\n")
		for _, ins := range plan.Insertions {
			b.WriteString(fmt.Sprintf("    %s %s %s\n",
				s.ID.Render("#"+strconv.Itoa(ins.ID)),
				s.Offset.Render(fmt.Sprintf("@%d -> %d", ins.Original, ins.Offset)),
				s.Inserted.Render(strings.TrimSpace(ins.Text)),
			))
		}
	}

	if len(plan.Skipped) > 0 {
		b.WriteString("  Skipped:\n")
		for _, sk := range plan.Skipped {
			kind := "removal"
			if sk.Style {
				kind = "style"
			}
			b.WriteString(fmt.Sprintf("    %s %s %s\n",
				s.ID.Render("#"+strconv.Itoa(sk.ID)),
				s.Dim.Render(kind),
				s.Skipped.Render(sk.Reason.String()),
			))
		}
	}

	b.WriteString("\n")
	b.WriteString(s.FormatPlanOneLine(plan))
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}
