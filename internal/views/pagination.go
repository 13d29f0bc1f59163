package views

import (
	"strconv"
	"strings"

	"github.com/bitdesk/bitdesk/pkg/pager"
)

// renderPager draws the page strip: previous marker, the visible window
// with ellipses, next marker. Mirrors the pager window rules exactly.
func renderPager(current, totalPages, window int) string {
	if totalPages <= 1 {
		return ""
	}

	var b strings.Builder
	if current > 1 {
		b.WriteString("‹ ")
	} else {
		b.WriteString(dimStyle.Render("‹ "))
	}
	for _, p := range pager.Visible(current, totalPages, window) {
		if p == pager.Ellipsis {
			b.WriteString(dimStyle.Render("… "))
			continue
		}
		label := strconv.Itoa(p)
		if p == current {
			b.WriteString(cursorStyle.Render("[" + label + "]"))
			b.WriteString(" ")
		} else {
			b.WriteString(label + " ")
		}
	}
	if current < totalPages {
		b.WriteString("›")
	} else {
		b.WriteString(dimStyle.Render("›"))
	}
	return b.String()
}
