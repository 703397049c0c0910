package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/go-theft-auto/grid"
)

// CharWidth is how many grid pixels one terminal cell stands for.
const CharWidth = 8

// cellChars converts a column width to terminal cells, at least 2 so every
// column keeps a separator and one character.
func cellChars(px int) int {
	return max(2, px/CharWidth)
}

// cell fits text into w cells followed by a separator.
func cell(text string, w int) string {
	text = ansi.Truncate(text, w-1, "…")
	return text + strings.Repeat(" ", max(0, w-1-ansi.StringWidth(text))) + "│"
}

// cut returns n cells of s starting at cell off, padded with spaces.
func cut(s string, off, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	off = min(max(0, off), len(r))
	end := min(len(r), off+n)
	out := string(r[off:end])
	return out + strings.Repeat(" ", n-(end-off))
}

// band is one line split into its three regions, as plain text.
type band struct {
	left, center, right string
}

// layoutBand renders one line of cells. texts maps a field to its text.
// The center region scrolls by scrollLeft pixels; frozen regions never do.
// If the frozen columns alone are wider than the terminal, the center region
// gets no space.
func layoutBand(groups grid.ColumnGroups, widths grid.WidthMap, texts func(grid.Column) string, scrollLeft float64, width int) band {
	join := func(cols []grid.Column) string {
		var b strings.Builder
		for _, col := range cols {
			b.WriteString(cell(texts(col), cellChars(widths[col.Field])))
		}
		return b.String()
	}

	var out band
	out.left = join(groups.LeftFrozen)
	out.right = join(groups.RightFrozen)
	avail := width - len([]rune(out.left)) - len([]rune(out.right))
	out.center = cut(join(groups.Center), int(scrollLeft)/CharWidth, avail)
	return out
}
