package grid

import (
	"fmt"
	"math"
	"sort"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CellValue returns the display text of column's cell in row: the
// formatter's output when one is configured, otherwise the value's default
// string form, or "" for an absent value.
func CellValue(row Row, column Column) string {
	value := row[column.Field]
	if column.Formatter != nil {
		return column.Formatter.Format(value, row)
	}
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

var displayTag = language.AmericanEnglish

// Built-in formatters, addressable by name from column configuration.
var namedFormatters = map[string]Formatter{
	"currency": FormatterFunc(formatCurrency),
	"number":   FormatterFunc(formatNumber),
	"date":     FormatterFunc(formatDate),
	"upper":    FormatterFunc(formatUpper),
}

// NamedFormatter returns the built-in formatter called name.
func NamedFormatter(name string) (Formatter, bool) {
	f, ok := namedFormatters[name]
	return f, ok
}

// FormatterNames lists the built-in formatter names, sorted.
func FormatterNames() []string {
	names := make([]string, 0, len(namedFormatters))
	for name := range namedFormatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// formatCurrency renders "$" and the grouped number, e.g. "$125,000".
func formatCurrency(value any, _ Row) string {
	if value == nil {
		return "$"
	}
	return "$" + formatNumber(value, nil)
}

// formatNumber groups digits by thousands. Non-numeric values print as-is.
func formatNumber(value any, _ Row) string {
	if value == nil {
		return ""
	}
	f, ok := toFloat(value)
	if !ok {
		return fmt.Sprint(value)
	}
	p := message.NewPrinter(displayTag)
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return p.Sprintf("%d", int64(f))
	}
	return p.Sprintf("%.2f", f)
}

// formatDate renders a date the way en-US short dates look: 1/2/2006.
// Strings are parsed as RFC 3339 or plain dates first.
func formatDate(value any, _ Row) string {
	switch v := value.(type) {
	case time.Time:
		return v.Format("1/2/2006")
	case string:
		for _, layout := range []string{time.RFC3339, time.DateOnly} {
			if t, err := time.Parse(layout, v); err == nil {
				return t.Format("1/2/2006")
			}
		}
		return "Invalid Date"
	case nil:
		return ""
	}
	return fmt.Sprint(value)
}

func formatUpper(value any, _ Row) string {
	if value == nil {
		return ""
	}
	return cases.Upper(displayTag).String(fmt.Sprint(value))
}
