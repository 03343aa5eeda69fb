package statement

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Column layout defaults.
const (
	defaultLabelWidth  = 30
	defaultAmountWidth = 8
	ellipsis           = "..."
	separatorRune      = "-"
	amountPlaces       = 2
)

// FormatLine formats label and amount with the default column widths.
func FormatLine(label string, amount decimal.Decimal) string {
	return formatLine(label, amount, defaultLabelWidth, defaultAmountWidth)
}

// formatLine renders a separator for a blank label; otherwise the label is
// padded or cut to labelWidth and the amount right-aligned in amountWidth.
func formatLine(label string, amount decimal.Decimal, labelWidth, amountWidth int) string {
	if strings.TrimSpace(label) == "" {
		return strings.Repeat(separatorRune, labelWidth+amountWidth)
	}
	return padRight(truncate(label, labelWidth), labelWidth) + formatAmount(amount, amountWidth)
}

func formatAmount(amount decimal.Decimal, width int) string {
	return padLeft(amount.StringFixed(amountPlaces), width)
}

// truncate cuts s to width runes, ending with an ellipsis when cut.
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	keep := width - len(ellipsis)
	if keep <= 0 {
		return string([]rune(s)[:width])
	}
	return string([]rune(s)[:keep]) + ellipsis
}

func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}
