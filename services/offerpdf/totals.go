package offerpdf

import (
	"fmt"
	"strings"

	"lease_flow_app_go/models"
)

// Totals carries the per-offer monetary aggregates. Purchase, Margin and
// MarginPercent are only populated in internal mode.
type Totals struct {
	Monthly      float64
	OverDuration float64

	Internal      bool
	Purchase      float64
	Margin        float64
	MarginPercent float64
}

// LineMonthlyTotal returns the monthly payment of one equipment line across
// its full quantity
func LineMonthlyTotal(line models.EquipmentLine) float64 {
	return line.MonthlyPayment * float64(line.Quantity)
}

// Aggregate computes the offer totals: monthly sum, contract-duration
// projection and, in internal mode, purchase/margin figures. A zero total
// purchase yields a margin rate of 0, never a division fault.
func Aggregate(lines []models.EquipmentLine, durationMonths int, mode RenderMode) Totals {
	totals := Totals{Internal: mode == ModeInternal}

	for _, line := range lines {
		totals.Monthly += LineMonthlyTotal(line)

		if totals.Internal {
			if line.PurchasePrice != nil {
				totals.Purchase += *line.PurchasePrice * float64(line.Quantity)
			}
			if line.Margin != nil {
				totals.Margin += *line.Margin * float64(line.Quantity)
			}
		}
	}

	totals.OverDuration = totals.Monthly * float64(durationMonths)

	if totals.Internal && totals.Purchase != 0 {
		totals.MarginPercent = totals.Margin / totals.Purchase * 100
	}

	return totals
}

// FormatCurrency formats a monetary amount the French way: space-grouped
// thousands, comma decimals, two decimal places. The euro sign is routed
// through the sanitizer so the output is always font-renderable ("EUR").
func FormatCurrency(amount float64) string {
	return Sanitize(groupThousands(fmt.Sprintf("%.2f", amount)) + "€")
}

// FormatPercent formats a rate with one decimal place, e.g. "5,0 %"
func FormatPercent(rate float64) string {
	return strings.Replace(fmt.Sprintf("%.1f %%", rate), ".", ",", 1)
}

// groupThousands rewrites "1234567.89" as "1 234 567,89"
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(d)
	}
	if fracPart != "" {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}

	return b.String()
}
