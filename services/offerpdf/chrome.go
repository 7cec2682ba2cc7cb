package offerpdf

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"lease_flow_app_go/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/microcosm-cc/bluemonday"
)

// renderChromePDF prints the offer HTML through headless Chrome. This is the
// rich typography tier; it is selected by configuration and is not the
// deterministic path. The caller's context bounds the whole browser session,
// so an aborted request discards the in-flight render.
func renderChromePDF(ctx context.Context, htmlContent string, chromePath string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)

	// Custom Chrome path (headless-shell in Docker)
	if chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var pdfBuf []byte

	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		// Wait for content to render
		chromedp.Sleep(100*time.Millisecond),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// A4 in inches
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.8).
				WithMarginBottom(0.8).
				WithMarginLeft(0.6).
				WithMarginRight(0.6).
				WithPrintBackground(true).
				WithDisplayHeaderFooter(false).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}

// buildOfferHTML assembles the print HTML for the chrome tier. All dynamic
// values are escaped; the free-text additional terms go through the UGC
// policy since they may carry markup pasted by operators.
func buildOfferHTML(offer *models.Offer, totals Totals, mode RenderMode, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Helvetica, Arial, sans-serif; font-size: 11pt; color: #212121; }
        h1 { font-size: 19pt; color: #1A5276; margin-bottom: 4pt; }
        h2 { font-size: 13pt; color: #1A5276; border-bottom: 1px solid #1A5276; padding-bottom: 2pt; }
        .muted { color: #6E6E6E; }
        .alert { color: #922B21; font-weight: bold; }
        .line { margin-bottom: 8pt; }
        .line ul { margin: 2pt 0 0 18pt; font-size: 9pt; }
        .totals { margin-top: 10pt; border-top: 1px solid #1A5276; padding-top: 6pt; }
        footer { margin-top: 18pt; font-size: 8pt; color: #6E6E6E; }
    </style>
</head>
<body>
`)

	b.WriteString("<h1>OFFRE DE LOCATION</h1>\n")
	if mode == ModeInternal {
		b.WriteString(`<p class="alert">DOCUMENT INTERNE - CONFIDENTIEL</p>` + "\n")
	}

	fmt.Fprintf(&b, "<p><strong>%s</strong><br>Offre n° %s - %s</p>\n",
		html.EscapeString(offer.Company.Name), offer.Reference(), offer.CreatedAt.Format("02/01/2006"))

	b.WriteString("<h2>Client</h2>\n")
	fmt.Fprintf(&b, "<p>%s", html.EscapeString(offer.Client.Name))
	if offer.Client.CompanyName != nil && *offer.Client.CompanyName != "" {
		fmt.Fprintf(&b, "<br>Société : %s", html.EscapeString(*offer.Client.CompanyName))
	}
	b.WriteString("</p>\n")

	b.WriteString("<h2>Équipements</h2>\n")
	for _, line := range offer.Equipment {
		fmt.Fprintf(&b, `<div class="line"><strong>%s</strong><br>%d x %s / mois - soit %s / mois`,
			html.EscapeString(line.Title), line.Quantity,
			html.EscapeString(FormatCurrency(line.MonthlyPayment)), html.EscapeString(FormatCurrency(LineMonthlyTotal(line))))
		if line.PurchasePrice != nil || line.Margin != nil {
			fmt.Fprintf(&b, `<br><span class="muted">Prix d'achat unitaire : %s - Marge unitaire : %s</span>`,
				html.EscapeString(currencyOr(line.PurchasePrice)), html.EscapeString(currencyOr(line.Margin)))
		}
		if len(line.Attributes) > 0 || len(line.Specifications) > 0 {
			b.WriteString("<ul>")
			for _, attr := range line.Attributes {
				fmt.Fprintf(&b, "<li>%s : %s</li>", html.EscapeString(attr.Key), html.EscapeString(attr.Value))
			}
			for _, spec := range line.Specifications {
				fmt.Fprintf(&b, "<li>%s : %s</li>", html.EscapeString(spec.Key), html.EscapeString(spec.Value))
			}
			b.WriteString("</ul>")
		}
		b.WriteString("</div>\n")
	}

	b.WriteString(`<div class="totals">` + "\n")
	fmt.Fprintf(&b, "<p><strong>Loyer mensuel total : %s</strong>", html.EscapeString(FormatCurrency(totals.Monthly)))
	if offer.DurationMonths != nil {
		fmt.Fprintf(&b, "<br>Engagement total sur %d mois : %s", *offer.DurationMonths, html.EscapeString(FormatCurrency(totals.OverDuration)))
	}
	b.WriteString("</p>\n")
	if totals.Internal {
		fmt.Fprintf(&b, `<p class="muted">Total prix d'achat : %s<br>Marge totale : %s<br>Taux de marge : %s</p>`+"\n",
			html.EscapeString(FormatCurrency(totals.Purchase)), html.EscapeString(FormatCurrency(totals.Margin)),
			html.EscapeString(FormatPercent(totals.MarginPercent)))
	}
	b.WriteString("</div>\n")

	if offer.AdditionalTerms != nil && strings.TrimSpace(*offer.AdditionalTerms) != "" {
		b.WriteString("<h2>Conditions particulières</h2>\n")
		b.WriteString(bluemonday.UGCPolicy().Sanitize(*offer.AdditionalTerms))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "<footer>Document généré le %s</footer>\n", generatedAt.Format("02/01/2006 15:04"))
	b.WriteString("</body>\n</html>\n")

	return b.String()
}
