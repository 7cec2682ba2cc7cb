package offerpdf

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"lease_flow_app_go/models"
)

// Placeholder rendered for missing optional fields so the document is always
// complete and presentable
const Placeholder = "Non renseigné"

// Typography
const (
	titleSize   = 20.0
	headerSize  = 13.0
	bodySize    = 10.0
	lineSize    = 11.0
	detailSize  = 9.0
	footerSize  = 8.0

	titleHeight  = 30.0
	headerHeight = 22.0
	bodyHeight   = 15.0
	lineHeight   = 17.0
	detailHeight = 12.0

	// A section header never starts on a page with less room than this
	sectionMinHeight = 120.0
	// The totals block gets a fresh page when less than this remains
	totalsMinHeight = 200.0

	// Free text is wrapped at this many characters per line
	wrapWidth = 95
)

// Colors
var (
	colorPrimary = [3]int{26, 82, 118}   // dark blue headers
	colorText    = [3]int{33, 33, 33}    // body text
	colorMuted   = [3]int{110, 110, 110} // secondary figures, footer
	colorAlert   = [3]int{146, 43, 33}   // confidential banner
)

// Render stages. Each is entered exactly once, in order; Terms is terminal.
type stage int

const (
	stageCover stage = iota
	stageEquipment
	stageTerms
	stageDone
)

type builder struct {
	layout *Layout
	offer  *models.Offer
	totals Totals
	mode   RenderMode
	stage  stage
}

// BuildDocument turns a fully resolved offer into a laid-out document:
// redaction first, then aggregation, then the three sections in strict order,
// and finally the shared footer once the page count is known.
func BuildDocument(offer *models.Offer, mode RenderMode, generatedAt time.Time) (*Document, Totals) {
	working := Redact(offer, mode)
	ScanOffer(working)

	duration := 0
	if working.DurationMonths != nil {
		duration = *working.DurationMonths
	}
	totals := Aggregate(working.Equipment, duration, mode)

	b := &builder{
		layout: NewLayout(),
		offer:  working,
		totals: totals,
		mode:   mode,
	}

	b.cover()
	b.equipmentAndFinancials()
	b.terms()

	addFooters(&b.layout.Doc, generatedAt, mode)

	return &b.layout.Doc, totals
}

func (b *builder) advance(from, to stage) {
	// Section ordering is a structural invariant of this builder; the three
	// section methods are called once each from BuildDocument.
	if b.stage != from {
		panic(fmt.Sprintf("offerpdf: section entered out of order (stage %d, want %d)", b.stage, from))
	}
	b.stage = to
}

func (b *builder) cover() {
	b.advance(stageCover, stageEquipment)
	l := b.layout

	title := "OFFRE DE LOCATION"
	l.Add(block(title, LeftMargin, titleSize, true, titleHeight, 0, colorPrimary))
	if b.mode == ModeInternal {
		l.Add(block("DOCUMENT INTERNE - CONFIDENTIEL", LeftMargin, bodySize, true, bodyHeight, 6, colorAlert))
	} else {
		l.Skip(6)
	}

	l.Add(block(b.offer.Company.Name, LeftMargin, lineSize, true, lineHeight, 0, colorText))
	contact := strings.TrimSpace(strOr(b.offer.Company.Email, "") + "  " + strOr(b.offer.Company.Phone, ""))
	if contact != "" {
		l.Add(block(contact, LeftMargin, bodySize, false, bodyHeight, 0, colorMuted))
	}
	l.Skip(8)
	l.Rule(14, colorPrimary[0], colorPrimary[1], colorPrimary[2])

	l.Add(block("Offre n° "+b.offer.Reference(), LeftMargin, lineSize, true, lineHeight, 0, colorText))
	l.Add(block("Date : "+b.offer.CreatedAt.Format("02/01/2006"), LeftMargin, bodySize, false, bodyHeight, 6, colorText))

	l.Add(block("CLIENT", LeftMargin, headerSize, true, headerHeight, 0, colorPrimary))
	l.Add(block(b.offer.Client.Name, LeftMargin, lineSize, false, lineHeight, 0, colorText))
	if b.offer.Client.CompanyName != nil && *b.offer.Client.CompanyName != "" {
		l.Add(block("Société : "+*b.offer.Client.CompanyName, LeftMargin, bodySize, false, bodyHeight, 0, colorText))
	}
	l.Skip(6)

	leaser := Placeholder
	if b.offer.Leaser != nil && b.offer.Leaser.Name != nil && *b.offer.Leaser.Name != "" {
		leaser = *b.offer.Leaser.Name
	}
	l.Add(block("Bailleur : "+leaser, LeftMargin, bodySize, false, bodyHeight, 0, colorText))

	duration := Placeholder
	if b.offer.DurationMonths != nil {
		duration = fmt.Sprintf("%d mois", *b.offer.DurationMonths)
	}
	l.Add(block("Durée du contrat : "+duration, LeftMargin, bodySize, false, bodyHeight, 10, colorText))
}

func (b *builder) equipmentAndFinancials() {
	b.advance(stageEquipment, stageTerms)
	l := b.layout

	l.EnsureRoom(sectionMinHeight)
	l.Add(block("ÉQUIPEMENTS", LeftMargin, headerSize, true, headerHeight, 2, colorPrimary))

	for _, line := range b.offer.Equipment {
		b.equipmentLine(line)
	}

	b.financialTotals()
}

func (b *builder) equipmentLine(line models.EquipmentLine) {
	l := b.layout

	l.Add(block(line.Title, LeftMargin, lineSize, true, lineHeight, 0, colorText))

	payment := fmt.Sprintf("%d x %s / mois  -  soit %s / mois",
		line.Quantity, FormatCurrency(line.MonthlyPayment), FormatCurrency(LineMonthlyTotal(line)))
	l.Add(block(payment, LeftMargin+12, bodySize, false, bodyHeight, 0, colorText))

	// Internal figures only survive redaction in internal mode
	if line.PurchasePrice != nil || line.Margin != nil {
		internal := fmt.Sprintf("Prix d'achat unitaire : %s  -  Marge unitaire : %s",
			currencyOr(line.PurchasePrice), currencyOr(line.Margin))
		l.Add(block(internal, LeftMargin+12, detailSize, false, detailHeight, 0, colorMuted))
	}

	for _, attr := range line.Attributes {
		l.Add(block("- "+attr.Key+" : "+attr.Value, LeftMargin+24, detailSize, false, detailHeight, 0, colorText))
	}
	for _, spec := range line.Specifications {
		l.Add(block("- "+spec.Key+" : "+spec.Value, LeftMargin+24, detailSize, false, detailHeight, 0, colorText))
	}

	l.Skip(8)
}

func (b *builder) financialTotals() {
	l := b.layout

	l.EnsureRoom(totalsMinHeight)
	l.Rule(14, colorPrimary[0], colorPrimary[1], colorPrimary[2])

	l.Add(block("Loyer mensuel total : "+FormatCurrency(b.totals.Monthly), LeftMargin, lineSize, true, lineHeight, 0, colorText))

	if b.offer.DurationMonths != nil {
		engagement := fmt.Sprintf("Engagement total sur %d mois : %s", *b.offer.DurationMonths, FormatCurrency(b.totals.OverDuration))
		l.Add(block(engagement, LeftMargin, lineSize, false, lineHeight, 0, colorText))
	}

	if b.totals.Internal {
		l.Skip(4)
		l.Add(block("Total prix d'achat : "+FormatCurrency(b.totals.Purchase), LeftMargin, bodySize, false, bodyHeight, 0, colorMuted))
		l.Add(block("Marge totale : "+FormatCurrency(b.totals.Margin), LeftMargin, bodySize, false, bodyHeight, 0, colorMuted))
		l.Add(block("Taux de marge : "+FormatPercent(b.totals.MarginPercent), LeftMargin, bodySize, true, bodyHeight, 0, colorMuted))
	}

	l.Skip(10)
}

func (b *builder) terms() {
	b.advance(stageTerms, stageDone)
	l := b.layout

	l.EnsureRoom(sectionMinHeight)
	l.Add(block("CONDITIONS", LeftMargin, headerSize, true, headerHeight, 2, colorPrimary))

	conditions := []string{
		"Offre valable 30 jours à compter de sa date d'émission, sous réserve d'acceptation du dossier par le bailleur.",
		"Les loyers indiqués s'entendent hors taxes. L'assurance du matériel reste à la charge du locataire.",
		"Le matériel demeure la propriété du bailleur pendant toute la durée du contrat de location.",
	}
	for _, c := range conditions {
		for _, wrapped := range wrapText(c, wrapWidth) {
			l.Add(block(wrapped, LeftMargin, detailSize, false, detailHeight, 0, colorText))
		}
		l.Skip(3)
	}

	if b.offer.AdditionalTerms != nil && strings.TrimSpace(*b.offer.AdditionalTerms) != "" {
		l.Skip(4)
		l.Add(block("Conditions particulières", LeftMargin, bodySize, true, bodyHeight, 0, colorText))
		for _, wrapped := range wrapText(*b.offer.AdditionalTerms, wrapWidth) {
			l.Add(block(wrapped, LeftMargin, detailSize, false, detailHeight, 0, colorText))
		}
	}

	contact := strings.TrimSpace(strOr(b.offer.Company.Email, "") + "  " + strOr(b.offer.Company.Phone, ""))
	if contact == "" {
		contact = Placeholder
	}
	l.Skip(10)
	l.Add(block("Contact : "+contact, LeftMargin, bodySize, false, bodyHeight, 0, colorMuted))
}

// addFooters runs strictly after layout: it is the only step that needs the
// total page count
func addFooters(doc *Document, generatedAt time.Time, mode RenderMode) {
	total := len(doc.Pages)
	for i := range doc.Pages {
		page := &doc.Pages[i]

		page.Ops = append(page.Ops, DrawOp{
			Kind:  OpLine,
			X:     LeftMargin,
			Y:     BottomMargin - 16,
			X2:    PageWidth - RightMargin,
			Y2:    BottomMargin - 16,
			Width: 0.5,
			R:     colorMuted[0], G: colorMuted[1], B: colorMuted[2],
		})

		footer := fmt.Sprintf("Document généré le %s - page %d / %d",
			generatedAt.Format("02/01/2006 15:04"), i+1, total)
		if mode == ModeInternal {
			footer += " - CONFIDENTIEL"
		}
		page.Ops = append(page.Ops, DrawOp{
			Kind: OpText,
			Text: Sanitize(footer),
			X:    LeftMargin,
			Y:    BottomMargin - 30,
			Size: footerSize,
			R:    colorMuted[0], G: colorMuted[1], B: colorMuted[2],
		})
	}
}

// block builds a ContentBlock with sanitized text
func block(text string, x, size float64, bold bool, height, spacing float64, color [3]int) ContentBlock {
	return ContentBlock{
		Text:    Sanitize(text),
		X:       x,
		Size:    size,
		Bold:    bold,
		Height:  height,
		Spacing: spacing,
		R:       color[0], G: color[1], B: color[2],
	}
}

func strOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

func currencyOr(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return FormatCurrency(*v)
}

// wrapText splits free text into lines of at most width characters, breaking
// on spaces. Words longer than the width get a line of their own.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) > width {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	lines = append(lines, current)

	return lines
}
