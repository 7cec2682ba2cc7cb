// Package offerpdf turns a fully resolved leasing offer into a finished PDF
// document. The pipeline is synchronous and stateless: redact, aggregate,
// lay out, sanitize every drawn string, encode. Two confidentiality modes
// exist; in client mode purchase and margin figures are removed from the
// working model before any other component sees it.
package offerpdf

import (
	"context"
	"time"

	"lease_flow_app_go/config"
	"lease_flow_app_go/models"
)

// Generator renders offers to PDF. It holds configuration only; every call
// is independent, so one Generator may serve concurrent requests.
type Generator struct {
	renderer   string
	fontDir    string
	chromePath string

	// now is the timestamp source for the generation footer; tests pin it
	// to get byte-identical output
	now func() time.Time
}

// NewGenerator builds a Generator from the application configuration
func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{
		renderer:   cfg.PDFRenderer,
		fontDir:    cfg.PDFFontDir,
		chromePath: cfg.ChromePath,
		now:        time.Now,
	}
}

// Generate renders one offer in the requested mode and returns the finished
// document with its mode-keyed filename. Either a complete document or an
// error is returned, never partial output.
func (g *Generator) Generate(ctx context.Context, offer *models.Offer, mode RenderMode) (*Result, error) {
	generatedAt := g.now()

	if g.renderer == config.PDFRendererChrome {
		working := Redact(offer, mode)
		duration := 0
		if working.DurationMonths != nil {
			duration = *working.DurationMonths
		}
		totals := Aggregate(working.Equipment, duration, mode)

		htmlContent := buildOfferHTML(working, totals, mode, generatedAt)
		pdfBytes, err := renderChromePDF(ctx, htmlContent, g.chromePath)
		if err != nil {
			return nil, NewError(KindGenerationFailed, "chrome rendering failed", err)
		}
		return &Result{
			PDF:      pdfBytes,
			Filename: DocumentFilename(mode, offer.ID),
			MIME:     MIMEType,
		}, nil
	}

	doc, _ := BuildDocument(offer, mode, generatedAt)
	return Package(doc, mode, offer.ID, generatedAt, g.fontDir)
}
