package offerpdf

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// MIMEType of every generated document
const MIMEType = "application/pdf"

const coreFontFamily = "Helvetica"

// Result is a finished, packaged document
type Result struct {
	PDF      []byte
	Filename string
	MIME     string
}

// fontTier selects how glyphs reach the page: the core standard font with its
// single-byte encoding, or an embedded UTF-8 TrueType pair.
type fontTier struct {
	family   string
	embedded bool
	regular  string // path to Regular.ttf when embedded
	bold     string // path to Bold.ttf when embedded
}

// resolveFontTier picks the embedded tier only when the configured directory
// holds both faces; anything else falls back to the core font before any
// drawing starts, so one document is always rendered by exactly one tier.
func resolveFontTier(fontDir string) fontTier {
	if fontDir == "" {
		return fontTier{family: coreFontFamily}
	}

	regular := filepath.Join(fontDir, "Regular.ttf")
	bold := filepath.Join(fontDir, "Bold.ttf")
	if !fileExists(regular) || !fileExists(bold) {
		log.Printf("[offerpdf] font dir %s is missing Regular.ttf/Bold.ttf, using built-in %s", fontDir, coreFontFamily)
		return fontTier{family: coreFontFamily}
	}

	return fontTier{family: "offerfont", embedded: true, regular: regular, bold: bold}
}

// Package serializes a laid-out document to PDF bytes and picks the
// mode-keyed filename. No business decisions happen here: the document is
// replayed operation by operation.
func Package(doc *Document, mode RenderMode, offerID string, generatedAt time.Time, fontDir string) (*Result, error) {
	tier := resolveFontTier(fontDir)

	pdf := gofpdf.New("P", "pt", "A4", "")
	// Sorted resource dictionaries, so regenerating the same document yields
	// byte-identical output
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(generatedAt)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("Offre "+shortID(offerID), true)

	if tier.embedded {
		pdf.AddUTF8Font(tier.family, "", tier.regular)
		pdf.AddUTF8Font(tier.family, "B", tier.bold)
	}

	// Core fonts expect cp1252; the translator maps the sanitized UTF-8
	// strings into it
	translate := func(s string) string { return s }
	if !tier.embedded {
		translate = pdf.UnicodeTranslatorFromDescriptor("")
	}

	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, op := range page.Ops {
			switch op.Kind {
			case OpText:
				drawText(pdf, tier, translate, op)
			case OpLine:
				pdf.SetDrawColor(op.R, op.G, op.B)
				pdf.SetLineWidth(op.Width)
				pdf.Line(op.X, PageHeight-op.Y, op.X2, PageHeight-op.Y2)
			}
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, NewError(KindGenerationFailed, "pdf encoding failed", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, NewError(KindGenerationFailed, "pdf serialization failed", err)
	}

	return &Result{
		PDF:      buf.Bytes(),
		Filename: DocumentFilename(mode, offerID),
		MIME:     MIMEType,
	}, nil
}

func drawText(pdf *gofpdf.Fpdf, tier fontTier, translate func(string) string, op DrawOp) {
	text := op.Text
	if !tier.embedded && !renderableLatin1(text) {
		// Runtime encoding violation: degrade this string to ASCII rather
		// than failing the document
		text = SanitizeASCII(text)
	}

	style := ""
	if op.Bold {
		style = "B"
	}
	pdf.SetFont(tier.family, style, op.Size)
	pdf.SetTextColor(op.R, op.G, op.B)
	pdf.Text(op.X, PageHeight-op.Y, translate(text))
}

// DocumentFilename returns the mode-keyed attachment name,
// Offre-<id8>.pdf for clients and Offre-<id8>-INTERNE.pdf internally
func DocumentFilename(mode RenderMode, offerID string) string {
	if mode == ModeInternal {
		return fmt.Sprintf("Offre-%s-INTERNE.pdf", shortID(offerID))
	}
	return fmt.Sprintf("Offre-%s.pdf", shortID(offerID))
}

// renderableLatin1 reports whether every rune maps to a printable cp1252
// glyph slot. The 0x7F-0x9F window is excluded: those bytes are control
// codes in Latin-1 and remapped glyphs in cp1252.
func renderableLatin1(s string) bool {
	for _, r := range s {
		if r < 0x20 || r > 0xFF {
			return false
		}
		if r >= 0x7F && r <= 0x9F {
			return false
		}
	}
	return true
}

func shortID(id string) string {
	if len(id) < 8 {
		return id
	}
	return id[:8]
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
