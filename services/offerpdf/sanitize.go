package offerpdf

import (
	"fmt"
	"log"
	"strings"
	"unicode"

	"lease_flow_app_go/models"

	"golang.org/x/text/unicode/norm"
)

// Substitutions for glyphs that are either outside Latin-1 or known to render
// badly with the built-in fonts. Replacement text must survive sanitization
// unchanged so Sanitize stays idempotent.
var glyphSubstitutions = map[rune]string{
	'×': "x",    // multiplication sign
	'€': " EUR", // euro sign
	'‘': "'",    // left single quote
	'’': "'",    // right single quote
	'“': `"`,    // left double quote
	'”': `"`,    // right double quote
	'–': "-",    // en dash
	'—': "-",    // em dash
	'…': "...",  // ellipsis
	'Œ': "OE",   // latin ligature OE
	'œ': "oe",   // latin ligature oe
}

// Sanitize constrains arbitrary text to the printable Latin-1 range
// (0x20-0xFF) the built-in font encoding supports. It never fails and is
// idempotent. Emoji, variation selectors and private-use code points are
// stripped, exotic spaces collapse to a plain space, known problem glyphs are
// substituted, everything else out of range is dropped.
func Sanitize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range text {
		switch {
		case isStrippedRange(r):
			// dropped
		case isSpaceLike(r):
			b.WriteByte(' ')
		default:
			if sub, ok := glyphSubstitutions[r]; ok {
				b.WriteString(sub)
				continue
			}
			if r >= 0x20 && r <= 0xFF {
				b.WriteRune(r)
			}
		}
	}

	return strings.TrimSpace(b.String())
}

// SanitizeASCII is the fallback applied when a string still cannot be drawn
// under the active font encoding: decompose, strip combining diacritics, keep
// printable ASCII only. Degrades accents rather than aborting the document.
func SanitizeASCII(text string) string {
	decomposed := norm.NFD.String(text)

	var b strings.Builder
	b.Grow(len(decomposed))

	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue // combining mark left over from decomposition
		}
		if isSpaceLike(r) {
			b.WriteByte(' ')
			continue
		}
		if r >= 0x20 && r <= 0x7E {
			b.WriteRune(r)
		}
	}

	return strings.TrimSpace(b.String())
}

func isStrippedRange(r rune) bool {
	switch {
	case r >= 0x1F000 && r <= 0x1FAFF: // emoji and pictographs
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols and dingbats
		return true
	case r >= 0xE000 && r <= 0xF8FF: // private use area
		return true
	case r >= 0xFE00 && r <= 0xFE0F: // variation selectors
		return true
	}
	return false
}

func isSpaceLike(r rune) bool {
	switch r {
	case '\t', '\n', '\r', ' ', ' ', ' ', '​', ' ', '　':
		return true
	}
	return false
}

// EncodingReport summarizes a pre-flight scan of an offer's text fields
type EncodingReport struct {
	FieldsScanned  int
	FieldsAffected int
	CharsAffected  int
}

// ScanOffer walks every text field of the offer tree before layout begins and
// logs the fields that carry code points outside the printable Latin-1 range.
// Diagnostics only: nothing is rejected.
func ScanOffer(offer *models.Offer) EncodingReport {
	var report EncodingReport

	scan := func(label, value string) {
		report.FieldsScanned++
		bad := 0
		for _, r := range value {
			if r < 0x20 || r > 0xFF {
				bad++
			}
		}
		if bad > 0 {
			report.FieldsAffected++
			report.CharsAffected += bad
			log.Printf("[offerpdf] offer %s: field %s contains %d code point(s) outside Latin-1", offer.Reference(), label, bad)
		}
	}

	scan("client.name", offer.Client.Name)
	if offer.Client.CompanyName != nil {
		scan("client.company_name", *offer.Client.CompanyName)
	}
	scan("company.name", offer.Company.Name)
	if offer.Company.Email != nil {
		scan("company.email", *offer.Company.Email)
	}
	if offer.Company.Phone != nil {
		scan("company.phone", *offer.Company.Phone)
	}
	if offer.Leaser != nil && offer.Leaser.Name != nil {
		scan("leaser.name", *offer.Leaser.Name)
	}
	if offer.AdditionalTerms != nil {
		scan("additional_terms", *offer.AdditionalTerms)
	}
	for i, line := range offer.Equipment {
		prefix := fmt.Sprintf("equipment[%d]", i)
		scan(prefix+".title", line.Title)
		for j, attr := range line.Attributes {
			scan(fmt.Sprintf("%s.attributes[%d]", prefix, j), attr.Key+": "+attr.Value)
		}
		for j, spec := range line.Specifications {
			scan(fmt.Sprintf("%s.specifications[%d]", prefix, j), spec.Key+": "+spec.Value)
		}
	}

	if report.FieldsAffected > 0 {
		log.Printf("[offerpdf] offer %s: %d of %d field(s) carry %d out-of-range character(s); they will be normalized",
			offer.Reference(), report.FieldsAffected, report.FieldsScanned, report.CharsAffected)
	}

	return report
}
