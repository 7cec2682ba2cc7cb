package offerpdf

import (
	"bytes"
	"compress/zlib"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodePDFStreams inflates every compressed stream object of a PDF so its
// text content becomes searchable
func decodePDFStreams(t *testing.T, pdf []byte) string {
	t.Helper()

	var out bytes.Buffer
	rest := pdf
	for {
		start := bytes.Index(rest, []byte("stream\n"))
		if start < 0 {
			break
		}
		rest = rest[start+len("stream\n"):]
		end := bytes.Index(rest, []byte("endstream"))
		if end < 0 {
			break
		}
		raw := rest[:end]
		rest = rest[end:]

		r, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			// Uncompressed stream (font file, metadata): keep as-is
			out.Write(raw)
			continue
		}
		inflated, err := io.ReadAll(r)
		r.Close()
		if err == nil {
			out.Write(inflated)
		}
	}

	return out.String()
}

func TestPackageProducesValidPDF(t *testing.T) {
	doc, _ := BuildDocument(sampleOffer(), ModeClient, testGeneratedAt)

	result, err := Package(doc, ModeClient, sampleOffer().ID, testGeneratedAt, "")
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", result.MIME)
	assert.Equal(t, "Offre-0f4d3c2b.pdf", result.Filename)
	assert.True(t, bytes.HasPrefix(result.PDF, []byte("%PDF-")), "missing PDF header")
	assert.Greater(t, len(result.PDF), 1000)
}

func TestPackageInternalFilename(t *testing.T) {
	doc, _ := BuildDocument(sampleOffer(), ModeInternal, testGeneratedAt)

	result, err := Package(doc, ModeInternal, sampleOffer().ID, testGeneratedAt, "")
	require.NoError(t, err)

	assert.Equal(t, "Offre-0f4d3c2b-INTERNE.pdf", result.Filename)
}

func TestPackageClientStreamCarriesNoConfidentialFigures(t *testing.T) {
	offer := sampleOffer()

	clientDoc, _ := BuildDocument(offer, ModeClient, testGeneratedAt)
	clientResult, err := Package(clientDoc, ModeClient, offer.ID, testGeneratedAt, "")
	require.NoError(t, err)

	internalDoc, _ := BuildDocument(offer, ModeInternal, testGeneratedAt)
	internalResult, err := Package(internalDoc, ModeInternal, offer.ID, testGeneratedAt, "")
	require.NoError(t, err)

	clientText := decodePDFStreams(t, clientResult.PDF)
	internalText := decodePDFStreams(t, internalResult.PDF)

	assert.NotContains(t, clientText, "achat")
	assert.NotContains(t, clientText, "Marge")
	assert.NotContains(t, clientText, "600,00")

	assert.Contains(t, internalText, "achat")
	assert.Contains(t, internalText, "Marge totale : 30,00 EUR")
	assert.Contains(t, internalText, "600,00")
}

func TestPackageIsDeterministicForPinnedTimestamp(t *testing.T) {
	offer := sampleOffer()

	first, _ := BuildDocument(offer, ModeClient, testGeneratedAt)
	firstResult, err := Package(first, ModeClient, offer.ID, testGeneratedAt, "")
	require.NoError(t, err)

	second, _ := BuildDocument(offer, ModeClient, testGeneratedAt)
	secondResult, err := Package(second, ModeClient, offer.ID, testGeneratedAt, "")
	require.NoError(t, err)

	assert.Equal(t, firstResult.PDF, secondResult.PDF, "regeneration is not byte-identical")
}

func TestPackageFallsBackToASCIIForUnencodableText(t *testing.T) {
	// 0x80-0x9F passes the Latin-1 sanitization window but has no printable
	// cp1252 slot: the packager must degrade the string, not fail
	doc := &Document{Pages: []Page{{Ops: []DrawOp{
		{Kind: OpText, Text: "café  tricky", X: LeftMargin, Y: 700, Size: 10},
	}}}}

	result, err := Package(doc, ModeClient, "abcdefgh-0000", testGeneratedAt, "")
	require.NoError(t, err)

	text := decodePDFStreams(t, result.PDF)
	assert.Contains(t, text, "cafe")
	assert.NotContains(t, text, "café")
}

func TestDocumentFilename(t *testing.T) {
	assert.Equal(t, "Offre-12345678.pdf", DocumentFilename(ModeClient, "12345678-rest-of-uuid"))
	assert.Equal(t, "Offre-12345678-INTERNE.pdf", DocumentFilename(ModeInternal, "12345678-rest-of-uuid"))
	assert.Equal(t, "Offre-short.pdf", DocumentFilename(ModeClient, "short"))
}

func TestRenderableLatin1(t *testing.T) {
	assert.True(t, renderableLatin1("café 1 234,56 EUR"))
	assert.False(t, renderableLatin1("control  slot"))
	assert.False(t, renderableLatin1("emoji 🎉"))
	assert.False(t, renderableLatin1("tab\there"))
}
