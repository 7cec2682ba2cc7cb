package offerpdf

// Page geometry in points. A4 portrait.
const (
	PageWidth  = 595.28
	PageHeight = 841.89

	LeftMargin   = 40.0
	RightMargin  = 40.0
	TopMargin    = 60.0
	BottomMargin = 60.0
)

// UsableHeight is the vertical space available to content on one page
const UsableHeight = PageHeight - TopMargin - BottomMargin

// OpKind discriminates draw operations
type OpKind int

const (
	OpText OpKind = iota
	OpLine
)

// DrawOp is one drawing instruction on a page. Y coordinates grow upward from
// the page bottom, PDF-native.
type DrawOp struct {
	Kind OpKind

	// OpText
	Text    string
	X, Y    float64
	Size    float64
	Bold    bool
	R, G, B int

	// OpLine
	X2, Y2 float64
	Width  float64
}

// ContentBlock is one unit of flowed content: a line of text with its
// typography and the vertical space it consumes.
//
// Precondition: Height+Spacing must fit within UsableHeight. A block taller
// than a full page is a programming defect, not a runtime condition.
type ContentBlock struct {
	Text    string
	X       float64
	Size    float64
	Bold    bool
	Height  float64
	Spacing float64 // extra gap below the block
	R, G, B int
}

// Page is an ordered list of draw operations
type Page struct {
	Ops []DrawOp
}

// Document is the laid-out, not-yet-encoded render result
type Document struct {
	Pages []Page
}

// PageCursor tracks the current page index and vertical position during
// layout. Y is the distance from the page bottom; it never advances below
// BottomMargin before a new page is allocated.
type PageCursor struct {
	Page int
	Y    float64
}

// Layout flows sequential content blocks onto pages, allocating a new page
// whenever a block would cross the bottom margin.
type Layout struct {
	Doc    Document
	Cursor PageCursor
}

// NewLayout starts a document with its first page allocated and the cursor at
// the top margin
func NewLayout() *Layout {
	return &Layout{
		Doc:    Document{Pages: []Page{{}}},
		Cursor: PageCursor{Page: 0, Y: PageHeight - TopMargin},
	}
}

// NewPage allocates a fresh page and resets the cursor to the top margin
func (l *Layout) NewPage() {
	l.Doc.Pages = append(l.Doc.Pages, Page{})
	l.Cursor.Page = len(l.Doc.Pages) - 1
	l.Cursor.Y = PageHeight - TopMargin
}

// Remaining returns the vertical space left above the bottom margin
func (l *Layout) Remaining() float64 {
	return l.Cursor.Y - BottomMargin
}

// EnsureRoom allocates a new page unless at least height units remain. Used
// by sections that must not start on a nearly-full page.
func (l *Layout) EnsureRoom(height float64) {
	if l.Remaining() < height {
		l.NewPage()
	}
}

// Add draws one content block at the cursor, paginating first if the block
// would cross the bottom margin, then advances the cursor past it.
func (l *Layout) Add(b ContentBlock) {
	if l.Cursor.Y-b.Height < BottomMargin {
		l.NewPage()
	}

	l.append(DrawOp{
		Kind: OpText,
		Text: b.Text,
		X:    b.X,
		Y:    l.Cursor.Y,
		Size: b.Size,
		Bold: b.Bold,
		R:    b.R, G: b.G, B: b.B,
	})

	l.Cursor.Y -= b.Height + b.Spacing
}

// Skip advances the cursor without drawing, clamped at the bottom margin
func (l *Layout) Skip(height float64) {
	l.Cursor.Y -= height
	if l.Cursor.Y < BottomMargin {
		l.Cursor.Y = BottomMargin
	}
}

// Rule draws a horizontal line across the content width at the cursor and
// advances past it
func (l *Layout) Rule(height float64, r, g, b int) {
	if l.Cursor.Y-height < BottomMargin {
		l.NewPage()
	}

	l.append(DrawOp{
		Kind:  OpLine,
		X:     LeftMargin,
		Y:     l.Cursor.Y,
		X2:    PageWidth - RightMargin,
		Y2:    l.Cursor.Y,
		Width: 0.8,
		R:     r, G: g, B: b,
	})

	l.Cursor.Y -= height
}

func (l *Layout) append(op DrawOp) {
	page := &l.Doc.Pages[l.Cursor.Page]
	page.Ops = append(page.Ops, op)
}
