// Package document renders declarative drawing instructions into a PDF.
//
// The renderer knows nothing about tickets or receipts: every string it draws
// is supplied, already formatted, by the caller.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"math"

	"github.com/signintech/gopdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	fontRegular = "go-regular"
	fontBold    = "go-bold"

	defaultTextSize = 12
	lineHeight      = 1.2
	arcSegments     = 8
)

var (
	ErrUnknownInstruction = errors.New("unknown draw instruction")
	ErrInvalidInstruction = errors.New("invalid draw instruction")
)

// PageSpec is a fixed page size in points plus the margins that bound flow layout.
type PageSpec struct {
	Width  float64
	Height float64
	Margin float64
}

func A4() PageSpec {
	return PageSpec{Width: gopdf.PageSizeA4.W, Height: gopdf.PageSizeA4.H, Margin: 40}
}

func (p PageSpec) ContentWidth() float64 { return p.Width - 2*p.Margin }

type Renderer struct {
	page PageSpec
}

func NewRenderer(page PageSpec) *Renderer {
	if page.Width <= 0 || page.Height <= 0 {
		page = A4()
	}
	return &Renderer{page: page}
}

func (r *Renderer) Page() PageSpec { return r.page }

func (r *Renderer) Render(instructions []Instruction) ([]byte, error) {
	return Render(r.page, instructions)
}

// Render draws instructions in order and returns the finalised document.
// Nothing is returned until every instruction has been applied.
func Render(page PageSpec, instructions []Instruction) ([]byte, error) {
	c, err := newCanvas(page)
	if err != nil {
		return nil, err
	}

	for idx, in := range instructions {
		if err := c.draw(in); err != nil {
			return nil, fmt.Errorf("instruction %d (%s): %w", idx, in.Kind, err)
		}
	}

	var buf bytes.Buffer
	if _, err := c.pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("finalise pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type canvas struct {
	pdf    *gopdf.GoPdf
	page   PageSpec
	cursor float64 // flow cursor, y of the bottom of the last flow instruction
	rowTop float64 // y of the top of the current flow row
	pages  int
}

func newCanvas(page PageSpec) (*canvas, error) {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: gopdf.Rect{W: page.Width, H: page.Height}})

	if err := pdf.AddTTFFontData(fontRegular, goregular.TTF); err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	if err := pdf.AddTTFFontData(fontBold, gobold.TTF); err != nil {
		return nil, fmt.Errorf("load bold font: %w", err)
	}

	pdf.AddPage()

	return &canvas{pdf: pdf, page: page, cursor: page.Margin, rowTop: page.Margin, pages: 1}, nil
}

func (c *canvas) newPage() {
	c.pdf.AddPage()
	c.pages++
	c.cursor = c.page.Margin
	c.rowTop = c.page.Margin
}

// place resolves the absolute y of a flow instruction of the given height,
// breaking the page when it would cross the bottom margin.
func (c *canvas) place(in Instruction, height float64) float64 {
	if !in.Flow {
		return in.Y
	}

	if in.SameRow {
		y := c.rowTop + in.Y
		c.cursor = math.Max(c.cursor, y+height)
		return y
	}

	y := c.cursor + in.Y
	if y+height > c.page.Height-c.page.Margin && c.cursor > c.page.Margin {
		c.newPage()
		y = c.cursor + in.Y
	}
	c.rowTop = y
	c.cursor = y + height
	return y
}

func (c *canvas) draw(in Instruction) error {
	switch in.Kind {
	case KindPageBreak:
		c.newPage()
		return nil

	case KindRect:
		if in.W <= 0 || in.H <= 0 {
			return fmt.Errorf("%w: rect needs positive size", ErrInvalidInstruction)
		}
		y := c.place(in, in.H)
		c.pdf.SetFillColor(in.Color.R, in.Color.G, in.Color.B)
		c.pdf.RectFromUpperLeftWithStyle(in.X, y, in.W, in.H, "F")
		return nil

	case KindRoundedRect:
		if in.W <= 0 || in.H <= 0 {
			return fmt.Errorf("%w: rounded rect needs positive size", ErrInvalidInstruction)
		}
		y := c.place(in, in.H)
		c.pdf.SetFillColor(in.Color.R, in.Color.G, in.Color.B)
		c.pdf.SetStrokeColor(in.Color.R, in.Color.G, in.Color.B)
		c.pdf.Polygon(roundedRectPoints(in.X, y, in.W, in.H, in.Radius), "F")
		return nil

	case KindLine:
		width := in.LineWidth
		if width <= 0 {
			width = 1
		}
		top := math.Min(in.Y, in.Y2)
		y := c.place(in, math.Abs(in.Y2-in.Y))
		shift := y - top
		c.pdf.SetStrokeColor(in.Color.R, in.Color.G, in.Color.B)
		c.pdf.SetLineWidth(width)
		c.pdf.Line(in.X, in.Y+shift, in.X2, in.Y2+shift)
		return nil

	case KindText:
		return c.text(in)

	case KindImage:
		return c.image(in)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownInstruction, in.Kind)
	}
}

func (c *canvas) text(in Instruction) error {
	size := in.Size
	if size <= 0 {
		size = defaultTextSize
	}

	family := fontRegular
	if in.Weight == Bold {
		family = fontBold
	}

	if err := c.pdf.SetFont(family, "", size); err != nil {
		return err
	}
	c.pdf.SetTextColor(in.Color.R, in.Color.G, in.Color.B)

	y := c.place(in, size*lineHeight)

	if in.Text == "" {
		return nil
	}

	runes := []rune(in.Text)
	widths := make([]float64, len(runes))
	total := 0.0

	for i, r := range runes {
		w, err := c.pdf.MeasureTextWidth(string(r))
		if err != nil {
			return err
		}
		widths[i] = w
		total += w
	}
	total += in.Spacing * float64(len(runes)-1)

	x := in.X
	if in.W > 0 {
		switch in.Align {
		case AlignCenter:
			x += (in.W - total) / 2
		case AlignRight:
			x += in.W - total
		}
	}

	if in.Spacing == 0 {
		c.pdf.SetXY(x, y)
		return c.pdf.Cell(&gopdf.Rect{W: total, H: size}, in.Text)
	}

	for i, r := range runes {
		c.pdf.SetXY(x, y)
		if err := c.pdf.Cell(&gopdf.Rect{W: widths[i], H: size}, string(r)); err != nil {
			return err
		}
		x += widths[i] + in.Spacing
	}
	return nil
}

func (c *canvas) image(in Instruction) error {
	if len(in.Image) == 0 || in.W <= 0 {
		return fmt.Errorf("%w: image needs data and width", ErrInvalidInstruction)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(in.Image))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInstruction, err)
	}
	if cfg.Width == 0 {
		return fmt.Errorf("%w: image has zero width", ErrInvalidInstruction)
	}

	h := in.W * float64(cfg.Height) / float64(cfg.Width)
	y := c.place(in, h)

	holder, err := gopdf.ImageHolderByBytes(in.Image)
	if err != nil {
		return err
	}
	return c.pdf.ImageByHolder(holder, in.X, y, &gopdf.Rect{W: in.W, H: h})
}

// roundedRectPoints approximates a rounded rectangle with short arc segments.
func roundedRectPoints(x, y, w, h, r float64) []gopdf.Point {
	r = math.Max(0, math.Min(r, math.Min(w, h)/2))
	if r == 0 {
		return []gopdf.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}
	}

	// corner centres, clockwise from top-right, with the starting angle of each arc
	corners := []struct{ cx, cy, start float64 }{
		{x + w - r, y + r, -math.Pi / 2},
		{x + w - r, y + h - r, 0},
		{x + r, y + h - r, math.Pi / 2},
		{x + r, y + r, math.Pi},
	}

	points := make([]gopdf.Point, 0, len(corners)*(arcSegments+1))
	for _, c := range corners {
		for s := 0; s <= arcSegments; s++ {
			a := c.start + (math.Pi/2)*float64(s)/arcSegments
			points = append(points, gopdf.Point{X: c.cx + r*math.Cos(a), Y: c.cy + r*math.Sin(a)})
		}
	}
	return points
}
