package document

type Kind string

const (
	KindRect        Kind = "rect"
	KindRoundedRect Kind = "rounded_rect"
	KindLine        Kind = "line"
	KindText        Kind = "text"
	KindImage       Kind = "image"
	KindPageBreak   Kind = "page_break"
)

type Weight string

const (
	Regular Weight = "regular"
	Bold    Weight = "bold"
)

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex builds a Color from a 0xRRGGBB literal.
func Hex(v uint32) Color {
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// Instruction is one drawing step. The zero values of unused fields are ignored
// by the renderer, which keeps instruction lists plain data.
//
// Y is absolute on the current page unless Flow is set, in which case it is an
// offset below the bottom of the previous flow instruction. SameRow places the
// instruction Y below the top of the previous flow row instead, for columns.
type Instruction struct {
	Kind Kind `json:"kind"`

	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w,omitempty"`
	H float64 `json:"h,omitempty"`

	// line end point
	X2 float64 `json:"x2,omitempty"`
	Y2 float64 `json:"y2,omitempty"`

	Radius    float64 `json:"radius,omitempty"`
	LineWidth float64 `json:"lineWidth,omitempty"`
	Color     Color   `json:"color"`

	Text    string  `json:"text,omitempty"`
	Weight  Weight  `json:"weight,omitempty"`
	Size    float64 `json:"size,omitempty"`
	Align   Align   `json:"align,omitempty"`
	Spacing float64 `json:"spacing,omitempty"`

	Image []byte `json:"image,omitempty"`

	Flow    bool `json:"flow,omitempty"`
	SameRow bool `json:"sameRow,omitempty"`
}

func Rect(x, y, w, h float64, c Color) Instruction {
	return Instruction{Kind: KindRect, X: x, Y: y, W: w, H: h, Color: c}
}

func RoundedRect(x, y, w, h, radius float64, c Color) Instruction {
	return Instruction{Kind: KindRoundedRect, X: x, Y: y, W: w, H: h, Radius: radius, Color: c}
}

func Line(x1, y1, x2, y2, width float64, c Color) Instruction {
	return Instruction{Kind: KindLine, X: x1, Y: y1, X2: x2, Y2: y2, LineWidth: width, Color: c}
}

func Text(x, y float64, text string, size float64, c Color) Instruction {
	return Instruction{Kind: KindText, X: x, Y: y, Text: text, Size: size, Weight: Regular, Color: c}
}

func Image(x, y, w float64, png []byte) Instruction {
	return Instruction{Kind: KindImage, X: x, Y: y, W: w, Image: png}
}

func PageBreak() Instruction {
	return Instruction{Kind: KindPageBreak}
}

func (i Instruction) Bold() Instruction {
	i.Weight = Bold
	return i
}

// Boxed fixes the text box width and aligns the text inside it.
func (i Instruction) Boxed(width float64, align Align) Instruction {
	i.W = width
	i.Align = align
	return i
}

func (i Instruction) LetterSpacing(s float64) Instruction {
	i.Spacing = s
	return i
}

func (i Instruction) InFlow() Instruction {
	i.Flow = true
	return i
}

func (i Instruction) OnSameRow() Instruction {
	i.Flow = true
	i.SameRow = true
	return i
}
