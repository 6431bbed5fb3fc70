package ticket

import (
	"math/rand"
	"strings"
)

const (
	DefaultPrefix = "TIX"
	suffixLen     = 6
	alphabet      = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Ticket holds every artifact issued for one registration. It lives only for
// the duration of a single webhook call.
type Ticket struct {
	Code           string
	QRRaster       []byte
	QRPublicURL    string
	TicketPDF      []byte
	ReceiptPDF     []byte
	CalendarInvite []byte // nil when the invite could not be encoded
}

func (t Ticket) HasInvite() bool { return len(t.CalendarInvite) > 0 }

// CodeGenerator issues "<PREFIX>-<SUFFIX>" codes. Uniqueness is probabilistic
// only: there is no registry of issued codes.
type CodeGenerator struct {
	prefix string
}

func NewCodeGenerator(prefix string) *CodeGenerator {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &CodeGenerator{prefix: prefix}
}

func (g *CodeGenerator) Prefix() string { return g.prefix }

func (g *CodeGenerator) Generate() string {
	var b strings.Builder
	b.Grow(len(g.prefix) + 1 + suffixLen)
	b.WriteString(g.prefix)
	b.WriteByte('-')

	for i := 0; i < suffixLen; i++ {
		b.WriteByte(alphabet[rand.Intn(len(alphabet))])
	}
	return b.String()
}

// ValidCode reports whether code has the shape produced by a generator with prefix.
func ValidCode(prefix, code string) bool {
	rest, ok := strings.CutPrefix(code, prefix+"-")
	if !ok || len(rest) != suffixLen {
		return false
	}
	for i := 0; i < len(rest); i++ {
		if strings.IndexByte(alphabet, rest[i]) < 0 {
			return false
		}
	}
	return true
}
