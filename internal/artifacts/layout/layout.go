// Package layout builds the instruction lists for the ticket and receipt
// documents. Both builders are pure: same input, same instructions.
package layout

import (
	"strings"
	"time"

	"github.com/geocoder89/ticketdesk/internal/artifacts/document"
	"github.com/geocoder89/ticketdesk/internal/domain/event"
	"github.com/geocoder89/ticketdesk/internal/domain/registration"
	"github.com/shopspring/decimal"
)

type Input struct {
	Code     string
	Request  registration.Request
	Event    event.Descriptor
	QRRaster []byte
	IssuedAt time.Time
	Fee      decimal.Decimal
}

var (
	navy     = document.Hex(0x0F172A)
	navy2    = document.Hex(0x1E293B)
	accent   = document.Hex(0xF59E0B)
	white    = document.Hex(0xFFFFFF)
	panel    = document.Hex(0xF1F5F9)
	ink      = document.Hex(0x111827)
	muted    = document.Hex(0x64748B)
	soft     = document.Hex(0xCBD5E1)
	paid     = document.Hex(0x15803D)
	hairline = document.Hex(0xE2E8F0)
)

const issuedLayout = "02 Jan 2006 15:04"

// FormatRupiah renders an amount as "Rp 1.250.000".
func FormatRupiah(d decimal.Decimal) string {
	digits := d.Abs().StringFixed(0)

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "Rp " + b.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
