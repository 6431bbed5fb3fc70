package layout

import (
	"testing"
	"time"

	"github.com/geocoder89/ticketdesk/internal/artifacts/document"
	"github.com/geocoder89/ticketdesk/internal/domain/event"
	"github.com/geocoder89/ticketdesk/internal/domain/registration"
	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInput(t *testing.T) Input {
	t.Helper()

	png, err := qrcode.Encode("TIX-ABC123", qrcode.Medium, 256)
	require.NoError(t, err)

	return Input{
		Code:    "TIX-ABC123",
		Request: registration.Request{Name: "Siti Rahma", Email: "siti@example.com", Phone: "08123456789"},
		Event: event.Descriptor{
			Title:          "Workshop Go",
			Venue:          "Aula Utama",
			DisplayDate:    "Minggu, 8 Maret 2026",
			DisplayTime:    "15.00 - 18.00 WIB",
			OrganizerName:  "Panitia Event",
			OrganizerEmail: "panitia@example.com",
		},
		QRRaster: png,
		IssuedAt: time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC),
	}
}

func texts(ins []document.Instruction) []string {
	var out []string
	for _, in := range ins {
		if in.Kind == document.KindText {
			out = append(out, in.Text)
		}
	}
	return out
}

func TestTicket_ContainsParticipantAndQR(t *testing.T) {
	in := testInput(t)
	ins := Ticket(document.A4(), in)

	got := texts(ins)
	assert.Contains(t, got, "Siti Rahma")
	assert.Contains(t, got, "TIX-ABC123")
	assert.Contains(t, got, "Workshop Go")
	assert.Contains(t, got, "Aula Utama")
	assert.Contains(t, got, "Minggu, 8 Maret 2026")

	var images int
	for _, i := range ins {
		if i.Kind == document.KindImage {
			images++
			assert.Equal(t, in.QRRaster, i.Image)
		}
	}
	assert.Equal(t, 1, images)
}

func TestTicket_IsPure(t *testing.T) {
	in := testInput(t)

	assert.Equal(t, Ticket(document.A4(), in), Ticket(document.A4(), in))
	assert.Equal(t, Receipt(document.A4(), in), Receipt(document.A4(), in))
}

func TestReceipt_ZeroFeePaid(t *testing.T) {
	ins := Receipt(document.A4(), testInput(t))

	got := texts(ins)
	assert.Contains(t, got, "Rp 0")
	assert.Contains(t, got, "LUNAS")
	assert.Contains(t, got, "No. KW-TIX-ABC123")
	assert.Contains(t, got, "08123456789")
	assert.Contains(t, got, "Cap & Tanda Tangan")
}

func TestReceipt_OmitsPhoneRowWhenAbsent(t *testing.T) {
	in := testInput(t)
	withPhone := len(Receipt(document.A4(), in))

	in.Request.Phone = ""
	assert.Equal(t, withPhone-1, len(Receipt(document.A4(), in)))
}

func TestLayouts_Render(t *testing.T) {
	in := testInput(t)
	r := document.NewRenderer(document.A4())

	ticketPDF, err := r.Render(Ticket(r.Page(), in))
	require.NoError(t, err)
	assert.NotEmpty(t, ticketPDF)

	receiptPDF, err := r.Render(Receipt(r.Page(), in))
	require.NoError(t, err)
	assert.NotEmpty(t, receiptPDF)
}

func TestFormatRupiah(t *testing.T) {
	cases := map[string]string{
		"0":        "Rp 0",
		"999":      "Rp 999",
		"1000":     "Rp 1.000",
		"1250000":  "Rp 1.250.000",
		"-50000":   "-Rp 50.000",
		"12345.67": "Rp 12.346",
	}

	for in, want := range cases {
		assert.Equal(t, want, FormatRupiah(decimal.RequireFromString(in)), in)
	}
}
