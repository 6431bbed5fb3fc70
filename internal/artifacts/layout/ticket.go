package layout

import (
	"github.com/geocoder89/ticketdesk/internal/artifacts/document"
)

const (
	headerHeight = 176
	qrSize       = 150
)

// Ticket lays out the e-ticket: dark header with accent stripe, ticket id
// callout, then a light panel holding the participant fields and the QR code.
func Ticket(page document.PageSpec, in Input) []document.Instruction {
	m := page.Margin
	cw := page.ContentWidth()

	out := []document.Instruction{
		document.Rect(0, 0, page.Width, headerHeight, navy),
		document.Rect(0, headerHeight, page.Width, 6, accent),

		document.Text(m, 34, "E-TICKET", 10, accent).Bold().LetterSpacing(3),
		document.Text(m, 54, in.Event.Title, 24, white).Bold(),
		document.Text(m, 88, in.Event.Venue, 11, soft),

		document.RoundedRect(m, 114, 250, 44, 8, navy2),
		document.Text(m+14, 120, "ID TIKET", 7, soft).LetterSpacing(1.5),
		document.Text(m+14, 133, in.Code, 15, accent).Bold().LetterSpacing(1.2),
	}

	panelTop := float64(headerHeight + 36)
	panelHeight := float64(300)
	out = append(out, document.RoundedRect(m, panelTop, cw, panelHeight, 14, panel))

	fields := []struct{ label, value string }{
		{"NAMA PESERTA", in.Request.Name},
		{"TANGGAL", in.Event.DisplayDate},
		{"WAKTU", in.Event.DisplayTime},
		{"LOKASI", in.Event.Venue},
	}

	fieldWidth := cw - qrSize - 72
	y := panelTop + 26
	for _, f := range fields {
		out = append(out,
			document.Text(m+24, y, f.label, 8, muted).LetterSpacing(1.2),
			document.Text(m+24, y+13, orDash(f.value), 14, ink).Bold().Boxed(fieldWidth, document.AlignLeft),
		)
		y += 62
	}

	qrX := m + cw - qrSize - 24
	qrY := panelTop + 30
	out = append(out,
		document.RoundedRect(qrX-8, qrY-8, qrSize+16, qrSize+16, 10, white),
		document.Image(qrX, qrY, qrSize, in.QRRaster),
		document.Text(qrX-8, qrY+qrSize+18, in.Code, 10, ink).Bold().Boxed(qrSize+16, document.AlignCenter),
		document.Text(qrX-8, qrY+qrSize+34, "Pindai saat registrasi ulang", 8, muted).Boxed(qrSize+16, document.AlignCenter),
	)

	footerTop := panelTop + panelHeight + 28
	out = append(out,
		document.Line(m, footerTop, m+cw, footerTop, 0.6, hairline),
		document.Text(m, footerTop+14, "Tunjukkan tiket ini (cetak atau layar ponsel) kepada panitia saat registrasi ulang.", 9, muted),
		document.Text(m, footerTop+28, "Tiket berlaku untuk satu orang dan tidak dapat dipindahtangankan.", 9, muted),
		document.Text(m, footerTop+50, "Diselenggarakan oleh "+in.Event.OrganizerName+" - "+in.Event.OrganizerEmail, 9, ink),
		document.Text(m, footerTop+64, "Diterbitkan "+in.IssuedAt.Format(issuedLayout), 8, muted),
	)

	return out
}
