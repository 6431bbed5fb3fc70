package layout

import (
	"github.com/geocoder89/ticketdesk/internal/artifacts/document"
)

// ReceiptNumber derives the receipt reference from the ticket code.
func ReceiptNumber(code string) string {
	return "KW-" + code
}

// Receipt lays out a one-item payment receipt using flow rows, so the blocks
// stack regardless of how many contact lines the payer has.
func Receipt(page document.PageSpec, in Input) []document.Instruction {
	m := page.Margin
	cw := page.ContentWidth()
	half := m + cw/2

	amount := FormatRupiah(in.Fee)

	out := []document.Instruction{
		document.Text(m, 0, "KUITANSI", 22, ink).Bold().LetterSpacing(2).InFlow(),
		document.Text(m, 4, "No. "+ReceiptNumber(in.Code), 10, muted).Boxed(cw, document.AlignRight).OnSameRow(),
		document.Text(m, 18, "Tanggal "+in.IssuedAt.Format(issuedLayout), 9, muted).Boxed(cw, document.AlignRight).OnSameRow(),
		document.Line(m, 12, m+cw, 12, 1.2, navy).InFlow(),

		document.Text(m, 22, "DITERIMA DARI", 8, muted).LetterSpacing(1.2).InFlow(),
		document.Text(half, 0, "DIBAYARKAN KEPADA", 8, muted).LetterSpacing(1.2).OnSameRow(),
		document.Text(m, 6, in.Request.Name, 12, ink).Bold().Boxed(cw/2-12, document.AlignLeft).InFlow(),
		document.Text(half, 0, in.Event.OrganizerName, 12, ink).Bold().Boxed(cw/2, document.AlignLeft).OnSameRow(),
		document.Text(m, 4, in.Request.Email, 10, ink).InFlow(),
		document.Text(half, 0, in.Event.OrganizerEmail, 10, ink).OnSameRow(),
	}

	if in.Request.Phone != "" {
		out = append(out, document.Text(m, 4, in.Request.Phone, 10, ink).InFlow())
	}

	amountX := m + cw*0.55
	statusX := m + cw*0.78

	out = append(out,
		document.Rect(m, 28, cw, 24, navy).InFlow(),
		document.Text(m+10, 7, "DESKRIPSI", 8, white).Bold().LetterSpacing(1).OnSameRow(),
		document.Text(amountX, 7, "JUMLAH", 8, white).Bold().LetterSpacing(1).OnSameRow(),
		document.Text(statusX, 7, "STATUS", 8, white).Bold().LetterSpacing(1).OnSameRow(),

		document.Text(m+10, 12, "Registrasi: "+in.Event.Title, 11, ink).Boxed(amountX-m-20, document.AlignLeft).InFlow(),
		document.Text(amountX, 0, amount, 11, ink).OnSameRow(),
		document.Text(statusX, 0, "LUNAS", 11, paid).Bold().OnSameRow(),
		document.Text(m+10, 3, in.Event.DisplayDate+" | "+in.Event.DisplayTime, 9, muted).InFlow(),
		document.Text(m+10, 2, "Tiket "+in.Code, 9, muted).InFlow(),

		document.Line(m, 12, m+cw, 12, 0.6, hairline).InFlow(),
		document.Text(m+10, 10, "TOTAL", 11, ink).Bold().InFlow(),
		document.Text(amountX, 0, amount, 11, ink).Bold().OnSameRow(),
		document.Text(statusX, 0, "PAID", 11, paid).Bold().OnSameRow(),
	)

	stampW := float64(170)
	stampX := m + cw - stampW
	out = append(out,
		document.Text(m, 40, "Pembayaran telah diterima dan dinyatakan lunas.", 9, muted).InFlow(),
		document.RoundedRect(stampX, 8, stampW, 90, 6, panel).InFlow(),
		document.Text(stampX, 38, "Cap & Tanda Tangan", 9, muted).Boxed(stampW, document.AlignCenter).OnSameRow(),
		document.Text(stampX, 56, in.Event.OrganizerName, 8, muted).Boxed(stampW, document.AlignCenter).OnSameRow(),
		document.Text(m, 24, "Dokumen ini dibuat otomatis dan sah tanpa tanda tangan basah.", 8, muted).InFlow(),
	)

	return out
}
