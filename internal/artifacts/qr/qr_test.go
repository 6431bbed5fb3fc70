package qr

import (
	"bytes"
	"image"
	_ "image/png"
	"testing"

	"github.com/makiuchi-d/gozxing"
	gozxingqr "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raster []byte) string {
	t.Helper()

	img, format, err := image.Decode(bytes.NewReader(raster))
	require.NoError(t, err)
	require.Equal(t, "png", format)

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	require.NoError(t, err)

	res, err := gozxingqr.NewQRCodeReader().Decode(bmp, nil)
	require.NoError(t, err)

	return res.GetText()
}

func TestEncode_RoundTrip(t *testing.T) {
	p := NewProducer("", 0)

	first, err := p.Encode("TIX-9Z8Y7X")
	require.NoError(t, err)
	second, err := p.Encode("TIX-9Z8Y7X")
	require.NoError(t, err)

	assert.Equal(t, "TIX-9Z8Y7X", decode(t, first.Raster))
	assert.Equal(t, decode(t, first.Raster), decode(t, second.Raster))
}

func TestEncode_PublicURL(t *testing.T) {
	p := NewProducer("https://qr.example.com/render?d=", 128)

	art, err := p.Encode("TIX-A B&C")
	require.NoError(t, err)

	assert.Equal(t, "https://qr.example.com/render?d=TIX-A+B%26C", art.PublicURL)
}

func TestEncode_EmptyPayload(t *testing.T) {
	_, err := NewProducer("", 0).Encode("")

	assert.ErrorIs(t, err, ErrEmptyPayload)
}
