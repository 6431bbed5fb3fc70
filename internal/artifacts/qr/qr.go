// Package qr turns a ticket code into the two image forms the pipeline needs:
// a locally rendered PNG for PDF embedding and a hosted URL for HTML email.
package qr

import (
	"errors"
	"fmt"
	"net/url"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	DefaultPublicBaseURL = "https://api.qrserver.com/v1/create-qr-code/?size=250x250&data="
	DefaultSize          = 256
)

var ErrEmptyPayload = errors.New("qr payload is empty")

type Artifact struct {
	Raster    []byte
	PublicURL string
}

type Producer struct {
	publicBaseURL string
	size          int
}

func NewProducer(publicBaseURL string, size int) *Producer {
	if publicBaseURL == "" {
		publicBaseURL = DefaultPublicBaseURL
	}
	if size <= 0 {
		size = DefaultSize
	}
	return &Producer{publicBaseURL: publicBaseURL, size: size}
}

// Encode renders payload locally; the public URL is built, never fetched.
func (p *Producer) Encode(payload string) (Artifact, error) {
	if payload == "" {
		return Artifact{}, ErrEmptyPayload
	}

	png, err := qrcode.Encode(payload, qrcode.Medium, p.size)
	if err != nil {
		return Artifact{}, fmt.Errorf("encode qr png: %w", err)
	}

	return Artifact{
		Raster:    png,
		PublicURL: p.publicBaseURL + url.QueryEscape(payload),
	}, nil
}
