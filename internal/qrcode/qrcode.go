// Package qrcode renders item labels as QR images and reads them back from photos.
package qrcode

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/makiuchi-d/gozxing"
	zxqr "github.com/makiuchi-d/gozxing/qrcode"
	qr "github.com/skip2/go-qrcode"
)

// DefaultSize is the PNG edge length in pixels.
const DefaultSize = 256

// ErrNoCode means the image holds no readable QR code.
var ErrNoCode = errors.New("no qr code found")

// Encode returns a PNG of content.
func Encode(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, errors.New("qr content is empty")
	}
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qr.Encode(content, qr.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encoding qr: %w", err)
	}
	return png, nil
}

// WriteFile writes a PNG of content to path.
func WriteFile(path, content string, size int) error {
	if size <= 0 {
		size = DefaultSize
	}
	if err := qr.WriteFile(content, qr.Medium, size, path); err != nil {
		return fmt.Errorf("writing qr to %s: %w", path, err)
	}
	return nil
}

// Decode reads the first QR code in a PNG or JPEG image.
func Decode(r io.Reader) (string, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("binarizing image: %w", err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{gozxing.DecodeHintType_TRY_HARDER: true}
	result, err := zxqr.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		var notFound gozxing.NotFoundException
		if errors.As(err, &notFound) {
			return "", ErrNoCode
		}
		return "", fmt.Errorf("%w: %w", ErrNoCode, err)
	}
	return result.GetText(), nil
}
