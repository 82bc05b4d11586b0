// Package imaging normalises uploaded equipment photos before they
// reach disk.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

// MaxDimension caps the longer side of a stored photo, in pixels.
const MaxDimension = 1024

const jpegQuality = 85

// Process turns an uploaded photo into storable JPEG bytes. The format
// is sniffed from the payload, never trusted from client headers; only
// JPEG and PNG come through. Oversized photos are scaled down so
// neither side exceeds MaxDimension.
func Process(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}

	switch mime := http.DetectContentType(raw); mime {
	case "image/jpeg", "image/png":
	default:
		return nil, fmt.Errorf("unsupported photo format %s, want JPEG or PNG", mime)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, fit(img), &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode photo: %w", err)
	}
	return out.Bytes(), nil
}

// fit scales the image down to the MaxDimension box, keeping the
// aspect ratio. Photos already inside the box pass through untouched.
func fit(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if longest <= MaxDimension {
		return img
	}

	scale := float64(MaxDimension) / float64(longest)
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func init() {
	image.RegisterFormat("jpeg", "\xff\xd8", jpeg.Decode, jpeg.DecodeConfig)
	image.RegisterFormat("png", "\x89PNG", png.Decode, png.DecodeConfig)
}
