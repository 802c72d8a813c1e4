package emoji

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"strings"

	_ "golang.org/x/image/webp"
)

// ConvertToPNG decodes a PNG, JPEG, GIF or WebP image and re-encodes it as an
// RGBA PNG, the format Discord accepts for custom emojis.
func ConvertToPNG(data []byte) ([]byte, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	rgba := image.NewRGBA(src.Bounds())
	draw.Draw(rgba, rgba.Bounds(), src, src.Bounds().Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, fmt.Errorf("encoding %s image as png: %w", format, err)
	}
	return buf.Bytes(), nil
}

// DataURI renders PNG bytes as a data URI for the Discord emoji API.
func DataURI(pngData []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngData)
}

// EmojiName turns an entry name into a valid Discord emoji name.
func EmojiName(name string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(name)
}
