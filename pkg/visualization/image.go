package visualization

import (
	"fmt"
	"image"
	"os"

	// Decoders for background images.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// LoadImage decodes the image at path. GIF, JPEG, PNG, BMP, TIFF and WebP
// are supported.
func LoadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open background image: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to decode image: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%s: empty %s image", path, format)
	}
	return img, nil
}
