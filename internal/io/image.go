package ioutils

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

// CoverArtNames are the file names looked up by FindCoverArt, in order.
var CoverArtNames = []string{
	"cover.jpg", "cover.jpeg", "cover.png",
	"folder.jpg", "folder.jpeg", "folder.png",
	"front.jpg", "front.png",
}

// FindCoverArt returns the first cover image found in dir.
func FindCoverArt(dir string) (string, bool) {
	for _, name := range CoverArtNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}

// LoadCoverArt reads the image at path and returns it as JPEG bytes that fit
// within maxSize x maxSize. The aspect ratio is preserved and smaller images
// are not enlarged.
//
// Example:
//
//	if path, ok := FindCoverArt(filepath.Dir(src)); ok {
//	    art, err := LoadCoverArt(path, 500)
//	    // embed art as the front cover
//	}
func LoadCoverArt(path string, maxSize int) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ResizeImage(data, maxSize, maxSize)
}

// ResizeImage resizes an image to fit within maxWidth x maxHeight and
// encodes it as JPEG.
//
// The Catmull-Rom kernel is used for scaling.
func ResizeImage(data []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fitWithin scales width x height down to fit the bounds.
func fitWithin(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}

	ratio := float64(width) / float64(height)
	if float64(maxWidth)/float64(maxHeight) > ratio {
		// Height is the limiting factor
		return max(1, int(float64(maxHeight)*ratio)), maxHeight
	}
	// Width is the limiting factor
	return maxWidth, max(1, int(float64(maxWidth)/ratio))
}
