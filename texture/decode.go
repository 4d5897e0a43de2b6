package texture

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/webp"
)

// intermediatePattern names the temporary bitmap handed to texconv
const intermediatePattern = ".texdds-*.bmp"

// maxSVGSide caps the rasterized size of vector inputs with absurd view boxes
const maxSVGSide = 16384

// DecodeImage reads any supported raster or vector image into memory
func DecodeImage(path string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return rasterizeSVG(path)
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// rasterizeSVG renders an SVG file at the size of its view box
func rasterizeSVG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open svg: %w", err)
	}
	defer func() { _ = f.Close() }()

	icon, err := oksvg.ReadIconStream(f, oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}

	w, h := int(icon.ViewBox.W), int(icon.ViewBox.H)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("svg has no usable view box (%gx%g)", icon.ViewBox.W, icon.ViewBox.H)
	}
	if w > maxSVGSide || h > maxSVGSide {
		return nil, fmt.Errorf("svg view box %dx%d exceeds %d pixels", w, h, maxSVGSide)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	return rgba, nil
}

// WriteIntermediate encodes img as an uncompressed BMP in dir and returns its path.
// The file name is unique so concurrent conversions into one directory never collide.
func WriteIntermediate(img image.Image, dir string) (string, error) {
	f, err := os.CreateTemp(dir, intermediatePattern)
	if err != nil {
		return "", fmt.Errorf("failed to create intermediate bitmap: %w", err)
	}
	path := f.Name()

	if err := imaging.Encode(f, img, imaging.BMP); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to encode intermediate bitmap: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write intermediate bitmap: %w", err)
	}

	return path, nil
}
