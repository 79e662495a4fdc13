package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"log"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

const (
	cacheDir = "cache/images"
	// Quality settings
	qualityThumb  = 60
	qualityMedium = 75
	// Size settings (max dimension)
	maxSizeThumb  = 300
	maxSizeMedium = 800
)

// ImageService serves resized JPEG variants of product image files,
// caching the output on disk
type ImageService struct {
	sourceDir string
}

// NewImageService creates an ImageService reading originals from
// sourceDir
func NewImageService(sourceDir string) (*ImageService, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &ImageService{sourceDir: sourceDir}, nil
}

// cachePath returns the cache file path for a given image file and size
func (s *ImageService) cachePath(file, size string) string {
	return filepath.Join(cacheDir, fmt.Sprintf("%s_%s.jpg", file, size))
}

// Variant returns the optimized JPEG bytes for a product image at the
// requested size ("thumb" or "medium"), producing and caching the
// variant on first request
func (s *ImageService) Variant(file, size string) ([]byte, error) {
	// filepath.Base strips any path traversal from the requested name
	file = filepath.Base(file)

	cached := s.cachePath(file, size)
	if data, err := os.ReadFile(cached); err == nil {
		return data, nil
	}

	original, err := os.ReadFile(filepath.Join(s.sourceDir, file))
	if err != nil {
		return nil, fmt.Errorf("failed to read product image %s: %w", file, err)
	}

	optimized, err := optimize(original, size)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(cached, optimized, 0644); err != nil {
		// Serving beats caching; log and move on.
		log.Printf("⚠️ Variant: failed to cache %s: %v", cached, err)
	} else {
		log.Printf("✓ Image cached: %s", cached)
	}

	return optimized, nil
}

// optimize converts an image to JPEG and resizes it to the variant's max
// dimension, preserving aspect ratio
func optimize(imageData []byte, size string) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	log.Printf("📸 Image decoded: format=%s, bounds=%v", format, img.Bounds())

	var maxDim, quality int
	switch size {
	case "thumb":
		maxDim = maxSizeThumb
		quality = qualityThumb
	case "medium":
		maxDim = maxSizeMedium
		quality = qualityMedium
	default:
		maxDim = maxSizeMedium
		quality = qualityMedium
		log.Printf("⚠️  Unknown size '%s', defaulting to medium", size)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var resized image.Image = img
	if width > maxDim || height > maxDim {
		var newWidth, newHeight int
		if width > height {
			newWidth = maxDim
			newHeight = int(float64(height) * float64(maxDim) / float64(width))
		} else {
			newHeight = maxDim
			newWidth = int(float64(width) * float64(maxDim) / float64(height))
		}

		log.Printf("🔄 Resizing image: %dx%d -> %dx%d", width, height, newWidth, newHeight)
		resized = imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
