package service

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

const (
	ImageSizeThumb  = "thumb"
	ImageSizeMedium = "medium"

	// Quality settings
	qualityThumb  = 60
	qualityMedium = 75
	// Size settings (max dimension)
	maxSizeThumb  = 300
	maxSizeMedium = 800
)

// ImageCache stores optimized images on disk
type ImageCache struct {
	dir string
}

func NewImageCache(dir string) *ImageCache {
	return &ImageCache{dir: dir}
}

// Path returns the cache file path for a product image of the given size.
// The Drive file ID is part of the name so replacing the image invalidates the cache.
func (c *ImageCache) Path(productID, fileID, size string) string {
	filename := fmt.Sprintf("product_%s_%s_%s.jpg", productID, fileID, size)
	return filepath.Join(c.dir, filepath.Base(filename))
}

// Read returns the cached bytes, or ok=false when nothing is cached
func (c *ImageCache) Read(path string) ([]byte, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Write saves an image to the cache
func (c *ImageCache) Write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	zap.L().Debug("✓ Image cached", zap.String("path", path))
	return nil
}

// OptimizeImage decodes any supported image, fits it inside the size's max dimension
// keeping aspect ratio, and re-encodes it as JPEG.
func OptimizeImage(imageData []byte, size string) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(imageData), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var maxDim, quality int
	switch size {
	case ImageSizeThumb:
		maxDim, quality = maxSizeThumb, qualityThumb
	case ImageSizeMedium:
		maxDim, quality = maxSizeMedium, qualityMedium
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidImageSize, size)
	}

	bounds := img.Bounds()
	resized := imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	zap.L().Debug("✓ Image optimized",
		zap.String("size", size),
		zap.Int("srcWidth", bounds.Dx()), zap.Int("srcHeight", bounds.Dy()),
		zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}
