package service

import (
	"context"

	"go.uber.org/zap"

	"tienda-admin/repository"
)

// ProductImageService serves resized product photos stored in Google Drive
type ProductImageService struct {
	products repository.ProductRepositoryInterface
	drive    DriveServiceInterface
	cache    *ImageCache
}

// NewProductImageService creates a ProductImageService. drive may be nil when no
// credentials are configured; every request then fails with ErrImagesUnavailable.
func NewProductImageService(products repository.ProductRepositoryInterface, drive DriveServiceInterface, cache *ImageCache) *ProductImageService {
	return &ProductImageService{products: products, drive: drive, cache: cache}
}

// GetImage returns the JPEG for a product at size thumb or medium (the default)
func (s *ProductImageService) GetImage(ctx context.Context, productID, size string) ([]byte, error) {
	if size == "" {
		size = ImageSizeMedium
	}
	if size != ImageSizeThumb && size != ImageSizeMedium {
		return nil, ErrInvalidImageSize
	}
	if s.drive == nil {
		return nil, ErrImagesUnavailable
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.ImageDriveFileID == "" {
		return nil, ErrNoImage
	}

	path := s.cache.Path(product.ID, product.ImageDriveFileID, size)
	if data, ok := s.cache.Read(path); ok {
		return data, nil
	}

	raw, err := s.drive.DownloadImage(ctx, product.ImageDriveFileID)
	if err != nil {
		zap.L().Error("❌ GetImage: download failed", zap.String("productId", productID), zap.Error(err))
		return nil, err
	}
	data, err := OptimizeImage(raw, size)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Write(path, data); err != nil {
		zap.L().Warn("⚠️ GetImage: cache write failed", zap.Error(err))
	}
	return data, nil
}
