package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const productPicDir = "./static/productpic"

// SaveProductImage decodes an uploaded image, stores it under the product
// picture directory and writes a 300px-wide thumbnail next to it. It returns
// the public URL of the stored image.
func SaveProductImage(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open image file: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	fileName := uuid.New().String() + ".jpg"
	thumbDir := filepath.Join(productPicDir, "thumb")

	if err := EnsureDir(productPicDir); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := EnsureDir(thumbDir); err != nil {
		return "", fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	if err := imaging.Save(img, filepath.Join(productPicDir, fileName)); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	thumbImg := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumbImg, filepath.Join(thumbDir, fileName)); err != nil {
		return "", fmt.Errorf("failed to save thumbnail: %w", err)
	}

	return "/static/productpic/" + fileName, nil
}
