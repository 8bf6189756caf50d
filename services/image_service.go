package services

import (
	"fmt"
	"image"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/fitaafita/backend/utils"

	// Registered decoders for the upload formats we accept
	_ "image/gif"
	_ "image/png"
)

// Fixed output dimensions for the two upload kinds
const (
	TourImageWidth  = 2000
	TourImageHeight = 1333
	UserPhotoSize   = 500

	jpegQuality = 90
)

// SaveResizedJPEG decodes an uploaded image, scales it to the exact target
// dimensions and persists it as JPEG under dir. The stored filename is
// prefix plus a random component.
func SaveResizedJPEG(file *multipart.FileHeader, dir, prefix string, width, height int) (string, error) {
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image") {
		return "", utils.NewAppError("Not an image! Please upload only images.", http.StatusBadRequest)
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return "", utils.NewAppError("Not an image! Please upload only images.", http.StatusBadRequest)
	}

	resized := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(resized, resized.Bounds(), img, img.Bounds(), draw.Src, nil)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s-%s.jpeg", prefix, uuid.NewString())
	out, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", err
	}
	defer out.Close()

	if err := jpeg.Encode(out, resized, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", err
	}
	return filename, nil
}
