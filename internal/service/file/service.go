package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Import for PNG decoding support
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/storage"
	"golang.org/x/image/draw"
)

const (
	// Photos up to this size are stored as uploaded.
	maxPhotoSize = 150 * 1024
	// Resized photos aim for this size.
	targetPhotoSize = 100 * 1024

	minPhotoWidth  = 600
	minPhotoHeight = 400
)

type FileService interface {
	// UploadClockInPhoto stores the photo taken at clock-in and returns its key
	UploadClockInPhoto(ctx context.Context, employeeID string, date time.Time, file io.Reader, filename string) (string, error)

	DeleteFile(ctx context.Context, key string) error

	// FileURL returns the public URL of a stored key
	FileURL(key string) string
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// ClockInPhotoKey is where the clock-in photo of an employee's day is stored.
func ClockInPhotoKey(employeeID string, date time.Time, ext string) string {
	return fmt.Sprintf("attendance/%s/%s/clock_in%s", employeeID, date.Format("2006-01-02"), ext)
}

// UploadClockInPhoto implements FileService. Oversized photos are re-encoded as
// JPEG and downscaled until they fit.
func (s *fileServiceImpl) UploadClockInPhoto(ctx context.Context, employeeID string, date time.Time, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", attendance.ErrInvalidPhoto
	}

	buffer, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	contentType := "image/jpeg"
	if ext == ".png" {
		contentType = "image/png"
	}

	if len(buffer) > maxPhotoSize {
		buffer, err = compressImage(buffer, maxPhotoSize)
		if err != nil {
			return "", err
		}
		ext, contentType = ".jpg", "image/jpeg"
	}

	key, err := s.storage.Upload(ctx, bytes.NewReader(buffer), ClockInPhotoKey(employeeID, date, ext), contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload clock-in photo: %w", err)
	}

	return key, nil
}

// DeleteFile implements FileService. A missing file is not an error.
func (s *fileServiceImpl) DeleteFile(ctx context.Context, key string) error {
	if err := s.storage.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	return nil
}

// FileURL implements FileService.
func (s *fileServiceImpl) FileURL(key string) string {
	return s.storage.URL(key)
}

// compressImage re-encodes an image as JPEG with decreasing quality and, if that
// is not enough, downscales it towards targetPhotoSize.
func compressImage(buffer []byte, maxSize int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", attendance.ErrInvalidPhoto, err)
	}

	var compressed []byte
	for quality := 85; quality >= 50; quality -= 5 {
		compressed, err = encodeJPEG(img, quality)
		if err != nil {
			return nil, err
		}
		if len(compressed) <= maxSize {
			return compressed, nil
		}
	}

	bounds := img.Bounds()
	ratio := math.Sqrt(float64(targetPhotoSize) / float64(len(compressed)))
	width := max(int(float64(bounds.Dx())*ratio), minPhotoWidth)
	height := max(int(float64(bounds.Dy())*ratio), minPhotoHeight)

	return encodeJPEG(resizeImage(img, width, height), 70)
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// resizeImage scales src to width x height with CatmullRom interpolation.
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
