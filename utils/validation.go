package utils

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// AllowedImageContentTypes is the set of allowed content types for menu images.
var AllowedImageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// MaxUploadSize is the maximum allowed file size for uploads (5MB).
const MaxUploadSize = 5 << 20

var (
	ErrFileTooLarge     = errors.New("file exceeds maximum allowed size of 5MB")
	ErrUnsupportedImage = errors.New("unsupported image type; allowed types: image/jpeg, image/png, image/webp, image/gif")
)

// DetectImageType checks the upload size and sniffs the first bytes of the
// file instead of trusting the client's Content-Type. The file is rewound
// before returning.
func DetectImageType(fh *multipart.FileHeader, file multipart.File) (string, error) {
	if fh.Size > MaxUploadSize {
		return "", fmt.Errorf("%w (got %d bytes)", ErrFileTooLarge, fh.Size)
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}

	contentType := http.DetectContentType(head[:n])
	if !AllowedImageContentTypes[contentType] {
		return "", fmt.Errorf("%w (got %s)", ErrUnsupportedImage, contentType)
	}
	return contentType, nil
}

// SanitizeValidationError takes a validator error and returns a user-friendly message
// without leaking internal Go struct names.
func SanitizeValidationError(err error) string {
	if err == nil {
		return ""
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Invalid request body"
	}

	var messages []string
	for _, fe := range validationErrors {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", field))
		}
	}

	if len(messages) == 0 {
		return "Invalid request body"
	}

	return strings.Join(messages, "; ")
}
