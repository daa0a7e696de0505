package pets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime"
	"path/filepath"
	"strings"

	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/services"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"
)

// allowedImageTypes maps accepted content types to the extension used for stored objects.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// allowedExtensions are the client filename extensions accepted for uploads.
// A name without an extension is accepted and stored under the sniffed type.
var allowedExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

func checkFilename(name string) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" || allowedExtensions[ext] {
		return nil
	}
	return fmt.Errorf("%w: .%s files are not accepted", services.ErrUnsupportedMedia, ext)
}

type imageInfo struct {
	ContentType string
	Ext         string
	Width       int
	Height      int
}

func baseMediaType(ct string) string {
	if mt, _, err := mime.ParseMediaType(ct); err == nil {
		return strings.ToLower(mt)
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

// inspectImage checks the declared type, the size limit and the sniffed
// content, then decodes the image header for its dimensions.
func inspectImage(declared string, data []byte, maxSize int64) (*imageInfo, error) {
	declared = baseMediaType(declared)
	if _, ok := allowedImageTypes[declared]; !ok {
		return nil, fmt.Errorf("%w: %q is not an accepted image type", services.ErrUnsupportedMedia, declared)
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w: limit is %d bytes", services.ErrFileTooLarge, maxSize)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: file is empty", services.ErrInvalidInput)
	}

	sniffed := baseMediaType(mimetype.Detect(data).String())
	ext, ok := allowedImageTypes[sniffed]
	if !ok {
		return nil, fmt.Errorf("%w: content is %s", services.ErrUnsupportedMedia, sniffed)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable image: %v", services.ErrUnsupportedMedia, err)
	}

	return &imageInfo{ContentType: sniffed, Ext: ext, Width: cfg.Width, Height: cfg.Height}, nil
}
