package uploads

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// Kind selects the fixed subdirectory an image lands in. The relative path
// returned by Save is what gets persisted on the catalog record.
type Kind string

const (
	KindProductImage     Kind = "product-images"
	KindManufacturerLogo Kind = "manufacturer-logos"
)

var (
	ErrNoFile          = errors.New("no file provided")
	ErrUnsupportedType = errors.New("invalid file type. Allowed: PNG, JPG, JPEG, GIF, WEBP")
)

var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"webp": true,
}

// Saver writes uploaded images under Root. Files are never cleaned up when a
// record is later updated or deleted; orphans are accepted.
type Saver struct {
	Root string
}

// Save validates the upload and writes it to <Root>/<kind>/, creating the
// subdirectory if absent. The filename is derived from the display-name hint:
// lowercased, every non-alphanumeric rune replaced with an underscore, then
// the current Unix timestamp and the original extension. Logos additionally
// carry a "_logo" marker. Returns the relative path "<kind>/<filename>".
func (s *Saver) Save(kind Kind, displayName, originalFilename string, src io.Reader) (string, error) {
	if originalFilename == "" {
		return "", ErrNoFile
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalFilename), "."))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}

	var filename string
	switch kind {
	case KindManufacturerLogo:
		filename = fmt.Sprintf("%s_logo_%d.%s", safeName(displayName), time.Now().Unix(), ext)
	default:
		filename = fmt.Sprintf("%s_%d.%s", safeName(displayName), time.Now().Unix(), ext)
	}

	dir := filepath.Join(s.Root, string(kind))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return string(kind) + "/" + filename, nil
}

func safeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
