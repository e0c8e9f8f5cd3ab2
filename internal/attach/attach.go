// Package attach moves images embedded as base64 data URIs in node text out
// into files next to the document.
package attach

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/lherron/joplin2fnx/internal/feather"
)

// Config holds export configuration.
type Config struct {
	Dir       string // Directory image files are written to
	SrcPrefix string // Prefix for rewritten src attributes, e.g. "notes_exports"
	MaxMB     int64  // Maximum image size in MB (0 = unlimited)
}

// Image describes one exported file.
type Image struct {
	Node     string `json:"node" yaml:"node"`
	File     string `json:"file" yaml:"file"`
	MimeType string `json:"mime_type" yaml:"mime_type"`
	Size     int64  `json:"size" yaml:"size"`
	Checksum string `json:"checksum" yaml:"checksum"`
	Reused   bool   `json:"reused,omitempty" yaml:"reused,omitempty"`
}

var (
	imgTag  = regexp.MustCompile(`(?is)<img\b[^>]*>`)
	dataSrc = regexp.MustCompile(`(?is)src\s*=\s*"data:([^;",]*);base64,([^"]+)"`)
)

// ExportImages rewrites every base64 <img> in doc to point at a file under
// cfg.Dir. Files are named image1, image2, ... in document order with an
// extension sniffed from their content. Identical payloads share one file.
// Images that fail to decode or exceed the size limit are left inline and
// reported in the returned error list.
func ExportImages(doc *feather.Document, cfg Config) ([]Image, []error) {
	var (
		images []Image
		errs   []error
		count  int
		byHash = map[string]string{}
	)

	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, []error{fmt.Errorf("failed to create export directory: %w", err)}
	}

	_ = doc.Walk(func(ancestors []string, n *feather.Node) error {
		nodePath := strings.Join(append(append([]string(nil), ancestors...), n.Name), "/")
		n.Text = imgTag.ReplaceAllStringFunc(n.Text, func(tag string) string {
			m := dataSrc.FindStringSubmatchIndex(tag)
			if m == nil {
				return tag
			}
			payload := tag[m[4]:m[5]]
			data, err := decode(payload)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", nodePath, err))
				return tag
			}
			if err := ValidateSize(int64(len(data)), cfg.MaxMB); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", nodePath, err))
				return tag
			}

			sum := sha256.Sum256(data)
			checksum := hex.EncodeToString(sum[:])
			mtype := mimetype.Detect(data)

			name, reused := byHash[checksum]
			if !reused {
				count++
				name = fmt.Sprintf("image%d%s", count, extension(mtype))
				if err := os.WriteFile(filepath.Join(cfg.Dir, name), data, 0644); err != nil {
					errs = append(errs, fmt.Errorf("%s: failed to write image: %w", nodePath, err))
					count--
					return tag
				}
				byHash[checksum] = name
			}

			src := name
			if cfg.SrcPrefix != "" {
				src = path.Join(cfg.SrcPrefix, name)
			}
			images = append(images, Image{
				Node:     nodePath,
				File:     filepath.Join(cfg.Dir, name),
				MimeType: mtype.String(),
				Size:     int64(len(data)),
				Checksum: checksum,
				Reused:   reused,
			})
			return tag[:m[0]] + `src="` + src + `"` + tag[m[1]:]
		})
		return nil
	})

	return images, errs
}

func decode(payload string) ([]byte, error) {
	payload = strings.Join(strings.Fields(payload), "")
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
	}
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image: %w", err)
	}
	return data, nil
}

func extension(mtype *mimetype.MIME) string {
	if ext := mtype.Extension(); ext != "" {
		return ext
	}
	return ".bin"
}

// ValidateSize checks if an image size is within limits.
func ValidateSize(size int64, maxMB int64) error {
	if maxMB <= 0 {
		return nil // No limit
	}

	maxBytes := maxMB * 1024 * 1024
	if size > maxBytes {
		return fmt.Errorf("image size %d bytes exceeds limit of %d MB", size, maxMB)
	}

	return nil
}
