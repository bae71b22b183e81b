// Package images converts uploaded image payloads into the reference string
// stored on a product record.
//
// The strategy is picked once per deployment (IMAGE_STRATEGY env), never per
// request:
//
//	inline — the bytes are embedded in the record as a base64 data URI
//	disk   — the bytes land in the local uploads directory, served under /uploads
//	s3     — the bytes land in an S3-compatible bucket, referenced by URL
package images

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/shashiranjanraj/tokri/pkg/storage"
)

// Upload is one image payload lifted out of a multipart request.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Stored is the outcome of an ingest: Ref is the value persisted on the
// product record; key identifies the stored object for Discard (empty for
// the inline strategy, which stores nothing outside the record).
type Stored struct {
	Ref string
	key string
}

// Strategy turns an upload into a storable reference and can undo it.
type Strategy interface {
	Name() string

	// Ingest stores the payload and returns the reference to persist.
	Ingest(ctx context.Context, up Upload) (Stored, error)

	// Discard is the compensating cleanup for a successful Ingest whose
	// record insert later failed; it removes the stored object so no
	// orphan survives.
	Discard(ctx context.Context, s Stored) error
}

// ForName builds the strategy selected by config. The disk and s3 variants
// require their storage disks to be booted first (storage.Connect).
func ForName(name string) (Strategy, error) {
	switch name {
	case "inline":
		return inlineStrategy{}, nil
	case "disk":
		return &objectStrategy{name: "disk", disk: storage.Use("local")}, nil
	case "s3":
		if !storage.Has("s3") {
			return nil, fmt.Errorf("images: IMAGE_STRATEGY=s3 but no S3 disk is configured")
		}
		return &objectStrategy{name: "s3", disk: storage.Use("s3")}, nil
	default:
		return nil, fmt.Errorf("images: unknown strategy %q", name)
	}
}

// contentType returns the declared MIME type, sniffing the payload when the
// client sent none.
func contentType(up Upload) string {
	if up.ContentType != "" {
		return up.ContentType
	}
	return http.DetectContentType(up.Data)
}

// objectName builds a unique storage key for an upload: a random 8-byte hex
// token plus the sanitized original filename. Wall-clock prefixes collide
// under concurrent uploads; random tokens do not.
func objectName(filename string) string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b) + "-" + sanitizeFilename(filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(filepath.ToSlash(name))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if name == "" || name == "." {
		name = "image"
	}
	return name
}
