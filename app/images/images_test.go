package images

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDisk records operations in memory, standing in for local/S3 disks.
type fakeDisk struct {
	files   map[string][]byte
	putErr  error
	deleted []string
}

func newFakeDisk() *fakeDisk {
	return &fakeDisk{files: map[string][]byte{}}
}

func (f *fakeDisk) Put(path string, content []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.files[path] = content
	return nil
}

func (f *fakeDisk) PutStream(path string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return f.Put(path, data)
}

func (f *fakeDisk) Get(path string) ([]byte, error) {
	data, ok := f.files[path]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func (f *fakeDisk) GetStream(path string) (io.ReadCloser, error) {
	data, err := f.Get(path)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(strings.NewReader(string(data))), nil
}

func (f *fakeDisk) Exists(path string) bool         { _, ok := f.files[path]; return ok }
func (f *fakeDisk) Size(path string) (int64, error) { return int64(len(f.files[path])), nil }
func (f *fakeDisk) URL(path string) string          { return "/uploads/" + path }

func (f *fakeDisk) Delete(path string) error {
	delete(f.files, path)
	f.deleted = append(f.deleted, path)
	return nil
}

func TestInlineIngestRoundTrip(t *testing.T) {
	s := inlineStrategy{}
	payload := []byte{0xFF, 0xD8, 0xFF, 0xE0} // JPEG magic

	stored, err := s.Ingest(context.Background(), Upload{
		Filename:    "mug.jpg",
		ContentType: "image/jpeg",
		Data:        payload,
	})
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(stored.Ref, "data:image/jpeg;base64,"))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(stored.Ref, "data:image/jpeg;base64,"))
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestInlineSniffsMissingContentType(t *testing.T) {
	s := inlineStrategy{}

	stored, err := s.Ingest(context.Background(), Upload{
		Filename: "pic",
		Data:     []byte("\x89PNG\r\n\x1a\nrest-of-png"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.Ref, "data:image/png;"), "got %q", stored.Ref)
}

func TestInlineDiscardIsNoOp(t *testing.T) {
	s := inlineStrategy{}
	assert.NoError(t, s.Discard(context.Background(), Stored{Ref: "data:..."}))
}

func TestObjectIngestAndDiscard(t *testing.T) {
	disk := newFakeDisk()
	s := &objectStrategy{name: "disk", disk: disk}

	stored, err := s.Ingest(context.Background(), Upload{
		Filename: "mug shot.jpg",
		Data:     []byte("bytes"),
	})
	require.NoError(t, err)

	require.Len(t, disk.files, 1)
	assert.True(t, strings.HasPrefix(stored.Ref, "/uploads/"))
	assert.Contains(t, stored.Ref, "mug_shot.jpg")

	require.NoError(t, s.Discard(context.Background(), stored))
	assert.Empty(t, disk.files)
}

func TestObjectIngestPropagatesPutError(t *testing.T) {
	disk := newFakeDisk()
	disk.putErr = errors.New("disk full")
	s := &objectStrategy{name: "disk", disk: disk}

	_, err := s.Ingest(context.Background(), Upload{Filename: "a.jpg", Data: []byte("x")})
	assert.Error(t, err)
}

func TestObjectDiscardWithoutKeyIsNoOp(t *testing.T) {
	disk := newFakeDisk()
	s := &objectStrategy{name: "disk", disk: disk}

	require.NoError(t, s.Discard(context.Background(), Stored{}))
	assert.Empty(t, disk.deleted)
}

func TestObjectNameIsUniquePerCall(t *testing.T) {
	a := objectName("mug.jpg")
	b := objectName("mug.jpg")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, "-mug.jpg"))
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"mug.jpg":           "mug.jpg",
		"../../etc/passwd":  "passwd",
		"my photo (1).png":  "my_photo__1_.png",
		"":                  "image",
		"säree.jpg":         "s_ree.jpg",
		"UPPER-case_ok.JPG": "UPPER-case_ok.JPG",
	}
	for in, want := range cases {
		assert.Equal(t, want, sanitizeFilename(in), "input %q", in)
	}
}
