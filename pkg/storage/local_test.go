package storage

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func newTestDisk(t *testing.T) *localDisk {
	t.Helper()
	root := filepath.Join(t.TempDir(), "uploads")

	d, err := newLocalDisk(root, "")
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestLocalPutGet(t *testing.T) {
	d := newTestDisk(t)

	if err := d.Put("a1b2-mug.jpg", []byte("fake-jpeg")); err != nil {
		t.Fatal(err)
	}

	got, err := d.Get("a1b2-mug.jpg")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "fake-jpeg" {
		t.Fatalf("content = %q", got)
	}

	if !d.Exists("a1b2-mug.jpg") {
		t.Fatal("Exists = false after Put")
	}

	size, err := d.Size("a1b2-mug.jpg")
	if err != nil || size != int64(len("fake-jpeg")) {
		t.Fatalf("size = %d, err = %v", size, err)
	}
}

func TestLocalPutStream(t *testing.T) {
	d := newTestDisk(t)

	if err := d.PutStream("nested/dir/file.bin", bytes.NewReader([]byte{1, 2, 3})); err != nil {
		t.Fatal(err)
	}

	rc, err := d.GetStream("nested/dir/file.bin")
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()

	data, _ := io.ReadAll(rc)
	if len(data) != 3 {
		t.Fatalf("len = %d", len(data))
	}
}

func TestLocalURL(t *testing.T) {
	d := newTestDisk(t)
	if got := d.URL("pic.jpg"); got != "/uploads/pic.jpg" {
		t.Fatalf("url = %q", got)
	}
}

func TestLocalDeleteIdempotent(t *testing.T) {
	d := newTestDisk(t)

	if err := d.Put("gone.jpg", []byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := d.Delete("gone.jpg"); err != nil {
		t.Fatal(err)
	}
	if d.Exists("gone.jpg") {
		t.Fatal("file survived delete")
	}

	// Deleting again is not an error.
	if err := d.Delete("gone.jpg"); err != nil {
		t.Fatal(err)
	}
}

func TestLocalBootstrapReplacesStrayFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "uploads")
	if err := os.WriteFile(root, []byte("not a directory"), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := newLocalDisk(root, "")
	if err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		t.Fatalf("root is not a directory after bootstrap: %v", err)
	}

	if err := d.Put("ok.txt", []byte("ok")); err != nil {
		t.Fatal(err)
	}
}
