package files

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPlaceCopiesIntoRoot(t *testing.T) {
	tmp := t.TempDir()
	storage := New(filepath.Join(tmp, "media"))

	src := filepath.Join(tmp, "photo.jpg")
	if err := os.WriteFile(src, []byte("jpeg bytes"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	root := storage.CollectionRoot("demo")
	rel, err := storage.Place(src, root, "2020/01/photo.jpg")
	if err != nil {
		t.Fatalf("Place returned error: %v", err)
	}
	if rel != "2020/01/photo.jpg" {
		t.Fatalf("unexpected relative path %q", rel)
	}

	data, err := os.ReadFile(filepath.Join(root, "2020", "01", "photo.jpg"))
	if err != nil {
		t.Fatalf("read placed file: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestPlaceNeverOverwrites(t *testing.T) {
	tmp := t.TempDir()
	storage := New(filepath.Join(tmp, "media"))

	src := filepath.Join(tmp, "photo.jpg")
	if err := os.WriteFile(src, []byte("second"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	root := storage.SharedRoot()
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("prepare root: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "photo.jpg"), []byte("first"), 0o644); err != nil {
		t.Fatalf("write existing: %v", err)
	}

	rel, err := storage.Place(src, root, "photo.jpg")
	if err != nil {
		t.Fatalf("Place returned error: %v", err)
	}
	if rel != "photo-1.jpg" {
		t.Fatalf("expected numbered rename, got %q", rel)
	}

	existing, _ := os.ReadFile(filepath.Join(root, "photo.jpg"))
	if string(existing) != "first" {
		t.Fatalf("existing file was overwritten: %q", existing)
	}
}

func TestPlaceRejectsMissingSource(t *testing.T) {
	tmp := t.TempDir()
	storage := New(tmp)
	if _, err := storage.Place(filepath.Join(tmp, "absent.png"), storage.SharedRoot(), "absent.png"); err == nil {
		t.Fatal("expected error for missing source file")
	}
}

func TestRemoveIgnoresMissingFile(t *testing.T) {
	storage := New(t.TempDir())
	if err := storage.Remove(storage.SharedRoot(), "never/was/there.png"); err != nil {
		t.Fatalf("expected nil for missing file, got %v", err)
	}
}
