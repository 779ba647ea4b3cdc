package source

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validDocument = `<?xml version="1.0"?>
<rss xmlns:wp="http://wordpress.org/export/1.1/"><channel><wp:wxr_version>1.1</wp:wxr_version></channel></rss>`

func writeArchive(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range entries {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatalf("create entry %s: %v", name, err)
		}
		if _, err := entry.Write([]byte(content)); err != nil {
			t.Fatalf("write entry %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
}

func TestLocatePlainDocument(t *testing.T) {
	tmp := t.TempDir()
	docPath := filepath.Join(tmp, "export.xml")
	if err := os.WriteFile(docPath, []byte(validDocument), 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}

	src, err := Locate(docPath, Options{MediaDir: tmp})
	if err != nil {
		t.Fatalf("Locate returned error: %v", err)
	}
	if src.DocumentPath != docPath {
		t.Fatalf("unexpected document path %q", src.DocumentPath)
	}
	if src.ExtractedPath != "" {
		t.Fatalf("expected no extraction for plain document, got %q", src.ExtractedPath)
	}
}

func TestLocateRejectsInvalidDocument(t *testing.T) {
	tmp := t.TempDir()
	docPath := filepath.Join(tmp, "bogus.xml")
	if err := os.WriteFile(docPath, []byte("<rss><channel></channel></rss>"), 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}
	if _, err := Locate(docPath, Options{MediaDir: tmp}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLocateRejectsUnknownExtension(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "export.csv")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := Locate(path, Options{MediaDir: tmp}); err == nil || !strings.Contains(err.Error(), "unrecognized extension") {
		t.Fatalf("expected extension error, got %v", err)
	}
}

func TestLocateExtractsArchiveAndFindsDocument(t *testing.T) {
	tmp := t.TempDir()
	mediaDir := filepath.Join(tmp, "media")
	archivePath := filepath.Join(tmp, "export.zip")
	writeArchive(t, archivePath, map[string]string{
		"readme.txt.bak":       "not a doc",
		"nested/export.xml":    validDocument,
		"nested/files/pic.jpg": "jpeg",
	})

	src, err := Locate(archivePath, Options{MediaDir: mediaDir})
	if err != nil {
		t.Fatalf("Locate returned error: %v", err)
	}
	wantExtracted := filepath.Join(mediaDir, "import", "export")
	if src.ExtractedPath != wantExtracted {
		t.Fatalf("unexpected extraction path %q", src.ExtractedPath)
	}
	if src.DocumentPath != filepath.Join(wantExtracted, "nested", "export.xml") {
		t.Fatalf("unexpected document path %q", src.DocumentPath)
	}
	if src.AttachmentsDir != filepath.Join(wantExtracted, "nested", "files") {
		t.Fatalf("expected reserved files folder, got %q", src.AttachmentsDir)
	}
}

func TestLocateRefusesExistingExtractionFolder(t *testing.T) {
	tmp := t.TempDir()
	mediaDir := filepath.Join(tmp, "media")
	archivePath := filepath.Join(tmp, "export.zip")
	writeArchive(t, archivePath, map[string]string{"export.xml": validDocument})

	if err := os.MkdirAll(filepath.Join(mediaDir, "import", "export"), 0o755); err != nil {
		t.Fatalf("prepare folder: %v", err)
	}

	if _, err := Locate(archivePath, Options{MediaDir: mediaDir}); err == nil {
		t.Fatal("expected refusal for existing extraction folder")
	}

	// Allowing reuse searches the existing folder instead of re-extracting.
	docPath := filepath.Join(mediaDir, "import", "export", "export.xml")
	if err := os.WriteFile(docPath, []byte(validDocument), 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}
	src, err := Locate(archivePath, Options{MediaDir: mediaDir, AllowExtracted: true})
	if err != nil {
		t.Fatalf("Locate with AllowExtracted returned error: %v", err)
	}
	if src.DocumentPath != docPath {
		t.Fatalf("unexpected document path %q", src.DocumentPath)
	}
}

func TestLocateCleansUpWhenArchiveHasNoDocument(t *testing.T) {
	tmp := t.TempDir()
	mediaDir := filepath.Join(tmp, "media")
	archivePath := filepath.Join(tmp, "nodoc.zip")
	writeArchive(t, archivePath, map[string]string{"images/pic.jpg": "jpeg"})

	_, err := Locate(archivePath, Options{MediaDir: mediaDir})
	if !errors.Is(err, ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(mediaDir, "import", "nodoc")); !os.IsNotExist(err) {
		t.Fatal("expected extraction folder to be removed")
	}
}
