package source

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-wpimport/internal/wxr"
)

// ErrNoDocument marks archives and folders that contain no valid export
// document.
var ErrNoDocument = errors.New("source: no valid export document found")

// Options control archive handling.
type Options struct {
	// MediaDir is the destination media directory; archives are extracted
	// under its import/ subfolder.
	MediaDir string
	// AllowExtracted permits reusing a folder left behind by a previous
	// extraction of the same archive.
	AllowExtracted bool
}

// Source is a located, validated import source.
type Source struct {
	// DocumentPath is the validated XML document.
	DocumentPath string
	// AttachmentsDir is the resolved attachments folder, empty when none was
	// found.
	AttachmentsDir string
	// ExtractedPath is the extraction folder when the input was an archive.
	ExtractedPath string
}

// Reserved attachment folder names looked for next to the document.
var reservedAttachmentDirs = []string{
	"b2evolution_export_files",
	"wordpress_export_files",
	"files",
	"attachments",
}

// Locate resolves a user-supplied path (XML/TXT document or ZIP archive) to
// a validated document plus its attachments folder.
func Locate(path string, opts Options) (*Source, error) {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(name, ".xml") || strings.HasSuffix(name, ".txt"):
		if err := wxr.CheckFile(path); err != nil {
			return nil, err
		}
		return &Source{
			DocumentPath:   path,
			AttachmentsDir: attachmentsDir(path, false),
		}, nil

	case strings.HasSuffix(name, ".zip"):
		return locateInArchive(path, opts)

	default:
		return nil, fmt.Errorf("source: %s has an unrecognized extension", filepath.Base(path))
	}
}

func locateInArchive(archivePath string, opts Options) (*Source, error) {
	folderName := strings.TrimSuffix(filepath.Base(archivePath), filepath.Ext(archivePath))
	extractedPath := filepath.Join(opts.MediaDir, "import", folderName)

	info, err := os.Stat(extractedPath)
	folderExists := err == nil && info.IsDir()

	if folderExists && !opts.AllowExtracted {
		return nil, fmt.Errorf("source: destination folder %s already exists, delete it first or allow reusing it", extractedPath)
	}
	if !folderExists {
		if err := extractArchive(archivePath, extractedPath); err != nil {
			return nil, err
		}
	}

	docPath, err := findDocument(extractedPath)
	if err != nil {
		// Leave nothing behind when the archive holds no usable document.
		os.RemoveAll(extractedPath)
		return nil, err
	}

	return &Source{
		DocumentPath:   docPath,
		AttachmentsDir: attachmentsDir(docPath, true),
		ExtractedPath:  extractedPath,
	}, nil
}

// findDocument searches the extraction root, then one level of subfolders,
// for the first .xml or .txt entry that passes structural validation.
func findDocument(root string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("source: read %s: %w", root, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for pass := 1; pass <= 2; pass++ {
		for _, entry := range entries {
			if pass == 1 {
				if entry.IsDir() {
					continue
				}
				if path := checkCandidate(filepath.Join(root, entry.Name())); path != "" {
					return path, nil
				}
				continue
			}
			if !entry.IsDir() {
				continue
			}
			subdir := filepath.Join(root, entry.Name())
			subentries, err := os.ReadDir(subdir)
			if err != nil {
				continue
			}
			for _, sub := range subentries {
				if sub.IsDir() {
					continue
				}
				if path := checkCandidate(filepath.Join(subdir, sub.Name())); path != "" {
					return path, nil
				}
			}
		}
	}
	return "", ErrNoDocument
}

func checkCandidate(path string) string {
	name := strings.ToLower(filepath.Base(path))
	if !strings.HasSuffix(name, ".xml") && !strings.HasSuffix(name, ".txt") {
		return ""
	}
	if err := wxr.CheckFile(path); err != nil {
		return ""
	}
	return path
}

// attachmentsDir looks for a reserved attachments folder next to the
// document. When useFirstFolder is set (archive layouts vary too much for
// fixed names) the first sibling folder serves as a generic fallback.
func attachmentsDir(docPath string, useFirstFolder bool) string {
	dir := filepath.Dir(docPath)

	for _, reserved := range reservedAttachmentDirs {
		candidate := filepath.Join(dir, reserved)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
	}

	if useFirstFolder {
		entries, err := os.ReadDir(dir)
		if err == nil {
			sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
			for _, entry := range entries {
				if entry.IsDir() {
					return filepath.Join(dir, entry.Name())
				}
			}
		}
	}
	return ""
}

func extractArchive(archivePath, dest string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("source: open archive %s: %w", archivePath, err)
	}
	defer reader.Close()

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("source: create %s: %w", dest, err)
	}

	for _, entry := range reader.File {
		if err := extractEntry(entry, dest); err != nil {
			os.RemoveAll(dest)
			return err
		}
	}
	return nil
}

func extractEntry(entry *zip.File, dest string) error {
	target := filepath.Join(dest, filepath.FromSlash(entry.Name))
	// Refuse entries that escape the destination folder.
	if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
		return fmt.Errorf("source: archive entry %s escapes destination", entry.Name)
	}

	if entry.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	in, err := entry.Open()
	if err != nil {
		return fmt.Errorf("source: read archive entry %s: %w", entry.Name, err)
	}
	defer in.Close()

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("source: create %s: %w", target, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("source: extract %s: %w", entry.Name, err)
	}
	return out.Close()
}
