package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Storage places imported media files under the destination media directory,
// mirroring the layout the destination site serves from: shared files under
// shared/global, user files under users/<login>, collection files under
// blogs/<url name>.
type Storage struct {
	mediaDir string
}

func New(mediaDir string) *Storage {
	return &Storage{mediaDir: mediaDir}
}

// MediaDir returns the configured media base directory.
func (s *Storage) MediaDir() string {
	return s.mediaDir
}

// ImportDir is the scratch space archives are extracted into.
func (s *Storage) ImportDir() string {
	return filepath.Join(s.mediaDir, "import")
}

// LogDir is where import log files are written.
func (s *Storage) LogDir() string {
	return filepath.Join(s.ImportDir(), "logs")
}

// SharedRoot is the directory for shared (site-wide) files.
func (s *Storage) SharedRoot() string {
	return filepath.Join(s.mediaDir, "shared", "global")
}

// UserRoot is the media directory of one user.
func (s *Storage) UserRoot(login string) string {
	return filepath.Join(s.mediaDir, "users", login)
}

// CollectionRoot is the media directory of one collection.
func (s *Storage) CollectionRoot(urlName string) string {
	return filepath.Join(s.mediaDir, "blogs", urlName)
}

// Place copies the source file into rootDir at relPath. When a file already
// exists at the destination the base name gets a numeric suffix so the
// existing file is never overwritten. It returns the relative path the file
// ended up at.
func (s *Storage) Place(sourcePath, rootDir, relPath string) (string, error) {
	info, err := os.Stat(sourcePath)
	if err != nil {
		return "", fmt.Errorf("files: source %s: %w", sourcePath, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("files: source %s is a directory", sourcePath)
	}

	relPath = filepath.ToSlash(relPath)
	dir, base := filepath.Split(relPath)

	destDir := filepath.Join(rootDir, filepath.FromSlash(dir))
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("files: create %s: %w", destDir, err)
	}

	finalBase, err := availableName(destDir, base)
	if err != nil {
		return "", err
	}

	if err := copyFile(sourcePath, filepath.Join(destDir, finalBase)); err != nil {
		return "", err
	}
	return dir + finalBase, nil
}

// Remove deletes a previously placed file. A missing file is not an error.
func (s *Storage) Remove(rootDir, relPath string) error {
	err := os.Remove(filepath.Join(rootDir, filepath.FromSlash(relPath)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// availableName returns base unchanged when free, otherwise the first
// "name-N.ext" variant that does not exist yet.
func availableName(dir, base string) (string, error) {
	candidate := base
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for n := 1; ; n++ {
		_, err := os.Stat(filepath.Join(dir, candidate))
		if os.IsNotExist(err) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("files: stat %s: %w", candidate, err)
		}
		candidate = fmt.Sprintf("%s-%d%s", stem, n, ext)
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("files: open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("files: create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("files: copy to %s: %w", dst, err)
	}
	return out.Close()
}
