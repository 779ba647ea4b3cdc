package progress

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Reporter receives human-readable progress messages during an import run.
// Messages must reach the reader immediately so a long run stays observable.
type Reporter interface {
	Log(format string, args ...any)
	Success(format string, args ...any)
	Warning(format string, args ...any)
	Error(format string, args ...any)
}

type flusher interface {
	Flush() error
}

// Console writes progress to a live writer and, optionally, to an
// append-only log file.
type Console struct {
	mu   sync.Mutex
	live io.Writer
	file *os.File
}

// NewConsole creates a reporter writing to the given live writer. A nil
// writer discards live output.
func NewConsole(live io.Writer) *Console {
	if live == nil {
		live = io.Discard
	}
	return &Console{live: live}
}

var fileNameSanitizer = regexp.MustCompile(`[^a-z0-9]+`)

// LogFileName builds the import log file name from the source base URL and
// the destination collection slug. The random suffix keeps repeated runs
// from clobbering each other.
func LogFileName(baseURL, collection string, now time.Time) string {
	base := strings.TrimPrefix(strings.TrimPrefix(baseURL, "https://"), "http://")
	base = fileNameSanitizer.ReplaceAllString(strings.ToLower(base), "-")
	base = strings.Trim(base, "-")
	if base == "" {
		base = "unknown"
	}
	if collection == "" {
		collection = "unknown"
	}
	rand := uuid.NewString()[:8]
	return fmt.Sprintf("%s-%s-%s-wpxml-import-log-%s.log", now.Format("2006-01-02-15-04-05"), base, collection, rand)
}

// StartLogFile opens the log file sink under logDir, creating the directory
// when needed. It returns the full path of the created file.
func (c *Console) StartLogFile(logDir, baseURL, collection string) (string, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return "", fmt.Errorf("progress: create log dir %s: %w", logDir, err)
	}
	path := filepath.Join(logDir, LogFileName(baseURL, collection, time.Now()))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("progress: open log file %s: %w", path, err)
	}

	c.mu.Lock()
	c.file = file
	c.mu.Unlock()
	return path, nil
}

// Close releases the log file sink, if any.
func (c *Console) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.file == nil {
		return nil
	}
	err := c.file.Close()
	c.file = nil
	return err
}

func (c *Console) Log(format string, args ...any) {
	c.emit("", format, args...)
}

func (c *Console) Success(format string, args ...any) {
	c.emit("OK", format, args...)
}

func (c *Console) Warning(format string, args ...any) {
	c.emit("WARNING", format, args...)
}

func (c *Console) Error(format string, args ...any) {
	c.emit("ERROR", format, args...)
}

func (c *Console) emit(tag, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if tag != "" {
		msg = "[" + tag + "] " + msg
	}
	msg += "\n"

	c.mu.Lock()
	defer c.mu.Unlock()

	io.WriteString(c.live, msg)
	if f, ok := c.live.(flusher); ok {
		f.Flush()
	}
	if c.file != nil {
		c.file.WriteString(msg)
		c.file.Sync()
	}
}

// Discard is a reporter that drops everything, for callers that do not care
// about progress output.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Log(string, ...any)     {}
func (discard) Success(string, ...any) {}
func (discard) Warning(string, ...any) {}
func (discard) Error(string, ...any)   {}
