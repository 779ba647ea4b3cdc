package progress

import (
	"bytes"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestConsoleWritesTaggedMessages(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewConsole(&buf)

	reporter.Log("importing %d users", 3)
	reporter.Success("done")
	reporter.Warning("skipped %s", "mary")
	reporter.Error("boom")

	out := buf.String()
	for _, want := range []string{
		"importing 3 users\n",
		"[OK] done\n",
		"[WARNING] skipped mary\n",
		"[ERROR] boom\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got %q", want, out)
		}
	}
}

func TestConsoleLogFileSink(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewConsole(&buf)

	path, err := reporter.StartLogFile(t.TempDir(), "https://demo.example.com", "demo")
	if err != nil {
		t.Fatalf("StartLogFile returned error: %v", err)
	}
	reporter.Log("hello")
	if err := reporter.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("expected message in log file, got %q", data)
	}
}

func TestLogFileName(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 20, 30, 0, time.UTC)
	name := LogFileName("https://Demo.Example.com/blog/", "news", now)

	pattern := regexp.MustCompile(`^2026-08-31-10-20-30-demo-example-com-blog-news-wpxml-import-log-[0-9a-f]{8}\.log$`)
	if !pattern.MatchString(name) {
		t.Fatalf("unexpected log file name %q", name)
	}

	name = LogFileName("", "", now)
	if !strings.Contains(name, "-unknown-unknown-") {
		t.Fatalf("expected unknown placeholders, got %q", name)
	}
}
