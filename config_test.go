package wpimport

import "testing"

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MediaDir = "/var/media"
	cfg.Path = "/tmp/export.zip"
	cfg.CollectionID = 1

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	noMedia := cfg
	noMedia.MediaDir = ""
	if err := noMedia.Validate(); err == nil {
		t.Fatal("expected error for missing media dir")
	}

	badMode := cfg
	badMode.Mode = "sync"
	if err := badMode.Validate(); err == nil {
		t.Fatal("expected error for unknown mode")
	}

	deleteInAppend := cfg
	deleteInAppend.DeleteFiles = true
	if err := deleteInAppend.Validate(); err == nil {
		t.Fatal("expected error for delete_files in append mode")
	}
}

func TestConfigCommandCarriesTypeMappings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MediaDir = "/var/media"
	cfg.Path = "/tmp/export.xml"
	cfg.CollectionID = 2
	cfg.TypeByName = map[string]int64{"Podcast": 7, "Sidebar link": 0}
	cfg.TypeByUsage = map[string]int64{"post": 1, "page": 2}
	cfg.TypeFallback = 1

	cmd := cfg.Command()
	if cmd.CollectionID != 2 || cmd.Path != "/tmp/export.xml" {
		t.Fatalf("unexpected command %+v", cmd)
	}
	if cmd.TypeByName["Podcast"] != 7 {
		t.Fatalf("expected type mapping carried over, got %v", cmd.TypeByName)
	}
	if id, ok := cmd.TypeByName["Sidebar link"]; !ok || id != 0 {
		t.Fatal("expected zero mapping preserved to skip the type")
	}
}
