package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-wpimport/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	if fields == nil {
		fields = map[string]any{}
	}
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "wpimport.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	// Ensure WithContext/WithFields do not panic.
	ctx := context.Background()
	logger = logger.WithContext(ctx)
	fl, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		t.Fatalf("expected noop logger to support fields, got %T", logger)
	}
	logger = fl.WithFields(map[string]any{"foo": "bar"})
	logger.Debug("noop")
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	logger := ModuleLogger(provider, importerModule)

	if len(provider.requested) != 1 || provider.requested[0] != importerModule {
		t.Fatalf("expected module %s, got %v", importerModule, provider.requested)
	}

	if len(rec.fields) != 1 {
		t.Fatalf("expected module fields to be applied once, got %d", len(rec.fields))
	}

	if got, ok := rec.fields[0]["module"]; !ok || got != importerModule {
		t.Fatalf("expected module field %s, got %v", importerModule, rec.fields[0]["module"])
	}

	logger.Info("with provider")
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if len(provider.requested) != 1 || provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
	if rec.fields[0]["module"] != rootModule {
		t.Fatalf("expected module field %s, got %v", rootModule, rec.fields[0]["module"])
	}
}

func TestParserLoggerRequestsParserModule(t *testing.T) {
	provider := &stubProvider{logger: &recordingLogger{}}
	_ = ParserLogger(provider)
	if len(provider.requested) == 0 || provider.requested[0] != parserModule {
		t.Fatalf("expected parser module request, got %v", provider.requested)
	}
}

func TestWithImportContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}
	_ = WithImportContext(rec, "/tmp/export.xml", "", "users")
	if len(rec.fields) != 1 {
		t.Fatalf("expected one field application, got %d", len(rec.fields))
	}
	fields := rec.fields[0]
	if fields[fieldImportPath] != "/tmp/export.xml" {
		t.Fatalf("expected import path field, got %v", fields)
	}
	if _, ok := fields[fieldImportColl]; ok {
		t.Fatalf("expected empty collection to be skipped, got %v", fields)
	}
	if fields[fieldImportPhase] != "users" {
		t.Fatalf("expected phase field, got %v", fields)
	}
}
