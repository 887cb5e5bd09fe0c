package service_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pluginout "vocabuilder/internal/modules/plugin/adapter/out"
	"vocabuilder/internal/modules/plugin/domain"
	"vocabuilder/internal/modules/plugin/service"
	"vocabuilder/internal/platform/logger"
)

func TestDoctorDetectsChecksumMismatch(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	pluginsDir := filepath.Join(tmp, "plugins")
	if err := os.MkdirAll(pluginsDir, 0o755); err != nil {
		t.Fatalf("mkdir plugins: %v", err)
	}
	binPath := filepath.Join(tmp, "dummy-plugin")
	if err := os.WriteFile(binPath, []byte("not-a-real-plugin"), 0o755); err != nil {
		t.Fatalf("write plugin binary: %v", err)
	}
	manifests := []domain.Manifest{{
		Name:         "demo",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       strings.Repeat("0", 64),
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityEnrich},
	}}
	raw, _ := json.Marshal(manifests)
	manifestPath := filepath.Join(pluginsDir, "plugins.json")
	if err := os.WriteFile(manifestPath, raw, 0o644); err != nil {
		t.Fatalf("write plugins.json: %v", err)
	}

	svc := service.NewPluginService(logger.Discard(), pluginout.NewFileManifestStore(tmp, manifestPath), nil)
	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}
	if results[0].ChecksumValid || !results[0].BinaryReachable || results[0].Error != "checksum mismatch" {
		t.Fatalf("unexpected doctor result: %+v", results[0])
	}
}

func TestDoctorReportsMissingBinaryAndInvalidManifest(t *testing.T) {
	t.Parallel()
	store := fakeStore{manifests: []domain.Manifest{
		{Name: "gone", Version: "1", Binary: filepath.Join(t.TempDir(), "missing"), SHA256: strings.Repeat("a", 64), Enabled: true, Capabilities: []domain.Capability{domain.CapabilityEnrich}},
		{Name: "broken"},
	}}
	svc := service.NewPluginService(logger.Discard(), store, &fakeHost{})
	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %+v", results)
	}
	if results[0].BinaryReachable || !strings.Contains(results[0].Error, "binary does not exist") {
		t.Fatalf("missing binary result = %+v", results[0])
	}
	if results[1].Error == "" {
		t.Fatalf("invalid manifest result = %+v", results[1])
	}
}
