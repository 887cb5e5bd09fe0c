package out_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	pluginout "vocabuilder/internal/modules/plugin/adapter/out"
	"vocabuilder/internal/modules/plugin/domain"
)

func TestGRPCHostIntegrationMnemonicsPlugin(t *testing.T) {
	if testing.Short() {
		t.Skip("builds a plugin binary")
	}
	binPath, checksum := buildMnemonicsPlugin(t)
	cachePath := filepath.Join(t.TempDir(), "mnemonics.json")
	cache := `{"abroad": {"mnemonics": ["a broad road leads away", "board a plane", "third"], "source_url": "https://example.com/abroad"}}`
	if err := os.WriteFile(cachePath, []byte(cache), 0o644); err != nil {
		t.Fatalf("write cache: %v", err)
	}
	manifest := domain.Manifest{
		Name:         "mnemonics",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       checksum,
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityEnrich},
		Options:      map[string]string{"cache": cachePath},
	}

	host := pluginout.NewGRPCHost(nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := host.CheckLifecycle(ctx, manifest); err != nil {
		t.Fatalf("check lifecycle: %v", err)
	}
	metadata, err := host.GetMetadata(ctx, manifest)
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if metadata.Name != "mnemonics" || len(metadata.Capabilities) != 1 || metadata.Capabilities[0] != domain.CapabilityEnrich {
		t.Fatalf("unexpected metadata: %+v", metadata)
	}

	entries, err := host.Enrich(ctx, manifest, domain.EnrichRequest{
		Options: manifest.Options,
		Entries: []domain.WordFields{
			{Word: "Abroad", Definition: "In or to a foreign country"},
			{Word: "Benefit", Definition: "An advantage"},
		},
	})
	if err != nil {
		t.Fatalf("enrich: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected two entries, got %d", len(entries))
	}
	if entries[0].Mnemonic != "a broad road leads away • board a plane" || entries[0].MnemonicSourceURL != "https://example.com/abroad" {
		t.Fatalf("unexpected enriched entry: %+v", entries[0])
	}
	if entries[1].Mnemonic != "" {
		t.Fatalf("unexpected mnemonic for uncached word: %+v", entries[1])
	}
}

func buildMnemonicsPlugin(t *testing.T) (string, string) {
	t.Helper()
	tmp := t.TempDir()
	binPath := filepath.Join(tmp, "mnemonics-plugin")
	cmd := exec.Command("go", "build", "-o", binPath, "./plugins/mnemonics")
	cmd.Dir = repositoryRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build mnemonics plugin: %v\n%s", err, string(out))
	}
	payload, err := os.ReadFile(binPath)
	if err != nil {
		t.Fatalf("read built plugin: %v", err)
	}
	hash := sha256.Sum256(payload)
	return binPath, hex.EncodeToString(hash[:])
}

func repositoryRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "../../../../../"))
}
