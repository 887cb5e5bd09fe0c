package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"

	"vocabuilder/internal/modules/plugin/domain"
	"vocabuilder/internal/modules/plugin/dto"
	pluginout "vocabuilder/internal/modules/plugin/port/out"
)

type PluginService struct {
	logger *slog.Logger
	store  pluginout.ManifestStore
	host   pluginout.Host
}

func NewPluginService(logger *slog.Logger, store pluginout.ManifestStore, host pluginout.Host) *PluginService {
	return &PluginService{logger: logger, store: store, host: host}
}

func (s *PluginService) List(ctx context.Context) ([]dto.PluginInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PluginInfo, 0, len(manifests))
	for _, m := range manifests {
		caps := make([]string, 0, len(m.Capabilities))
		for _, c := range m.Capabilities {
			caps = append(caps, string(c))
		}
		out = append(out, dto.PluginInfo{
			Name:         m.Name,
			Version:      m.Version,
			Enabled:      m.Enabled,
			Binary:       m.Binary,
			Capabilities: caps,
			Options:      maps.Clone(m.Options),
		})
	}
	return out, nil
}

func (s *PluginService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		binaryOK := fileExists(m.Binary)
		result.BinaryReachable = binaryOK
		checksumOK := false
		if binaryOK {
			checksumOK = checksumMatches(m.Binary, m.SHA256) == nil
		}
		result.ChecksumValid = checksumOK
		if binaryOK && checksumOK && m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if !binaryOK {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if binaryOK && !checksumOK {
			result.Error = "checksum mismatch"
		}
		results = append(results, result)
	}
	return results, nil
}

// Enrich sends entries through the named plugin and overlays what it fills in.
func (s *PluginService) Enrich(ctx context.Context, input dto.EnrichInput) (dto.EnrichOutput, error) {
	if len(input.Entries) == 0 {
		return dto.EnrichOutput{PluginName: input.PluginName, Entries: []dto.WordFields{}}, nil
	}
	manifest, err := s.getRunnableManifest(ctx, input.PluginName, domain.CapabilityEnrich)
	if err != nil {
		return dto.EnrichOutput{}, err
	}

	original := make([]domain.WordFields, 0, len(input.Entries))
	for _, entry := range input.Entries {
		original = append(original, domain.WordFields(entry))
	}
	returned, err := s.host.Enrich(ctx, manifest, domain.EnrichRequest{Options: maps.Clone(manifest.Options), Entries: original})
	if err != nil {
		return dto.EnrichOutput{}, err
	}
	merged, changed, err := domain.Merge(original, returned)
	if err != nil {
		return dto.EnrichOutput{}, fmt.Errorf("%s: %w", manifest.Name, err)
	}
	s.logger.Info("enriched entries", "plugin", manifest.Name, "entries", len(merged), "changed", changed)

	out := make([]dto.WordFields, 0, len(merged))
	for _, entry := range merged {
		out = append(out, dto.WordFields(entry))
	}
	return dto.EnrichOutput{PluginName: manifest.Name, Entries: out, Changed: changed}, nil
}

func (s *PluginService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate plugin name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func (s *PluginService) getRunnableManifest(ctx context.Context, pluginName string, requiredCapability domain.Capability) (domain.Manifest, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	manifest := domain.Manifest{}
	found := false
	for _, item := range manifests {
		if item.Name == pluginName {
			manifest = item
			found = true
			break
		}
	}
	if !found {
		return domain.Manifest{}, fmt.Errorf("%w: %q", domain.ErrPluginNotFound, pluginName)
	}
	if !manifest.Enabled {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrPluginDisabled, pluginName)
	}
	if requiredCapability != "" && !manifest.HasCapability(requiredCapability) {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrCapabilityMissing, requiredCapability)
	}
	if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
		return domain.Manifest{}, err
	}
	if s.host == nil {
		return domain.Manifest{}, fmt.Errorf("no plugin host configured")
	}
	if err := s.host.CheckLifecycle(ctx, manifest); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrPluginTimeout, pluginName)
		}
		return domain.Manifest{}, err
	}
	return manifest, nil
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read plugin binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	actual := hex.EncodeToString(hash[:])
	if actual != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
