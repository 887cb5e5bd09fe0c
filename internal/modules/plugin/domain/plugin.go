package domain

import (
	"errors"
	"fmt"
	"regexp"
)

type Capability string

const (
	CapabilityEnrich Capability = "enrich"
)

var (
	ErrPluginNotFound    = errors.New("plugin not found")
	ErrPluginDisabled    = errors.New("plugin is disabled")
	ErrChecksumMismatch  = errors.New("plugin checksum mismatch")
	ErrCapabilityMissing = errors.New("plugin capability missing")
	ErrPluginTimeout     = errors.New("plugin timeout")
	ErrEnrichMismatch    = errors.New("plugin changed the entry sequence")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

type Manifest struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Binary       string            `json:"binary"`
	SHA256       string            `json:"sha256"`
	Enabled      bool              `json:"enabled"`
	Capabilities []Capability      `json:"capabilities"`
	Options      map[string]string `json:"options,omitempty"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("plugin binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("plugin sha256 must be lowercase 64-char hex")
	}
	if len(m.Capabilities) == 0 {
		return fmt.Errorf("plugin capabilities are required")
	}
	seen := map[Capability]struct{}{}
	for _, capability := range m.Capabilities {
		if err := capability.Validate(); err != nil {
			return err
		}
		if _, ok := seen[capability]; ok {
			return fmt.Errorf("duplicate capability: %s", capability)
		}
		seen[capability] = struct{}{}
	}
	return nil
}

func (c Capability) Validate() error {
	switch c {
	case CapabilityEnrich:
		return nil
	default:
		return fmt.Errorf("unknown capability: %s", c)
	}
}

func (m Manifest) HasCapability(capability Capability) bool {
	for _, c := range m.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

type Metadata struct {
	Name         string
	Version      string
	Capabilities []Capability
}

// WordFields is a vocabulary entry as it crosses the plugin boundary.
type WordFields struct {
	Word              string
	Definition        string
	PartOfSpeech      string
	Mnemonic          string
	Sentence          string
	Icon              string
	Synonyms          string
	MoreSynonyms      string
	Level             string
	StoryBuilder      string
	MnemonicSourceURL string
}

type EnrichRequest struct {
	Options map[string]string
	Entries []WordFields
}

// Merge overlays the non-empty fields a plugin returned onto the originals.
// The plugin must return the same words in the same order.
func Merge(original, returned []WordFields) ([]WordFields, int, error) {
	if len(original) != len(returned) {
		return nil, 0, fmt.Errorf("%w: sent %d entries, got %d", ErrEnrichMismatch, len(original), len(returned))
	}
	out := make([]WordFields, len(original))
	changed := 0
	for i := range original {
		if returned[i].Word != original[i].Word {
			return nil, 0, fmt.Errorf("%w: entry %d is %q, want %q", ErrEnrichMismatch, i, returned[i].Word, original[i].Word)
		}
		out[i] = overlay(original[i], returned[i])
		if out[i] != original[i] {
			changed++
		}
	}
	return out, changed, nil
}

func overlay(base, patch WordFields) WordFields {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&base.Definition, patch.Definition)
	set(&base.PartOfSpeech, patch.PartOfSpeech)
	set(&base.Mnemonic, patch.Mnemonic)
	set(&base.Sentence, patch.Sentence)
	set(&base.Icon, patch.Icon)
	set(&base.Synonyms, patch.Synonyms)
	set(&base.MoreSynonyms, patch.MoreSynonyms)
	set(&base.Level, patch.Level)
	set(&base.StoryBuilder, patch.StoryBuilder)
	set(&base.MnemonicSourceURL, patch.MnemonicSourceURL)
	return base
}
