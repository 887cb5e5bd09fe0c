package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	pluginrpc "vocabuilder/internal/modules/plugin/adapter/out/rpc"
)

const (
	defaultCachePath  = "mnemonics_cache.json"
	defaultMaxPerWord = 2
	separator         = " • "
)

type cacheEntry struct {
	Mnemonics []string `json:"mnemonics"`
	SourceURL string   `json:"source_url"`
}

// cache is keyed by lowercased word.
type cache map[string]cacheEntry

type options struct {
	cachePath  string
	overwrite  bool
	maxPerWord int
}

func parseOptions(raw map[string]string) (options, error) {
	opts := options{cachePath: defaultCachePath, maxPerWord: defaultMaxPerWord}
	if v := strings.TrimSpace(raw["cache"]); v != "" {
		opts.cachePath = v
	}
	if v := strings.TrimSpace(raw["overwrite"]); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return options{}, fmt.Errorf("option overwrite: %w", err)
		}
		opts.overwrite = b
	}
	if v := strings.TrimSpace(raw["max_per_word"]); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return options{}, fmt.Errorf("option max_per_word must be a positive integer, got %q", v)
		}
		opts.maxPerWord = n
	}
	return opts, nil
}

// loadCache returns an empty cache when the file does not exist.
func loadCache(path string) (cache, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cache{}, nil
		}
		return nil, fmt.Errorf("read cache: %w", err)
	}
	c := cache{}
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode cache %s: %w", path, err)
	}
	return c, nil
}

// enrich fills mnemonic fields from the cache. It returns the entries and how many it filled.
func enrich(entries []pluginrpc.Entry, c cache, opts options) ([]pluginrpc.Entry, int) {
	out := make([]pluginrpc.Entry, len(entries))
	filled := 0
	for i, entry := range entries {
		out[i] = entry
		if !opts.overwrite && strings.TrimSpace(entry.Mnemonic) != "" {
			continue
		}
		hit, ok := c[strings.ToLower(strings.TrimSpace(entry.Word))]
		if !ok {
			continue
		}
		mnemonics := uniqueKeepOrder(hit.Mnemonics)
		if len(mnemonics) > opts.maxPerWord {
			mnemonics = mnemonics[:opts.maxPerWord]
		}
		if len(mnemonics) == 0 {
			continue
		}
		out[i].Mnemonic = strings.Join(mnemonics, separator)
		out[i].MnemonicSourceURL = hit.SourceURL
		filled++
	}
	return out, filled
}

func uniqueKeepOrder(items []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
