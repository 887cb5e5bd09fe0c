// Command mnemonics is an enrichment plugin that fills mnemonic fields from a local JSON cache.
package main

import (
	"context"
	"os"

	pluginrpc "vocabuilder/internal/modules/plugin/adapter/out/rpc"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

type server struct {
	logger hclog.Logger
}

func (s *server) GetMetadata(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.Metadata, error) {
	return &pluginrpc.Metadata{
		Name:         "mnemonics",
		Version:      "1.0.0",
		Capabilities: []string{"enrich"},
	}, nil
}

func (s *server) Enrich(_ context.Context, in *pluginrpc.EnrichRequest) (*pluginrpc.EnrichResponse, error) {
	opts, err := parseOptions(in.Options)
	if err != nil {
		return nil, err
	}
	c, err := loadCache(opts.cachePath)
	if err != nil {
		return nil, err
	}
	entries, filled := enrich(in.Entries, c, opts)
	s.logger.Debug("enriched batch", "entries", len(entries), "filled", filled, "cache", opts.cachePath)
	return &pluginrpc.EnrichResponse{Entries: entries}, nil
}

func main() {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "mnemonics",
		Output:     os.Stderr,
		Level:      hclog.Info,
		JSONFormat: true,
	})
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: pluginrpc.HandshakeConfig,
		Plugins:         pluginrpc.PluginMap(&server{logger: logger}),
		GRPCServer:      plugin.DefaultGRPCServer,
		Logger:          logger,
	})
}
