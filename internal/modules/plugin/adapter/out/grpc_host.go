package out

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	pluginrpc "vocabuilder/internal/modules/plugin/adapter/out/rpc"
	"vocabuilder/internal/modules/plugin/domain"
	pluginout "vocabuilder/internal/modules/plugin/port/out"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

const (
	defaultStartTimeout  = 3 * time.Second
	defaultCallTimeout   = 5 * time.Second
	defaultEnrichTimeout = 30 * time.Second
)

type GRPCHost struct {
	logOutput io.Writer
}

// NewGRPCHost starts plugins on demand. Plugin stderr goes to logOutput; nil discards it.
func NewGRPCHost(logOutput io.Writer) pluginout.Host {
	if logOutput == nil {
		logOutput = io.Discard
	}
	return &GRPCHost{logOutput: logOutput}
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()
	if _, err := client.GetMetadata(callCtx); err != nil {
		return fmt.Errorf("get metadata: %w", err)
	}
	return nil
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()

	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	capabilities := make([]domain.Capability, 0, len(meta.Capabilities))
	for _, capability := range meta.Capabilities {
		capabilities = append(capabilities, domain.Capability(capability))
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Capabilities: capabilities}, nil
}

func (h *GRPCHost) Enrich(ctx context.Context, manifest domain.Manifest, request domain.EnrichRequest) ([]domain.WordFields, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultEnrichTimeout)
	defer cancel()

	entries := make([]pluginrpc.Entry, 0, len(request.Entries))
	for _, entry := range request.Entries {
		entries = append(entries, pluginrpc.Entry(entry))
	}
	response, err := client.Enrich(callCtx, &pluginrpc.EnrichRequest{Options: request.Options, Entries: entries})
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: enrich %s", domain.ErrPluginTimeout, manifest.Name)
		}
		return nil, fmt.Errorf("enrich: %w", err)
	}
	out := make([]domain.WordFields, 0, len(response.Entries))
	for _, entry := range response.Entries {
		out = append(out, domain.WordFields(entry))
	}
	return out, nil
}

func (h *GRPCHost) connect(manifest domain.Manifest, startTimeout time.Duration) (pluginrpc.EnricherClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  pluginrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          pluginrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     startTimeout,
		Stderr:           h.logOutput,
		Logger:           hclog.New(&hclog.LoggerOptions{Name: "plugin." + manifest.Name, Output: h.logOutput, Level: hclog.Warn}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start plugin client: %w", err)
	}
	raw, err := rpcClient.Dispense(pluginrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense plugin: %w", err)
	}
	typed, ok := raw.(pluginrpc.EnricherClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("plugin rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func (h *GRPCHost) callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
