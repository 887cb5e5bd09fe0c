package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey      = "vocabuilder"
	serviceName       = "vocabuilder.plugin.v1.Enricher"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodEnrich      = "/" + serviceName + "/Enrich"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "VOCABUILDER_PLUGIN",
	MagicCookieValue: "vocabuilder",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
}

// Entry uses the persisted library field names.
type Entry struct {
	Word              string `json:"word"`
	Definition        string `json:"definition"`
	PartOfSpeech      string `json:"partOfSpeech,omitempty"`
	Mnemonic          string `json:"mnemonic,omitempty"`
	Sentence          string `json:"sentence,omitempty"`
	Icon              string `json:"icon,omitempty"`
	Synonyms          string `json:"synonyms,omitempty"`
	MoreSynonyms      string `json:"moreSynonyms,omitempty"`
	Level             string `json:"level,omitempty"`
	StoryBuilder      string `json:"storyBuilder,omitempty"`
	MnemonicSourceURL string `json:"mnemonicSourceUrl,omitempty"`
}

type EnrichRequest struct {
	Options map[string]string `json:"options"`
	Entries []Entry           `json:"entries"`
}

type EnrichResponse struct {
	Entries []Entry `json:"entries"`
}

type EnricherServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Enrich(ctx context.Context, in *EnrichRequest) (*EnrichResponse, error)
}

type EnricherClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Enrich(ctx context.Context, in *EnrichRequest) (*EnrichResponse, error)
}

type enricherClient struct {
	conn *grpc.ClientConn
}

func NewEnricherClient(conn *grpc.ClientConn) EnricherClient {
	return &enricherClient{conn: conn}
}

func (c *enricherClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *enricherClient) Enrich(ctx context.Context, in *EnrichRequest) (*EnrichResponse, error) {
	out := &EnrichResponse{}
	if err := c.conn.Invoke(ctx, methodEnrich, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterEnricherServer(server grpc.ServiceRegistrar, impl EnricherServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*EnricherServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "Enrich",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &EnrichRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Enrich(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodEnrich}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*EnrichRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Enrich(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "vocabuilder/plugin/v1",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl EnricherServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterEnricherServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewEnricherClient(conn), nil
}

func PluginMap(impl EnricherServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
