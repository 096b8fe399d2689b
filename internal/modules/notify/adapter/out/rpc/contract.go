// Package rpc is the wire contract between pomo and notifier plugins. The
// service is described by hand and carried over gRPC with a JSON codec, so
// plugins need no generated code.
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
	PluginMapKey = "notifier"
	serviceName  = "pomo.notifier.v1.Notifier"
	codecName    = "json"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "POMO_NOTIFIER_PLUGIN",
	MagicCookieValue: "pomo",
}

func init() {
	encoding.RegisterCodec(codec{})
}

type codec struct{}

func (codec) Name() string { return codecName }

func (codec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (codec) Unmarshal(b []byte, v any) error { return json.Unmarshal(b, v) }

type Empty struct{}

type Metadata struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
}

type NotifyRequest struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Sound    string `json:"sound"`
}

// NotifyResponse reports whether the plugin handed the alert to the
// desktop; Message explains a refusal.
type NotifyResponse struct {
	Delivered bool   `json:"delivered"`
	Message   string `json:"message"`
}

// NotifierServer is implemented by plugin binaries.
type NotifierServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Notify(ctx context.Context, in *NotifyRequest) (*NotifyResponse, error)
}

// NotifierClient is what the host dispenses from a running plugin.
type NotifierClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Notify(ctx context.Context, in *NotifyRequest) (*NotifyResponse, error)
}

func fullMethod(name string) string {
	return "/" + serviceName + "/" + name
}

type notifierClient struct {
	conn grpc.ClientConnInterface
}

func NewNotifierClient(conn grpc.ClientConnInterface) NotifierClient {
	return notifierClient{conn: conn}
}

func (c notifierClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	return invoke[Metadata](ctx, c.conn, "GetMetadata", &Empty{})
}

func (c notifierClient) Notify(ctx context.Context, in *NotifyRequest) (*NotifyResponse, error) {
	return invoke[NotifyResponse](ctx, c.conn, "Notify", in)
}

func invoke[Resp any](ctx context.Context, conn grpc.ClientConnInterface, method string, in any) (*Resp, error) {
	out := new(Resp)
	if err := conn.Invoke(ctx, fullMethod(method), in, out, grpc.CallContentSubtype(codecName)); err != nil {
		return nil, err
	}
	return out, nil
}

var notifierService = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*NotifierServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("GetMetadata", func(s NotifierServer, ctx context.Context, in *Empty) (any, error) {
			return s.GetMetadata(ctx, in)
		}),
		unary("Notify", func(s NotifierServer, ctx context.Context, in *NotifyRequest) (any, error) {
			return s.Notify(ctx, in)
		}),
	},
	Metadata: "notifier-rpc-v1",
}

// unary adapts a typed server method to grpc's untyped handler signature,
// routing through the interceptor when one is installed.
func unary[Req any](name string, call func(NotifierServer, context.Context, *Req) (any, error)) grpc.MethodDesc {
	method := fullMethod(name)
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			impl := srv.(NotifierServer)
			if interceptor == nil {
				return call(impl, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				typed, ok := req.(*Req)
				if !ok {
					return nil, fmt.Errorf("%s: unexpected request %T", method, req)
				}
				return call(impl, ctx, typed)
			})
		},
	}
}

func RegisterNotifierServer(server grpc.ServiceRegistrar, impl NotifierServer) {
	server.RegisterService(&notifierService, impl)
}

// notifierPlugin binds the contract to go-plugin. Hosts pass a nil impl.
type notifierPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	impl NotifierServer
}

func (p *notifierPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	if p.impl == nil {
		return fmt.Errorf("notifier plugin has no implementation")
	}
	RegisterNotifierServer(server, p.impl)
	return nil
}

func (p *notifierPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewNotifierClient(conn), nil
}

func PluginMap(impl NotifierServer) plugin.PluginSet {
	return plugin.PluginSet{PluginMapKey: &notifierPlugin{impl: impl}}
}
