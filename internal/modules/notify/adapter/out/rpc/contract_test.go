package rpc_test

import (
	"context"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"pomo/internal/modules/notify/adapter/out/rpc"
)

type recordingServer struct {
	got *rpc.NotifyRequest
}

func (s *recordingServer) GetMetadata(context.Context, *rpc.Empty) (*rpc.Metadata, error) {
	return &rpc.Metadata{Name: "desk", Version: "0.1.0", Capabilities: []string{"notify"}}, nil
}

func (s *recordingServer) Notify(_ context.Context, in *rpc.NotifyRequest) (*rpc.NotifyResponse, error) {
	s.got = in
	return &rpc.NotifyResponse{Delivered: in.Title != ""}, nil
}

func dial(t *testing.T, impl rpc.NotifierServer, opts ...grpc.ServerOption) rpc.NotifierClient {
	t.Helper()
	listener := bufconn.Listen(1 << 16)
	server := grpc.NewServer(opts...)
	rpc.RegisterNotifierServer(server, impl)
	go func() { _ = server.Serve(listener) }()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return rpc.NewNotifierClient(conn)
}

func TestContractRoundTrip(t *testing.T) {
	impl := &recordingServer{}
	client := dial(t, impl)
	ctx := context.Background()

	meta, err := client.GetMetadata(ctx)
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if meta.Name != "desk" || len(meta.Capabilities) != 1 {
		t.Fatalf("unexpected metadata: %+v", meta)
	}

	resp, err := client.Notify(ctx, &rpc.NotifyRequest{Title: "Pomo 🍅", Subtitle: "Focus time!", Sound: "Glass"})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if !resp.Delivered {
		t.Fatalf("expected delivery")
	}
	if impl.got == nil || impl.got.Sound != "Glass" {
		t.Fatalf("server saw %+v", impl.got)
	}
}

func TestContractRunsInterceptor(t *testing.T) {
	var methods []string
	record := func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		methods = append(methods, info.FullMethod)
		return next(ctx, req)
	}
	client := dial(t, &recordingServer{}, grpc.UnaryInterceptor(record))

	resp, err := client.Notify(context.Background(), &rpc.NotifyRequest{})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if resp.Delivered {
		t.Fatalf("empty title should not be delivered")
	}
	if len(methods) != 1 || methods[0] != "/pomo.notifier.v1.Notifier/Notify" {
		t.Fatalf("interceptor saw %v", methods)
	}
}
