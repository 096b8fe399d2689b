package main

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-plugin"

	pluginrpc "pomo/internal/modules/notify/adapter/out/rpc"
)

// dryRunEnv makes the plugin acknowledge alerts without running notify-send.
const dryRunEnv = "POMO_NOTIFY_SEND_DRY_RUN"

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.Metadata, error) {
	return &pluginrpc.Metadata{
		Name:         "notify-send",
		Version:      "1.0.0",
		Capabilities: []string{"notify", "sound"},
	}, nil
}

func (s *server) Notify(ctx context.Context, in *pluginrpc.NotifyRequest) (*pluginrpc.NotifyResponse, error) {
	if os.Getenv(dryRunEnv) != "" {
		return &pluginrpc.NotifyResponse{Delivered: true, Message: "dry run"}, nil
	}
	path, err := exec.LookPath("notify-send")
	if err != nil {
		return &pluginrpc.NotifyResponse{Message: "notify-send not found in PATH"}, nil
	}
	out, err := exec.CommandContext(ctx, path, arguments(in)...).CombinedOutput()
	if err != nil {
		return &pluginrpc.NotifyResponse{Message: strings.TrimSpace(string(out) + " " + err.Error())}, nil
	}
	return &pluginrpc.NotifyResponse{Delivered: true}, nil
}

// arguments maps an alert onto notify-send flags. Sounds travel as the
// freedesktop sound-name hint.
func arguments(in *pluginrpc.NotifyRequest) []string {
	args := []string{"--app-name=pomo", "--category=presence"}
	if in.Sound != "" {
		args = append(args, "--hint=string:sound-name:"+in.Sound)
	}
	args = append(args, "--", in.Title)
	if in.Subtitle != "" {
		args = append(args, in.Subtitle)
	}
	return args
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: pluginrpc.HandshakeConfig,
		Plugins:         pluginrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
