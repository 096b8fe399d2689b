package out

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	pluginrpc "pomo/internal/modules/notify/adapter/out/rpc"
	"pomo/internal/modules/notify/domain"
	notifyout "pomo/internal/modules/notify/port/out"
)

const (
	pluginStartTimeout = 3 * time.Second
	pluginCallTimeout  = 5 * time.Second
)

// GRPCHost starts a notifier plugin for each call and stops it afterwards.
// Alerts are rare, so no plugin process outlives the call it serves.
type GRPCHost struct {
	logger hclog.Logger
}

func NewGRPCHost(logger hclog.Logger) notifyout.Host {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &GRPCHost{logger: logger}
}

// CheckLifecycle starts the plugin and confirms it still offers notify.
func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	meta, err := h.GetMetadata(ctx, manifest)
	if err != nil {
		return err
	}
	if !slices.Contains(meta.Capabilities, domain.CapabilityNotify) {
		return fmt.Errorf("%w: %s reports no %q", domain.ErrCapabilityMissing, manifest.Name, domain.CapabilityNotify)
	}
	return nil
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	var meta domain.Metadata
	err := h.withClient(ctx, manifest, func(ctx context.Context, client pluginrpc.NotifierClient) error {
		raw, err := client.GetMetadata(ctx)
		if err != nil {
			return fmt.Errorf("get metadata: %w", err)
		}
		meta = domain.Metadata{Name: raw.Name, Version: raw.Version}
		for _, c := range raw.Capabilities {
			meta.Capabilities = append(meta.Capabilities, domain.Capability(c))
		}
		return nil
	})
	return meta, err
}

func (h *GRPCHost) Notify(ctx context.Context, manifest domain.Manifest, alert domain.Alert) error {
	return h.withClient(ctx, manifest, func(ctx context.Context, client pluginrpc.NotifierClient) error {
		resp, err := client.Notify(ctx, &pluginrpc.NotifyRequest{
			Title:    alert.Title,
			Subtitle: alert.Subtitle,
			Sound:    alert.Sound,
		})
		if err != nil {
			return fmt.Errorf("notify via plugin: %w", err)
		}
		if !resp.Delivered {
			return fmt.Errorf("plugin %s refused alert: %s", manifest.Name, resp.Message)
		}
		return nil
	})
}

// withClient launches the plugin binary, runs call under the call deadline
// and kills the process when call returns.
func (h *GRPCHost) withClient(ctx context.Context, manifest domain.Manifest, call func(context.Context, pluginrpc.NotifierClient) error) error {
	log := h.logger.Named(manifest.Name)
	process := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  pluginrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          pluginrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     pluginStartTimeout,
		Logger:           log,
	})
	defer process.Kill()

	protocol, err := process.Client()
	if err != nil {
		return fmt.Errorf("start plugin %s: %w", manifest.Name, err)
	}
	raw, err := protocol.Dispense(pluginrpc.PluginMapKey)
	if err != nil {
		return fmt.Errorf("dispense plugin %s: %w", manifest.Name, err)
	}
	client, ok := raw.(pluginrpc.NotifierClient)
	if !ok {
		return fmt.Errorf("plugin %s: unexpected client %T", manifest.Name, raw)
	}

	callCtx := ctx
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, pluginCallTimeout)
		defer cancel()
	}
	err = call(callCtx, client)
	if err != nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		log.Warn("plugin call timed out", "timeout", pluginCallTimeout)
		return fmt.Errorf("%w: %s", domain.ErrPluginTimeout, manifest.Name)
	}
	return err
}
