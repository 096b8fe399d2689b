package out

import (
	"context"

	"pomo/internal/modules/notify/domain"
	notifyout "pomo/internal/modules/notify/port/out"
)

// PluginSink forwards alerts to an external notifier plugin.
type PluginSink struct {
	host     notifyout.Host
	manifest domain.Manifest
}

func NewPluginSink(host notifyout.Host, manifest domain.Manifest) *PluginSink {
	return &PluginSink{host: host, manifest: manifest}
}

func (s *PluginSink) Name() string {
	return domain.KindPlugin + ":" + s.manifest.Name
}

func (s *PluginSink) Deliver(ctx context.Context, alert domain.Alert) error {
	if !s.manifest.HasCapability(domain.CapabilitySound) {
		alert.Sound = ""
	}
	return s.host.Notify(ctx, s.manifest, alert)
}

func (s *PluginSink) Check(ctx context.Context) error {
	return s.host.CheckLifecycle(ctx, s.manifest)
}
