package out

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"pomo/internal/modules/notify/domain"
)

// OSAScriptSink shows alerts through macOS Notification Center. The
// osascript process is started and not waited on.
type OSAScriptSink struct {
	command func(name string, args ...string) *exec.Cmd
}

func NewOSAScriptSink() *OSAScriptSink {
	return &OSAScriptSink{command: exec.Command}
}

func (s *OSAScriptSink) Name() string {
	return domain.KindOSAScript
}

func (s *OSAScriptSink) Deliver(_ context.Context, alert domain.Alert) error {
	cmd := s.command("osascript", "-e", AppleScript(alert))
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start osascript: %w", err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func (s *OSAScriptSink) Check(_ context.Context) error {
	if _, err := exec.LookPath("osascript"); err != nil {
		return fmt.Errorf("osascript not available: %w", err)
	}
	return nil
}

// AppleScript renders the display notification statement for alert.
func AppleScript(alert domain.Alert) string {
	script := fmt.Sprintf(`tell application "System Events" to display notification %s with title %s`,
		quote(alert.Subtitle), quote(alert.Title))
	if alert.Sound != "" {
		script += " sound name " + quote(alert.Sound)
	}
	return script
}

func quote(s string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
	return `"` + escaped + `"`
}
