package domain

import (
	"errors"
	"fmt"
)

const (
	KindAuto      = "auto"
	KindDBus      = "dbus"
	KindOSAScript = "osascript"
	KindPlugin    = "plugin"
	KindNone      = "none"
)

// DefaultSound asks the sink for the platform's standard alert sound.
const DefaultSound = "default"

var ErrUnsupportedKind = errors.New("unsupported notifier backend")

type Alert struct {
	Title    string
	Subtitle string
	Sound    string
}

func (a Alert) Validate() error {
	if a.Title == "" {
		return fmt.Errorf("alert title is required")
	}
	return nil
}

// ResolveKind maps auto to the native backend of goos.
func ResolveKind(kind, goos string) (string, error) {
	switch kind {
	case "", KindAuto:
		switch goos {
		case "darwin":
			return KindOSAScript, nil
		case "linux", "freebsd", "openbsd", "netbsd":
			return KindDBus, nil
		default:
			return KindNone, nil
		}
	case KindDBus, KindOSAScript, KindPlugin, KindNone:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}
}
