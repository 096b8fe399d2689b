package out

import (
	"context"
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"

	"pomo/internal/modules/notify/domain"
)

const (
	notifyDest       = "org.freedesktop.Notifications"
	notifyPath       = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyMethod     = notifyDest + ".Notify"
	appName          = "pomo"
	defaultSoundName = "message-new-instant"
	// expireDefault lets the notification server pick the timeout.
	expireDefault = int32(-1)
)

// BusCaller is the part of dbus.BusObject the sink uses.
type BusCaller interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// DBusSink posts alerts to the freedesktop notification server on the
// session bus. The bus connection is opened on first delivery.
type DBusSink struct {
	dial func() (BusCaller, error)

	mu  sync.Mutex
	obj BusCaller
}

func NewDBusSink() *DBusSink {
	return &DBusSink{dial: dialSessionBus}
}

// NewDBusSinkWith injects the notification object, for tests and for
// callers that already hold a bus connection.
func NewDBusSinkWith(obj BusCaller) *DBusSink {
	return &DBusSink{dial: func() (BusCaller, error) { return obj, nil }}
}

func dialSessionBus() (BusCaller, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	return conn.Object(notifyDest, notifyPath), nil
}

func (s *DBusSink) Name() string {
	return domain.KindDBus
}

func (s *DBusSink) Deliver(ctx context.Context, alert domain.Alert) error {
	obj, err := s.object()
	if err != nil {
		return err
	}
	call := obj.CallWithContext(ctx, notifyMethod, 0, NotifyArgs(alert)...)
	if call.Err != nil {
		return fmt.Errorf("post notification %q: %w", alert.Title, call.Err)
	}
	return nil
}

func (s *DBusSink) Check(_ context.Context) error {
	_, err := s.object()
	return err
}

func (s *DBusSink) object() (BusCaller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.obj != nil {
		return s.obj, nil
	}
	obj, err := s.dial()
	if err != nil {
		return nil, err
	}
	s.obj = obj
	return obj, nil
}

// NotifyArgs builds the argument list of org.freedesktop.Notifications.Notify:
// app name, replaces id, icon, summary, body, actions, hints, timeout.
func NotifyArgs(alert domain.Alert) []interface{} {
	hints := map[string]dbus.Variant{}
	switch alert.Sound {
	case "":
	case domain.DefaultSound:
		hints["sound-name"] = dbus.MakeVariant(defaultSoundName)
	default:
		hints["sound-name"] = dbus.MakeVariant(alert.Sound)
	}
	return []interface{}{
		appName,
		uint32(0),
		"",
		alert.Title,
		alert.Subtitle,
		[]string{},
		hints,
		expireDefault,
	}
}
