package out

import (
	"context"

	"pomo/internal/modules/session/domain"
	sessionout "pomo/internal/modules/session/port/out"
	settingsin "pomo/internal/modules/settings/port/in"
)

// SettingsPreferences reads session preferences from the settings module.
type SettingsPreferences struct {
	settings settingsin.Usecase
}

func NewSettingsPreferences(settings settingsin.Usecase) sessionout.PreferencesSource {
	return &SettingsPreferences{settings: settings}
}

func (p *SettingsPreferences) Preferences(ctx context.Context) domain.Preferences {
	current := p.settings.Current(ctx)
	return domain.Preferences{
		FocusDuration: current.FocusDuration,
		BreakDuration: current.BreakDuration,
		FocusEmoji:    current.FocusEmoji,
		BreakEmoji:    current.BreakEmoji,
		WarnEmojis:    append([]string(nil), current.WarnEmojis...),
		StartSound:    current.StartSound,
		EndSound:      current.EndSound,
		WorkStart:     current.WorkStart,
		WorkEnd:       current.WorkEnd,
	}
}

func (p *SettingsPreferences) Reload(ctx context.Context) error {
	return p.settings.Reload(ctx)
}
