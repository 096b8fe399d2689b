package usecase

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"pomo/internal/modules/settings/domain"
	settingsdto "pomo/internal/modules/settings/dto"
	settingsin "pomo/internal/modules/settings/port/in"
	settingsout "pomo/internal/modules/settings/port/out"
	"pomo/internal/modules/settings/service"
	apperrors "pomo/internal/platform/errors"
)

type Interactor struct {
	svc   *service.SettingsService
	store settingsout.FileStore
}

func NewInteractor(svc *service.SettingsService, store settingsout.FileStore) settingsin.Usecase {
	return &Interactor{svc: svc, store: store}
}

func (i *Interactor) Current(ctx context.Context) settingsdto.SettingsOutput {
	settings, source := i.svc.Current(ctx)
	return toOutput(settings, source)
}

func (i *Interactor) Reload(ctx context.Context) error {
	return i.svc.Reload(ctx)
}

func (i *Interactor) Init(ctx context.Context, input settingsdto.InitInput) (settingsdto.InitOutput, error) {
	if !input.Force && i.store.Exists(ctx) {
		return settingsdto.InitOutput{}, fmt.Errorf("%w: config file already exists, use --force to overwrite", apperrors.ErrInvalidInput)
	}
	file := domain.FileFrom(domain.Defaults())
	setIf(&file.Durations.Focus, input.FocusDuration)
	setIf(&file.Durations.Break, input.BreakDuration)
	if input.FocusEmoji != "" {
		file.Emojis.Focus = &input.FocusEmoji
	}
	if input.BreakEmoji != "" {
		file.Emojis.Break = &input.BreakEmoji
	}
	setIf(&file.Sound.Start, input.StartSound)
	setIf(&file.Sound.End, input.EndSound)
	setIf(&file.WorkingHours.Start, input.WorkStart)
	setIf(&file.WorkingHours.End, input.WorkEnd)
	setIf(&file.Notifier.Backend, input.Notifier)
	setIf(&file.Store.Backend, input.Store)

	if _, problems := domain.Resolve(file); len(problems) > 0 {
		return settingsdto.InitOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, problems[0])
	}
	path, err := i.store.Save(ctx, file)
	if err != nil {
		return settingsdto.InitOutput{}, err
	}
	if err := i.svc.Reload(ctx); err != nil {
		return settingsdto.InitOutput{}, err
	}
	return settingsdto.InitOutput{Path: path}, nil
}

// Render prints the resolved settings in config file form.
func (i *Interactor) Render(ctx context.Context) ([]byte, error) {
	settings, _ := i.svc.Current(ctx)
	payload, err := yaml.Marshal(domain.FileFrom(settings))
	if err != nil {
		return nil, fmt.Errorf("marshal settings: %w", err)
	}
	return payload, nil
}

func setIf(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func toOutput(s domain.Settings, source string) settingsdto.SettingsOutput {
	return settingsdto.SettingsOutput{
		FocusDuration:  s.FocusDuration,
		BreakDuration:  s.BreakDuration,
		FocusEmoji:     s.FocusEmoji,
		BreakEmoji:     s.BreakEmoji,
		WarnEmojis:     append([]string(nil), s.WarnEmojis...),
		StartSound:     s.StartSound,
		EndSound:       s.EndSound,
		WorkStart:      s.WorkStart,
		WorkEnd:        s.WorkEnd,
		NotifierKind:   s.NotifierKind,
		NotifierPlugin: s.NotifierPlugin,
		StoreBackend:   s.StoreBackend,
		LogLevel:       s.LogLevel,
		Source:         source,
	}
}
