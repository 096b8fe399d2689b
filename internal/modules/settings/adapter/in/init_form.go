package in

import (
	"fmt"
	"io"

	"github.com/charmbracelet/huh"

	settingsdto "pomo/internal/modules/settings/dto"
	"pomo/internal/platform/clock"
	"pomo/internal/platform/durfmt"
)

// InitForm asks for the config values interactively, pre-filled with the
// current settings.
type InitForm struct {
	input      io.Reader
	output     io.Writer
	accessible bool
}

func NewInitForm(input io.Reader, output io.Writer, accessible bool) InitForm {
	return InitForm{input: input, output: output, accessible: accessible}
}

func (f InitForm) Run(current settingsdto.SettingsOutput) (settingsdto.InitInput, error) {
	values := settingsdto.InitInput{
		FocusDuration: current.FocusDuration.String(),
		BreakDuration: current.BreakDuration.String(),
		FocusEmoji:    current.FocusEmoji,
		BreakEmoji:    current.BreakEmoji,
		StartSound:    current.StartSound,
		EndSound:      current.EndSound,
		WorkStart:     current.WorkStart.String(),
		WorkEnd:       current.WorkEnd.String(),
		Notifier:      current.NotifierKind,
		Store:         current.StoreBackend,
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Focus duration").Value(&values.FocusDuration).Validate(ValidateDuration),
			huh.NewInput().Title("Break duration").Value(&values.BreakDuration).Validate(ValidateDuration),
			huh.NewInput().Title("Focus emoji").Value(&values.FocusEmoji),
			huh.NewInput().Title("Break emoji").Value(&values.BreakEmoji),
		).Title("Sessions"),
		huh.NewGroup(
			huh.NewInput().Title("Start sound").Value(&values.StartSound),
			huh.NewInput().Title("End sound").Value(&values.EndSound),
			huh.NewInput().Title("Working hours start").Description("e.g. 9am, blank to disable").Value(&values.WorkStart).Validate(ValidateTimeOfDay),
			huh.NewInput().Title("Working hours end").Description("e.g. 5:30pm, blank to disable").Value(&values.WorkEnd).Validate(ValidateTimeOfDay),
		).Title("Alerts"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Notifier").Options(huh.NewOptions("auto", "dbus", "osascript", "plugin", "none")...).Value(&values.Notifier),
			huh.NewSelect[string]().Title("Status store").Options(huh.NewOptions("file", "sqlite")...).Value(&values.Store),
		).Title("Backends"),
	).WithAccessible(f.accessible)
	if f.input != nil {
		form = form.WithInput(f.input)
	}
	if f.output != nil {
		form = form.WithOutput(f.output)
	}

	if err := form.Run(); err != nil {
		return settingsdto.InitInput{}, fmt.Errorf("run config form: %w", err)
	}
	return values, nil
}

func ValidateDuration(raw string) error {
	_, err := durfmt.Parse(raw)
	return err
}

func ValidateTimeOfDay(raw string) error {
	_, err := clock.ParseTimeOfDay(raw)
	return err
}
