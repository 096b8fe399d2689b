package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pomo/internal/bootstrap"
	sessioninadapter "pomo/internal/modules/session/adapter/in"
	sessiondto "pomo/internal/modules/session/dto"
	settingsinadapter "pomo/internal/modules/settings/adapter/in"
	settingsdto "pomo/internal/modules/settings/dto"
)

const (
	defaultServeAddr = "127.0.0.1:7468"
	closeTimeout     = 5 * time.Second
)

type rootFlags struct {
	dir        string
	configPath string
	logLevel   string
	ephemeral  bool
	notify     bool
	noEmoji    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "pomo",
		Short:         "Pomodoro timer for status bars",
		Long:          "Prints the current session label. Run it from a status bar every second.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				line, err := app.SessionCLI.Line(ctx, flags.noEmoji, flags.notify)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
				return nil
			})
		},
	}
	root.PersistentFlags().StringVar(&flags.dir, "dir", "", "state directory (default $POMO_DIR or ~/.config/pomo)")
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file path")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: trace|debug|info|warn|error")
	root.PersistentFlags().BoolVar(&flags.ephemeral, "ephemeral", false, "keep the session in memory only")
	root.PersistentFlags().BoolVar(&flags.notify, "notify", false, "send desktop alerts")
	root.PersistentFlags().BoolVar(&flags.noEmoji, "no-emoji", false, "omit the emoji from labels")

	root.AddCommand(newStartCmd(flags, "start", []string{"focus"}, "Start a focus session", func(h sessioninadapter.CLIHandler) startFunc { return h.Focus }))
	root.AddCommand(newStartCmd(flags, "break", nil, "Start a break", func(h sessioninadapter.CLIHandler) startFunc { return h.Break }))
	root.AddCommand(newStartCmd(flags, "toggle", nil, "Switch between focus and break", func(h sessioninadapter.CLIHandler) startFunc { return h.Toggle }))
	root.AddCommand(newStopCmd(flags))
	root.AddCommand(newDurationCmd(flags))
	root.AddCommand(newStatusCmd(flags))
	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newTrayCmd(flags))
	root.AddCommand(newServeCmd(flags))
	root.AddCommand(newConfigCmd(flags))
	root.AddCommand(newNotifierCmd(flags))
	return root
}

// withApp builds the app for one command and drains queued alerts before
// returning.
func withApp(cmd *cobra.Command, flags *rootFlags, run func(ctx context.Context, app *bootstrap.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := bootstrap.New(ctx, bootstrap.Options{
		Dir:        flags.dir,
		ConfigPath: flags.configPath,
		LogLevel:   flags.logLevel,
		LogOutput:  cmd.ErrOrStderr(),
		Ephemeral:  flags.ephemeral,
		Notify:     flags.notify,
		NoEmoji:    flags.noEmoji,
	})
	if err != nil {
		return err
	}
	runErr := run(ctx, app)

	closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	return errors.Join(runErr, app.Close(closeCtx))
}

type startFunc func(ctx context.Context, duration string, oneShot, notify bool) (sessiondto.StatusOutput, error)

func newStartCmd(flags *rootFlags, use string, aliases []string, short string, pick func(sessioninadapter.CLIHandler) startFunc) *cobra.Command {
	var oneShot bool
	cmd := &cobra.Command{
		Use:     use + " [duration]",
		Aliases: aliases,
		Short:   short,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			duration := ""
			if len(args) == 1 {
				duration = args[0]
			}
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := pick(app.SessionCLI)(ctx, duration, oneShot, flags.notify)
				if err != nil {
					return err
				}
				printSession(cmd, out)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&oneShot, "one-shot", false, "return to idle when the session ends")
	return cmd
}

func newStopCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				if _, err := app.SessionCLI.Stop(ctx, flags.notify); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "stopped")
				return nil
			})
		},
	}
}

func newDurationCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "duration <duration>",
		Short: "Change the length of the current session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SessionCLI.Duration(ctx, args[0])
				if err != nil {
					return err
				}
				printSession(cmd, out)
				return nil
			})
		},
	}
}

func newStatusCmd(flags *rootFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the stored session without side effects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SessionCLI.Status(ctx, flags.noEmoji)
				if err != nil {
					return err
				}
				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(out)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "type: %s\n", out.Type)
				if out.Type != "Idle" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "start: %s\nend: %s\nremaining: %s\none_shot: %t\n",
						out.Start.Local().Format(time.RFC3339), out.End.Local().Format(time.RFC3339), out.Remaining, out.OneShot)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newTUICmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(_ context.Context, app *bootstrap.App) error {
				return bootstrap.RunTUI(app)
			})
		},
	}
}

func newTrayCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tray",
		Short: "Show the timer in the menu bar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()
				bootstrap.RunTray(ctx, app)
				return nil
			})
		},
	}
}

func newServeCmd(flags *rootFlags) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Poll in the background and serve the local control API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireLoopback(addr); err != nil {
				return err
			}
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()
				go app.Poller.Run(ctx)

				server := &http.Server{Addr: addr, Handler: app.HTTP.Router(), ReadHeaderTimeout: 5 * time.Second}
				errCh := make(chan error, 1)
				go func() { errCh <- server.ListenAndServe() }()
				app.Logger.Info("serving control API", "addr", addr)

				select {
				case err := <-errCh:
					return fmt.Errorf("serve: %w", err)
				case <-ctx.Done():
				}
				shutdownCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					return fmt.Errorf("shutdown: %w", err)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", defaultServeAddr, "listen address, loopback only")
	return cmd
}

func requireLoopback(addr string) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid --addr %q: %w", addr, err)
	}
	if host == "localhost" {
		return nil
	}
	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		return nil
	}
	return fmt.Errorf("--addr must be a loopback address, got %q", host)
}

func newConfigCmd(flags *rootFlags) *cobra.Command {
	config := &cobra.Command{Use: "config", Short: "Manage the config file"}

	var defaults, force, accessible bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				input := settingsdto.InitInput{}
				if !defaults {
					form := settingsinadapter.NewInitForm(cmd.InOrStdin(), cmd.OutOrStdout(), accessible)
					values, err := form.Run(app.SettingsCLI.Current(ctx))
					if err != nil {
						return err
					}
					input = values
				}
				input.Force = force
				out, err := app.SettingsCLI.Init(ctx, input)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out.Path)
				return nil
			})
		},
	}
	initCmd.Flags().BoolVar(&defaults, "defaults", false, "write defaults without prompting")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	initCmd.Flags().BoolVar(&accessible, "accessible", false, "plain prompts for screen readers")

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				rendered, err := app.SettingsCLI.Show(ctx)
				if err != nil {
					return err
				}
				source := app.SettingsCLI.Current(ctx).Source
				if source == "" {
					source = "defaults"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "# source: %s\n%s", source, rendered)
				return nil
			})
		},
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the config and status locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(_ context.Context, app *bootstrap.App) error {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "config: %s\nstatus: %s\ndb: %s\nplugins: %s\n",
					app.Config.ConfigPath, app.Config.StatusPath, app.Config.DBPath, app.Config.PluginsPath)
				return nil
			})
		},
	}

	config.AddCommand(initCmd, show, path)
	return config
}

func newNotifierCmd(flags *rootFlags) *cobra.Command {
	notifier := &cobra.Command{Use: "notifier", Short: "Desktop alert backends"}

	notifier.AddCommand(&cobra.Command{
		Use:   "backend",
		Short: "Show the active alert backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(_ context.Context, app *bootstrap.App) error {
				info := app.NotifyCLI.Backend()
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "configured=%s resolved=%s sink=%s\n", info.Configured, info.Resolved, info.Sink)
				return nil
			})
		},
	})

	notifier.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List notifier plugin manifests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				plugins, err := app.NotifyCLI.List(ctx)
				if err != nil {
					return err
				}
				if len(plugins) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
					return nil
				}
				for _, p := range plugins {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s capabilities=%s\n", p.Name, p.Version, p.Enabled, p.Binary, strings.Join(p.Capabilities, ","))
				}
				return nil
			})
		},
	})

	notifier.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Check the alert backend and plugins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				report, err := app.NotifyCLI.Doctor(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "backend=%s ready=%t", report.Backend.Sink, report.BackendReady)
				if report.BackendError != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", report.BackendError)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
				for _, r := range report.Plugins {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
					if r.Error != "" {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout())
				}
				return nil
			})
		},
	})

	var subtitle, sound string
	test := &cobra.Command{
		Use:   "test [title]",
		Short: "Send a test alert and wait for delivery",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := "Pomo"
			if len(args) == 1 {
				title = args[0]
			}
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.NotifyCLI.Test(ctx, title, subtitle, sound); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "alert delivered")
				return nil
			})
		},
	}
	test.Flags().StringVar(&subtitle, "subtitle", "Notifications are working", "alert body")
	test.Flags().StringVar(&sound, "sound", "default", "alert sound")
	notifier.AddCommand(test)
	return notifier
}

func printSession(cmd *cobra.Command, out sessiondto.StatusOutput) {
	if out.Type == "Idle" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "idle")
		return
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s until %s (%s)\n", strings.ToLower(out.Type), out.End.Local().Format("15:04"), out.Remaining)
}
