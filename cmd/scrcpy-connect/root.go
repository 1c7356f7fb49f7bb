package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/gifflet/scrcpy-connect/internal/config"
	"github.com/gifflet/scrcpy-connect/internal/logging"
	"github.com/gifflet/scrcpy-connect/internal/picker"
	"github.com/gifflet/scrcpy-connect/pkg/connect"
)

const Version = "0.1.0"

// Exit codes
const (
	exitOK         = 0
	exitFailure    = 1
	exitUsage      = 2
	exitCommand    = 3
	exitResolution = 4
	exitMirror     = 5
)

// usageError marks invalid flags or configuration.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

type flagValues struct {
	logLevel      string
	ip            string
	port          int
	retries       int
	configPath    string
	chooser       string
	stopOnSuccess bool
	adb           string
	scrcpy        string
	iface         string
}

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	flags       flagValues
	passthrough []string
	logger      *slog.Logger

	newRunner  func(logger *slog.Logger) connect.Runner
	isTerminal func() bool
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		newRunner: func(logger *slog.Logger) connect.Runner {
			return connect.NewExecRunner(logger)
		},
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		},
	}
}

func (a *app) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrcpy-connect [flags] [--] [scrcpy args...]",
		Short: "Mirror an Android screen over Wi-Fi using adb and scrcpy",
		Long: `scrcpy-connect connects to an Android device over Wi-Fi and starts scrcpy.

Without --ip it reuses a device already connected over the network, or waits
for a USB device, reads its Wi-Fi address, switches adbd to TCP/IP mode and
connects to it. Arguments it does not recognise are passed to scrcpy.

Examples:
  scrcpy-connect
  scrcpy-connect --ip 192.168.1.50 --retries 1
  scrcpy-connect --log-level INFO -- --max-size 1024 --no-audio`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context(), cmd.Flags())
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	flags := cmd.Flags()
	flags.StringVar(&a.flags.logLevel, "log-level", logging.DefaultLevel, "log level: "+strings.Join(logging.LevelNames, ", "))
	flags.StringVar(&a.flags.ip, "ip", "", "IP address of the Android device")
	flags.IntVar(&a.flags.port, "port", connect.DefaultPort, "port number")
	flags.IntVar(&a.flags.retries, "retries", connect.DefaultRetries, "number of times scrcpy is launched")
	flags.StringVar(&a.flags.configPath, "config", "", "config file (default "+config.ConfigPath()+")")
	flags.StringVar(&a.flags.chooser, "chooser", config.ChooserPrompt, "device chooser when several are attached: prompt, tui or auto")
	flags.BoolVar(&a.flags.stopOnSuccess, "stop-on-success", false, "stop relaunching scrcpy after a clean exit")
	flags.StringVar(&a.flags.adb, "adb", connect.DefaultBridgeProgram, "adb executable")
	flags.StringVar(&a.flags.scrcpy, "scrcpy", connect.DefaultMirrorProgram, "scrcpy executable")
	flags.StringVar(&a.flags.iface, "interface", connect.DefaultInterface, "device Wi-Fi interface")

	cmd.InitDefaultHelpFlag()
	cmd.InitDefaultVersionFlag()
	return cmd
}

// execute runs the CLI with args and returns the process exit code.
func (a *app) execute(ctx context.Context, args []string) int {
	cmd := a.newRootCmd()
	known, passthrough := splitArgs(cmd.Flags(), args)
	a.passthrough = passthrough

	cmd.SetArgs(known)
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	return a.exitCode(ctx, cmd.ExecuteContext(ctx))
}

func (a *app) run(ctx context.Context, flags *pflag.FlagSet) error {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		return &usageError{err: err}
	}
	a.applyFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return &usageError{err: err}
	}

	logger, err := logging.New(a.stderr, cfg.LogLevel)
	if err != nil {
		return &usageError{err: err}
	}
	a.logger = logger
	logger.Info("starting scrcpy-connect", "version", Version)

	connector := connect.New(
		connect.WithLogger(logger),
		connect.WithOptions(cfg.Options()),
		connect.WithRunner(a.newRunner(logger)),
		connect.WithChooser(a.chooser(cfg.Chooser)),
	)
	if err := connector.CheckBridge(ctx); err != nil {
		return err
	}

	args := append(append([]string{}, cfg.ScrcpyArgs...), a.passthrough...)
	return connector.Run(ctx, connect.Request{
		IP:      cfg.IP,
		Port:    cfg.Port,
		Retries: cfg.Retries,
		Args:    args,
	})
}

// applyFlags overrides configuration values with explicitly set flags.
func (a *app) applyFlags(flags *pflag.FlagSet, cfg *config.Config) {
	if flags.Changed("log-level") {
		cfg.LogLevel = a.flags.logLevel
	}
	if flags.Changed("ip") {
		cfg.IP = a.flags.ip
	}
	if flags.Changed("port") {
		cfg.Port = a.flags.port
	}
	if flags.Changed("retries") {
		cfg.Retries = a.flags.retries
	}
	if flags.Changed("chooser") {
		cfg.Chooser = a.flags.chooser
	}
	if flags.Changed("stop-on-success") {
		cfg.StopOnSuccess = a.flags.stopOnSuccess
	}
	if flags.Changed("adb") {
		cfg.ADB = a.flags.adb
	}
	if flags.Changed("scrcpy") {
		cfg.Scrcpy = a.flags.scrcpy
	}
	if flags.Changed("interface") {
		cfg.Interface = a.flags.iface
	}
}

func (a *app) chooser(mode string) connect.Chooser {
	switch mode {
	case config.ChooserTUI:
		return picker.New(a.stdin, a.stdout)
	case config.ChooserAuto:
		if a.isTerminal() {
			return picker.New(a.stdin, a.stdout)
		}
	}
	return connect.NewPromptChooser(a.stdin, a.stdout)
}

// exitCode logs err and maps it to the process exit status.
func (a *app) exitCode(ctx context.Context, err error) int {
	if err == nil {
		return exitOK
	}
	if ctx.Err() != nil {
		fmt.Fprintln(a.stderr, "\n⛔ Interrupted by user. Exiting...")
		a.log().Info("interrupted by user", "error", err)
		return exitOK
	}

	a.log().Error("scrcpy-connect failed", "error", err)

	var (
		usageErr      *usageError
		mirrorErr     *connect.MirrorError
		resolutionErr *connect.ResolutionError
		commandErr    *connect.CommandError
	)
	switch {
	case errors.As(err, &usageErr):
		return exitUsage
	case errors.As(err, &mirrorErr):
		return exitMirror
	case errors.As(err, &resolutionErr):
		return exitResolution
	case errors.As(err, &commandErr):
		return exitCommand
	default:
		return exitFailure
	}
}

// log returns the configured logger, or an ERROR level logger on stderr
// when the failure happened before configuration was loaded.
func (a *app) log() *slog.Logger {
	if a.logger != nil {
		return a.logger
	}
	logger, _ := logging.New(a.stderr, logging.DefaultLevel)
	return logger
}
