package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pink-tools/pink-otel"
	"github.com/spf13/cobra"

	"github.com/pink-tools/pink-lockscreen/internal/config"
	"github.com/pink-tools/pink-lockscreen/internal/elevation"
	"github.com/pink-tools/pink-lockscreen/internal/lockscreen"
	"github.com/pink-tools/pink-lockscreen/internal/winreg"
)

var version = "dev"

var (
	configFile     string
	hiveName       string
	legacyEncoding bool
	noCreateKey    bool
)

// errDenied marks a run that already printed its access-denied message.
var errDenied = errors.New("access denied")

var rootCmd = &cobra.Command{
	Use:   "pink-lockscreen [path]",
	Short: "Set the Windows lock screen image",
	Long: fmt.Sprintf(`pink-lockscreen prints the current lock screen image policy value,
sets it to path (default %s) and prints the value read back.

The value lives at HKEY_LOCAL_MACHINE\%s\%s,
so the tool has to run as Administrator.

Environment:
  LOCKSCREEN_CONFIG          Config file (default: %s)
  LOCKSCREEN_DEFAULT_IMAGE   Image used when no path is given`,
		config.DefaultImage, config.PersonalizationKey, config.LockScreenValue, config.File()),
	Args:          cobra.MaximumNArgs(1),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "config", "", "Config file")
	rootCmd.Flags().StringVar(&hiveName, "hive", "", "Registry hive (HKLM, HKCU)")
	rootCmd.Flags().BoolVar(&legacyEncoding, "legacy-encoding", false, "Store the path one byte per character (ISO 8859-1)")
	rootCmd.Flags().BoolVar(&noCreateKey, "no-create-key", false, "Fail instead of creating a missing policy key")
}

// newBackend is swapped in tests.
var newBackend = winreg.System

func main() {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errDenied) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCode(err))
}

// exitCode maps a run result to the process status: 1 when the write was
// denied, 2 for usage and config errors.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errDenied):
		return 1
	}
	return 2
}

// diagnose runs fn with os.Stdout pointed at stderr. pink-otel writes to
// os.Stdout, which carries the operator lines.
func diagnose(fn func()) {
	stdout := os.Stdout
	os.Stdout = os.Stderr
	defer func() { os.Stdout = stdout }()
	fn()
}

func run(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	diagnose(func() { otel.Init(config.ServiceName, version) })
	ctx := cmd.Context()

	path := configFile
	if path == "" {
		path = config.File()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if hiveName != "" {
		cfg.Hive = hiveName
	}
	if legacyEncoding {
		cfg.Encoding = winreg.EncodingLegacy.String()
	}
	if noCreateKey {
		create := false
		cfg.CreateKey = &create
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	hive := cfg.HiveValue()
	if hive == winreg.LocalMachine && !elevation.Elevated() {
		diagnose(func() {
			otel.Warn(ctx, "process is not elevated, writing the policy value will likely be denied",
				otel.Attr{K: "hive", V: hive.String()})
		})
	}

	c := &lockscreen.Controller{
		Store: winreg.New(newBackend(), winreg.Options{
			CreateMissing: cfg.CreateMissing(),
			Encoding:      cfg.EncodingValue(),
		}),
		Out:          out,
		Hive:         hive,
		Key:          config.PersonalizationKey,
		Value:        config.LockScreenValue,
		DefaultImage: cfg.DefaultImage,
		OnFailure: func(ctx context.Context, msg string, err error) {
			diagnose(func() {
				otel.Error(ctx, msg, otel.Attr{K: "hive", V: hive.String()}, otel.Attr{K: "error", V: err.Error()})
			})
		},
	}

	if err := c.Run(ctx, args); err != nil {
		if errors.Is(err, winreg.ErrAccessDenied) {
			return errDenied
		}
		return err
	}
	return nil
}
