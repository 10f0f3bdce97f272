package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/synrais/padkeys/pkg/config"
	"github.com/synrais/padkeys/pkg/dispatch"
	"github.com/synrais/padkeys/pkg/input"
	"github.com/synrais/padkeys/pkg/input/virtualinput"
	"github.com/synrais/padkeys/pkg/keystate"
	"github.com/synrais/padkeys/pkg/logging"
	"github.com/synrais/padkeys/pkg/translate"
)

const (
	exitOK         = 0
	exitError      = 1
	exitNoDevice   = 2
	exitDeviceInit = 3
)

func usage(out io.Writer) {
	fmt.Fprintln(out, "Usage: padkeys [-list | -config]")
	fmt.Fprintln(out, "  (no args)  map the controller to keyboard keys")
	fmt.Fprintln(out, "  -list      list controllers for the configured driver")
	fmt.Fprintln(out, "  -config    print the effective configuration")
}

func exitCode(err error) int {
	var initErr *input.DeviceInitError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, input.ErrDeviceNotFound):
		return exitNoDevice
	case errors.As(err, &initErr):
		return exitDeviceInit
	}
	return exitError
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := ""
	if len(args) > 0 {
		cmd = args[0]
	}
	switch cmd {
	case "", "-list", "-config":
	case "-h", "-help", "--help":
		usage(stdout)
		return exitOK
	default:
		usage(stderr)
		return exitError
	}

	// -config output is JSON only, so progress lines go to stderr there.
	status := stdout
	if cmd == "-config" {
		status = stderr
	}
	cfg, err := config.EnsureUserConfig(config.AppName, status)
	if err != nil {
		fmt.Fprintln(stderr, "[PADKEYS] Config load error:", err)
		return exitError
	}

	switch cmd {
	case "-config":
		out, err := cfg.JSON()
		if err != nil {
			fmt.Fprintln(stderr, "[PADKEYS] Failed to dump config:", err)
			return exitError
		}
		fmt.Fprintln(stdout, string(out))
		return exitOK
	case "-list":
		if err := cfg.ValidateDevice(input.Drivers()); err != nil {
			fmt.Fprintln(stderr, "[PADKEYS] Invalid config:", err)
			return exitError
		}
		return listDevices(cfg, stdout, stderr)
	}

	if err := cfg.Validate(input.Drivers(), virtualinput.Backends()); err != nil {
		fmt.Fprintln(stderr, "[PADKEYS] Invalid config:", err)
		return exitError
	}
	return runMapper(cfg)
}

func listDevices(cfg *config.UserConfig, stdout, stderr io.Writer) int {
	paths, err := input.Discover(cfg.Device.Driver)
	if err != nil {
		fmt.Fprintln(stderr, "[INPUT]", err)
		return exitCode(err)
	}
	if len(paths) == 0 {
		fmt.Fprintf(stdout, "[INPUT] No %s controllers found\n", cfg.Device.Driver)
		return exitNoDevice
	}
	for _, p := range paths {
		dev, err := input.Open(cfg.Device.Driver, p)
		if err != nil {
			fmt.Fprintf(stdout, "%s  (%v)\n", p, err)
			continue
		}
		info := dev.Info()
		_ = dev.Close()
		fmt.Fprintf(stdout, "%s  %s  [%s]  axes=%d buttons=%d hats=%d\n",
			info.Path, info.Name, info.GUID, info.Axes, info.Buttons, info.Hats)
	}
	return exitOK
}

func runMapper(cfg *config.UserConfig) int {
	logger := logging.New(cfg)
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	path := cfg.Device.Path
	if path == "" && cfg.Device.Wait {
		logger.Printf("[INPUT] Waiting up to %s for a %s controller", cfg.Device.WaitTimeout, cfg.Device.Driver)
		p, err := input.WaitForDevice(ctx, cfg.Device.Driver, cfg.Device.WaitTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return exitOK
			}
			logger.Printf("[INPUT] %v", err)
			return exitCode(err)
		}
		path = p
	}

	dev, err := input.Open(cfg.Device.Driver, path)
	if err != nil {
		logger.Printf("[INPUT] %v", err)
		return exitCode(err)
	}

	inj, err := virtualinput.New(cfg.Injector.Backend, virtualinput.Options{
		Layout:      cfg.KeyLayout(),
		Name:        cfg.Injector.Name,
		Settle:      cfg.Injector.Settle,
		XdotoolPath: cfg.Injector.XdotoolPath,
	})
	if err != nil {
		_ = dev.Close()
		logger.Printf("[KEYS] %v", err)
		return exitError
	}
	defer func() {
		if err := inj.Close(); err != nil {
			logger.Printf("[KEYS] %v", err)
		}
	}()

	tracker := keystate.NewTracker(inj, logger.Logger)
	tracker.SetVerbose(cfg.Log.Verbose)

	printBanner(os.Stdout, dev.Info(), cfg.KeyLayout())

	d := dispatch.New(dev, translate.New(tracker), tracker, logger.Logger)
	if err := d.Run(ctx); err != nil {
		logger.Printf("[PADKEYS] %v", err)
		return exitError
	}
	logger.Println("[PADKEYS] Stopped")
	return exitOK
}
