package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hidtools/keebprobe/internal/config"
	"github.com/hidtools/keebprobe/internal/hid"
	"github.com/hidtools/keebprobe/internal/probe"
	"github.com/hidtools/keebprobe/internal/watch"
)

var (
	configPath string
	osName     string
	verbose    bool
	keepGoing  bool
)

func main() {
	root := &cobra.Command{
		Use:           "keebprobe",
		Short:         "Tell QMK keyboards which host OS they are plugged into",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "path to the keyboard config file")
	root.PersistentFlags().StringVar(&osName, "os", "", "override the reported host OS (linux, windows, macos)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch for keyboard arrivals and report the host OS on each",
		Args:  cobra.NoArgs,
		RunE:  runWatch,
	}
	watchCmd.Flags().BoolVar(&keepGoing, "keep-going", false, "log transport failures instead of exiting")

	probeCmd := &cobra.Command{
		Use:   "probe",
		Short: "Probe all configured keyboards once and exit",
		Args:  cobra.NoArgs,
		RunE:  runProbe,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List visible HID interfaces, marking configured keyboards",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	root.AddCommand(watchCmd, probeCmd, listCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "keebprobe: %v\n", err)
		os.Exit(1)
	}
}

// newConnection loads the config and initializes the HID backend. Both are
// fatal at startup when they fail; config load happens first so a missing
// file aborts before any native subsystem is touched.
func newConnection() (*probe.BoardConnection, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	osCode := byte(probe.HostOSCode)
	if osName != "" {
		if osCode, err = probe.ParseOS(osName); err != nil {
			return nil, err
		}
	}

	mgr, err := hid.NewManager()
	if err != nil {
		return nil, fmt.Errorf("hid init: %w", err)
	}
	return probe.New(mgr, cfg, osCode), nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM, syscall.SIGINT,
	)
	defer stop()

	conn, err := newConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	err = watch.New(conn, keepGoing).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runProbe(cmd *cobra.Command, args []string) error {
	conn, err := newConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	return conn.ProbeAll()
}

func runList(cmd *cobra.Command, args []string) error {
	conn, err := newConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	devs, err := conn.Interfaces()
	if err != nil {
		return err
	}
	for _, d := range devs {
		mark := ""
		if name, _, ok := conn.MatchKeyboard(d.VendorID, d.ProductID); ok {
			mark = fmt.Sprintf("  [%s]", name)
			if d.Usage == probe.Usage && d.UsagePage == probe.UsagePage {
				mark += " <- control interface"
			}
		}
		fmt.Printf("%04x:%04x usage=%04x page=%04x %-30q %s%s\n",
			d.VendorID, d.ProductID, d.Usage, d.UsagePage, d.Product, d.Path, mark)
	}
	return nil
}
