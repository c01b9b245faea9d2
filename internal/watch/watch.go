package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/elemecca/go-hotplug"

	"github.com/hidtools/keebprobe/internal/hid"
	"github.com/hidtools/keebprobe/internal/probe"
)

// USB device arrival and HID interface enumeration by the host are not
// atomic: right after the arrival notification the control interface is
// often not yet visible. Poll for it on a short interval instead of a
// single fixed sleep; under heavy load it may still not show up within the
// window, in which case the arrival is skipped until the next event.
const (
	settleInterval = 50 * time.Millisecond
	settleAttempts = 10
)

// The hotplug subsystem notifies per HID interface, so one physical
// keyboard fires several arrivals back to back. Arrivals of an already
// probed identifier pair inside this window are dropped.
const debounceWindow = 2 * time.Second

// Reactor binds a BoardConnection to native USB arrival notifications.
// Callbacks run one at a time on the subsystem's event goroutine; there is
// no shared state outside it.
type Reactor struct {
	conn *probe.BoardConnection

	// keepGoing downgrades transport failures during an arrival reaction
	// from fatal to logged.
	keepGoing bool

	lastProbe map[uint32]time.Time
	fatal     chan error
}

func New(conn *probe.BoardConnection, keepGoing bool) *Reactor {
	return &Reactor{
		conn:      conn,
		keepGoing: keepGoing,
		lastProbe: make(map[uint32]time.Time),
		fatal:     make(chan error, 1),
	}
}

// Run registers for HID interface arrivals, replays already-connected
// devices, and blocks until ctx is cancelled or a probe failure is
// escalated. Hosts without hotplug support fail here, at startup.
func (r *Reactor) Run(ctx context.Context) error {
	listener, err := hotplug.New(hotplug.DevIfHid, r.onArrive)
	if err != nil {
		return fmt.Errorf("watch: hotplug unsupported on this host: %w", err)
	}

	if err := listener.Listen(); err != nil {
		return fmt.Errorf("watch: register hotplug listener: %w", err)
	}
	if err := listener.Enumerate(); err != nil {
		return fmt.Errorf("watch: enumerate connected devices: %w", err)
	}
	slog.Info("watching for keyboard arrivals")

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-r.fatal:
		return err
	}
}

func (r *Reactor) onArrive(devIf *hotplug.DeviceInterface) {
	usbDev, err := devIf.Device.Up(hotplug.DevUsbDevice)
	if err != nil {
		slog.Debug("hid interface without usb parent", slog.String("path", devIf.Path))
		return
	}
	vid, err := usbDev.VendorId()
	if err != nil {
		return
	}
	pid, err := usbDev.ProductId()
	if err != nil {
		return
	}

	name, err := r.handleArrival(uint16(vid), uint16(pid))
	if name != "" {
		// Removal is observed but needs no reaction.
		_ = devIf.OnDetach(func() {
			slog.Debug("keyboard left", slog.String("keyboard", name))
		})
	}
	if err != nil {
		if r.keepGoing {
			slog.Error("probe failed", slog.Any("error", err))
			return
		}
		select {
		case r.fatal <- err:
		default:
		}
	}
}

// handleArrival runs the matcher and sender for one arrival, returning the
// matched keyboard name ("" for devices that are not configured). A nil
// error covers the common cases: not a configured keyboard, a duplicate
// notification, or an interface that never settled.
func (r *Reactor) handleArrival(vid, pid uint16) (string, error) {
	name, _, ok := r.conn.MatchKeyboard(vid, pid)
	if !ok {
		return "", nil
	}

	key := uint32(vid)<<16 | uint32(pid)
	if last, ok := r.lastProbe[key]; ok && time.Since(last) < debounceWindow {
		return name, nil
	}
	r.lastProbe[key] = time.Now()

	slog.Debug("configured keyboard arrived",
		slog.String("keyboard", name),
		slog.String("vid", fmt.Sprintf("%04x", vid)),
		slog.String("pid", fmt.Sprintf("%04x", pid)))

	info, err := r.awaitInterface(vid, pid)
	if errors.Is(err, probe.ErrNotConnected) {
		slog.Info("keyboard not connected", slog.String("keyboard", name))
		return name, nil
	}
	if err != nil {
		return name, err
	}

	if err := r.conn.Probe(info); err != nil {
		return name, err
	}
	slog.Info("host os reported",
		slog.String("keyboard", name),
		slog.String("path", info.Path))
	return name, nil
}

// awaitInterface polls FindInterface until the control interface settles
// or the window runs out.
func (r *Reactor) awaitInterface(vid, pid uint16) (hid.Info, error) {
	var info hid.Info
	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(settleInterval), settleAttempts)
	err := backoff.Retry(func() error {
		var err error
		info, err = r.conn.FindInterface(vid, pid)
		if err != nil && !errors.Is(err, probe.ErrNotConnected) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)
	return info, err
}
