package probe

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"

	"github.com/hidtools/keebprobe/internal/config"
	"github.com/hidtools/keebprobe/internal/hid"
)

// ErrNotConnected reports that a configured keyboard, or its control
// interface, is not currently visible. Callers test for it with errors.Is;
// it never escalates past them.
var ErrNotConnected = errors.New("probe: device not connected")

// BoardConnection drives probes against the configured keyboards. It is
// the exclusive owner of the HID manager handle and holds a reference to
// the immutable configuration, which outlives it.
type BoardConnection struct {
	mgr    hid.Manager
	cfg    *config.Config
	osCode byte
	names  []string // sorted, so matching and sweeps are deterministic
}

func New(mgr hid.Manager, cfg *config.Config, osCode byte) *BoardConnection {
	return &BoardConnection{mgr: mgr, cfg: cfg, osCode: osCode, names: cfg.Names()}
}

func (b *BoardConnection) Close() error {
	return b.mgr.Close()
}

// MatchKeyboard returns the configured keyboard with the given USB
// identifiers. Every arrival on the host funnels through this check and
// the vast majority miss; a miss is the normal case, not an error. If two
// entries share a pair, the lexicographically first name wins.
func (b *BoardConnection) MatchKeyboard(vid, pid uint16) (string, config.Keyboard, bool) {
	for _, name := range b.names {
		kb := b.cfg.Keyboards[name]
		if kb.VendorID == vid && kb.ProductID == pid {
			return name, kb, true
		}
	}
	return "", config.Keyboard{}, false
}

// FindInterface locates the control interface of the device with the given
// identifiers: the HID interface matching the vendor id, product id, and
// the protocol's usage and usage page, all four at once. Among duplicates
// the first in enumeration order wins. Returns ErrNotConnected when no
// such interface is visible, which right after a USB arrival just means
// the host has not finished enumerating it.
func (b *BoardConnection) FindInterface(vid, pid uint16) (hid.Info, error) {
	devs, err := b.mgr.List()
	if err != nil {
		return hid.Info{}, fmt.Errorf("probe: enumerate: %w", err)
	}
	for _, d := range devs {
		if d.VendorID == vid && d.ProductID == pid && d.Usage == Usage && d.UsagePage == UsagePage {
			return d, nil
		}
	}
	return hid.Info{}, ErrNotConnected
}

// Probe opens the interface behind info, writes one host OS report, and
// closes the session. Open or write failures mean the device went away
// between match and open, or an OS-level fault; the caller decides whether
// that is fatal.
func (b *BoardConnection) Probe(info hid.Info) error {
	dev, err := b.mgr.Open(info)
	if err != nil {
		return fmt.Errorf("probe: open %s: %w", info.Path, err)
	}
	defer dev.Close()

	if _, err := dev.Write(BuildReport(b.osCode)); err != nil {
		return fmt.Errorf("probe: write %s: %w", info.Path, err)
	}
	return nil
}

// ProbeAll sweeps every configured keyboard once, in name order. Absent
// keyboards are logged and skipped; a transport failure on one keyboard
// does not stop the sweep for the others. Failures are aggregated into the
// returned error.
func (b *BoardConnection) ProbeAll() error {
	var result *multierror.Error
	for _, name := range b.names {
		kb := b.cfg.Keyboards[name]

		info, err := b.FindInterface(kb.VendorID, kb.ProductID)
		if errors.Is(err, ErrNotConnected) {
			slog.Info("keyboard not connected", slog.String("keyboard", name))
			continue
		}
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", name, err))
			continue
		}

		if err := b.Probe(info); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", name, err))
			continue
		}
		slog.Info("host os reported",
			slog.String("keyboard", name),
			slog.String("path", info.Path))
	}
	return result.ErrorOrNil()
}

// Interfaces returns every HID interface currently visible on the host.
func (b *BoardConnection) Interfaces() ([]hid.Info, error) {
	return b.mgr.List()
}
