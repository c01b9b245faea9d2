//go:build karalabeusb

package hid

import (
	"errors"
	"fmt"

	"github.com/karalabe/usb"
)

// Alternate backend on karalabe/usb for builds where hidapi is unavailable.
// Select with -tags karalabeusb.

type usbManager struct{}

func newManager() (Manager, error) {
	if !usb.Supported() {
		return nil, errors.New("hid: usb backend not supported on this platform")
	}
	return &usbManager{}, nil
}

func (m *usbManager) List() ([]Info, error) {
	devs, err := usb.EnumerateHid(0, 0)
	if err != nil {
		return nil, fmt.Errorf("hid: enumerate: %w", err)
	}
	out := make([]Info, 0, len(devs))
	for _, d := range devs {
		out = append(out, Info{
			Path:         d.Path,
			VendorID:     d.VendorID,
			ProductID:    d.ProductID,
			Usage:        d.Usage,
			UsagePage:    d.UsagePage,
			Product:      d.Product,
			Manufacturer: d.Manufacturer,
		})
	}
	return out, nil
}

func (m *usbManager) Open(info Info) (Device, error) {
	devs, err := usb.EnumerateHid(info.VendorID, info.ProductID)
	if err != nil {
		return nil, fmt.Errorf("hid: enumerate: %w", err)
	}
	for _, d := range devs {
		if d.Path == info.Path {
			return d.Open()
		}
	}
	return nil, fmt.Errorf("hid: device %s no longer present", info.Path)
}

func (m *usbManager) Close() error {
	return nil
}
