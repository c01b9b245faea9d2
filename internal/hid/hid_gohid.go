//go:build !karalabeusb

package hid

import (
	hidapi "github.com/sstallion/go-hid"
)

type gohidManager struct{}

func newManager() (Manager, error) {
	if err := hidapi.Init(); err != nil {
		return nil, err
	}
	return &gohidManager{}, nil
}

func (m *gohidManager) List() ([]Info, error) {
	var out []Info
	err := hidapi.Enumerate(0, 0, func(info *hidapi.DeviceInfo) error {
		out = append(out, Info{
			Path:         info.Path,
			VendorID:     info.VendorID,
			ProductID:    info.ProductID,
			Usage:        info.Usage,
			UsagePage:    info.UsagePage,
			Product:      info.ProductStr,
			Manufacturer: info.MfrStr,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (m *gohidManager) Open(info Info) (Device, error) {
	d, err := hidapi.OpenPath(info.Path)
	if err != nil {
		return nil, err
	}
	return &gohidDevice{d}, nil
}

func (m *gohidManager) Close() error {
	return hidapi.Exit()
}

type gohidDevice struct {
	d *hidapi.Device
}

func (d *gohidDevice) Write(p []byte) (int, error) {
	return d.d.Write(p)
}

func (d *gohidDevice) Close() error {
	return d.d.Close()
}
