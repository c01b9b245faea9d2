package hid

import (
	"fmt"
)

// MockManager is an in-memory Manager for tests.
type MockManager struct {
	Devices []Info
	Opened  []*MockDevice

	ListErr error
	OpenErr error
}

func NewMockManager(devices ...Info) *MockManager {
	return &MockManager{Devices: devices}
}

func (m *MockManager) List() ([]Info, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Devices, nil
}

func (m *MockManager) Open(info Info) (Device, error) {
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	for _, d := range m.Devices {
		if d.Path == info.Path {
			dev := &MockDevice{Info: d}
			m.Opened = append(m.Opened, dev)
			return dev, nil
		}
	}
	return nil, fmt.Errorf("hid: device %s no longer present", info.Path)
}

func (m *MockManager) Close() error {
	return nil
}

// Writes returns every report written across all opened devices, in order.
func (m *MockManager) Writes() [][]byte {
	var out [][]byte
	for _, d := range m.Opened {
		out = append(out, d.Writes...)
	}
	return out
}

// MockDevice records reports written to it.
type MockDevice struct {
	Info   Info
	Writes [][]byte
	Closed bool

	WriteErr error
}

func (d *MockDevice) Write(p []byte) (int, error) {
	if d.WriteErr != nil {
		return 0, d.WriteErr
	}
	buf := make([]byte, len(p))
	copy(buf, p)
	d.Writes = append(d.Writes, buf)
	return len(p), nil
}

func (d *MockDevice) Close() error {
	d.Closed = true
	return nil
}
