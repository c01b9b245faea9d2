package hid

// Info describes one HID interface currently visible on the host. A single
// physical device commonly exposes several of these (boot keyboard,
// consumer control, vendor-specific); usage and usage page tell them apart.
type Info struct {
	Path         string
	VendorID     uint16
	ProductID    uint16
	Usage        uint16
	UsagePage    uint16
	Product      string
	Manufacturer string
}

// Device represents an opened HID device capable of report I/O.
type Device interface {
	Write([]byte) (int, error) // send output report, report ID at byte 0
	Close() error
}

// Manager enumerates and opens HID devices.
type Manager interface {
	List() ([]Info, error)
	Open(info Info) (Device, error)
	Close() error
}

// NewManager returns the platform HID manager.
func NewManager() (Manager, error) {
	return newManager()
}
