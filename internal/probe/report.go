package probe

import (
	"fmt"
)

// The raw HID control interface of QMK-style firmware sits on the vendor
// usage page; the standard keyboard and consumer interfaces of the same
// physical device do not accept this protocol.
const (
	Usage     uint16 = 0x61
	UsagePage uint16 = 0xFF60
)

// Host OS codes understood by the firmware's os_detection layer.
const (
	OSLinux   byte = 1
	OSWindows byte = 2
	OSMacOS   byte = 3
)

const cmdReportHostOS = 0x2A

// BuildReport assembles the wire report. Byte 0 is the report ID required
// by the transport framing and carries no protocol meaning.
func BuildReport(osCode byte) []byte {
	return []byte{0x00, cmdReportHostOS, osCode}
}

// ParseOS maps a user-supplied OS name to its firmware code.
func ParseOS(name string) (byte, error) {
	switch name {
	case "linux":
		return OSLinux, nil
	case "windows":
		return OSWindows, nil
	case "macos":
		return OSMacOS, nil
	}
	return 0, fmt.Errorf("probe: unknown os %q (expected linux, windows or macos)", name)
}
