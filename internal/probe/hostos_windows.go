//go:build windows

package probe

const HostOSCode = OSWindows
