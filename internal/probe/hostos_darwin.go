//go:build darwin

package probe

const HostOSCode = OSMacOS
