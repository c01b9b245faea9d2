//go:build linux

package probe

// HostOSCode is the os_detection code for the platform this binary was
// built for.
const HostOSCode = OSLinux
