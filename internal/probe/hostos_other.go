//go:build !linux && !windows && !darwin

package probe

// Firmware has no code for other platforms; report Linux, the closest fit
// for the BSDs.
const HostOSCode = OSLinux
