//go:build windows

package device

// Windows consoles do not understand mode 2026.
const supportsSyncOutput = false
