//go:build !windows

package device

// supportsSyncOutput enables synchronized output (mode 2026) frames. Terminals
// that do not know the mode ignore it.
const supportsSyncOutput = true
