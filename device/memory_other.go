//go:build !linux

package device

import "context"

// ReadAt always fails outside Linux.
func (m *ProcessMemory) ReadAt(ctx context.Context, address uint64, dst []byte) error {
	return ErrUnsupported
}
