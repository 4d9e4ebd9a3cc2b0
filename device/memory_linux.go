//go:build linux

package device

import (
	"context"
	"fmt"

	"golang.org/x/sys/unix"
)

// ReadAt fills dst with the bytes at address in the target process using
// process_vm_readv. Anything short of len(dst) bytes is an error.
func (m *ProcessMemory) ReadAt(ctx context.Context, address uint64, dst []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(dst) == 0 {
		return nil
	}
	local := []unix.Iovec{{Base: &dst[0]}}
	local[0].SetLen(len(dst))
	remote := []unix.RemoteIovec{{Base: uintptr(address), Len: len(dst)}}

	n, err := unix.ProcessVMReadv(m.PID, local, remote, 0)
	if err != nil {
		return fmt.Errorf("process_vm_readv pid %d: %w", m.PID, err)
	}
	if n != len(dst) {
		return fmt.Errorf("%w: %d of %d bytes", ErrShortRead, n, len(dst))
	}
	return nil
}
