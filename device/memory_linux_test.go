//go:build linux

package device

import (
	"context"
	"errors"
	"os"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func selfMemory(t *testing.T) *ProcessMemory {
	t.Helper()
	m, err := NewProcessMemory(os.Getpid())
	require.NoError(t, err)
	return m
}

func TestReadOwnMemory(t *testing.T) {
	src := []byte("memwatch reads this")
	m := selfMemory(t)

	dst := make([]byte, len(src))
	err := m.ReadAt(context.Background(), uint64(uintptr(unsafe.Pointer(&src[0]))), dst)
	if errors.Is(err, unix.EPERM) || errors.Is(err, unix.ENOSYS) {
		t.Skipf("process_vm_readv unavailable: %v", err)
	}
	require.NoError(t, err)
	assert.Equal(t, src, dst)
}

func TestReadUnmappedFails(t *testing.T) {
	m := selfMemory(t)
	err := m.ReadAt(context.Background(), 0, make([]byte, 8))
	require.Error(t, err)
}

func TestReadHonoursContext(t *testing.T) {
	m := selfMemory(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := m.ReadAt(ctx, 0x1000, make([]byte, 4))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewProcessMemoryRejectsBadPID(t *testing.T) {
	_, err := NewProcessMemory(0)
	assert.Error(t, err)
}
