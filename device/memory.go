package device

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupported is returned on platforms without a remote read primitive.
	ErrUnsupported = errors.New("reading another process's memory is not supported on this platform")
	// ErrShortRead is returned when the kernel copied fewer bytes than asked.
	ErrShortRead = errors.New("short read")
)

// ProcessMemory reads the address space of a running process.
type ProcessMemory struct {
	PID int
}

// NewProcessMemory returns a reader for pid.
func NewProcessMemory(pid int) (*ProcessMemory, error) {
	if pid <= 0 {
		return nil, fmt.Errorf("invalid pid %d", pid)
	}
	return &ProcessMemory{PID: pid}, nil
}
