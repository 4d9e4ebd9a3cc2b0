package watch

import (
	"context"
	"fmt"
)

// MemorySource reads bytes out of the observed process. ReadAt must fill dst
// completely or return an error.
type MemorySource interface {
	ReadAt(ctx context.Context, address uint64, dst []byte) error
}

// ReadError reports a failed remote read.
type ReadError struct {
	Address uint64
	Length  int
	Err     error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %d bytes at %#x: %v", e.Length, e.Address, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

func readInto(ctx context.Context, src MemorySource, address uint64, dst []byte) error {
	if err := src.ReadAt(ctx, address, dst); err != nil {
		return &ReadError{Address: address, Length: len(dst), Err: err}
	}
	return nil
}
