//go:build !linux && !darwin

package ui

import "errors"

func prepareTTY(fd int) (func(), error) {
	return nil, errors.New("raw keyboard input is not supported on this platform")
}
