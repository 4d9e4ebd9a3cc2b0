package conf

import (
	"fmt"
	"strconv"
	"strings"
)

// parseUint accepts decimal or 0x/0o/0b prefixed numbers.
func parseUint(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(s), 0, 64)
}

// parseHex accepts hex digits with or without a 0x prefix.
func parseHex(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return strconv.ParseUint(s, 16, 64)
}

// parseAddress tries a prefixed or decimal number first and falls back to
// bare hex, so both "0x7ffd1000" and "7ffd1000" work.
func parseAddress(s string) (uint64, error) {
	if v, err := parseUint(s); err == nil {
		return v, nil
	}
	v, err := parseHex(s)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", s)
	}
	return v, nil
}

func parseCount(s string) (int, error) {
	v, err := parseUint(s)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if v > uint64(^uint(0)>>1) {
		return 0, fmt.Errorf("number %q is too large", s)
	}
	return int(v), nil
}

// addressValue is a pflag.Value for addresses.
type addressValue struct {
	p   *uint64
	set *bool
}

func (a addressValue) String() string {
	if a.p == nil {
		return "0"
	}
	return fmt.Sprintf("%#x", *a.p)
}

func (a addressValue) Set(s string) error {
	v, err := parseAddress(s)
	if err != nil {
		return err
	}
	*a.p = v
	if a.set != nil {
		*a.set = true
	}
	return nil
}

func (addressValue) Type() string { return "address" }

// countValue is a pflag.Value for sizes that may be written in hex.
type countValue struct {
	p *int
}

func (c countValue) String() string {
	if c.p == nil {
		return "0"
	}
	return fmt.Sprintf("%#x", *c.p)
}

func (c countValue) Set(s string) error {
	v, err := parseCount(s)
	if err != nil {
		return err
	}
	*c.p = v
	return nil
}

func (countValue) Type() string { return "size" }
