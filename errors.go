package ip2loc

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is matched by every *FormatError.
	ErrFormat = errors.New("ip2loc: invalid database format")
	// ErrInvalidAddress is matched by every *InvalidAddressError.
	ErrInvalidAddress = errors.New("ip2loc: invalid IP address")
	// ErrClosed is returned when a closed database is used.
	ErrClosed = errors.New("ip2loc: database is closed")

	errOutOfBounds = errors.New("read out of bounds")
)

// FormatError reports a truncated or corrupt database buffer.
//
// Op names the read that failed (e.g. "header", "row", "field city") and
// Offset is the 1-based file position involved, when there is one.
type FormatError struct {
	Op     string
	Offset uint64
	Err    error
}

func (e *FormatError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("ip2loc: %s at position %d: %v", e.Op, e.Offset, e.Err)
	}
	return fmt.Sprintf("ip2loc: %s: %v", e.Op, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrFormat) match any FormatError.
func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// InvalidAddressError reports an address string that is neither IPv4 nor IPv6.
type InvalidAddressError struct {
	Addr string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("ip2loc: invalid IP address %q", e.Addr)
}

// Is lets errors.Is(err, ErrInvalidAddress) match any InvalidAddressError.
func (e *InvalidAddressError) Is(target error) bool { return target == ErrInvalidAddress }

func formatErr(op string, offset uint64, err error) error {
	return &FormatError{Op: op, Offset: offset, Err: err}
}
