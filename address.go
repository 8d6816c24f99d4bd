package ip2loc

import (
	"net/netip"
	"strings"

	"lukechampine.com/uint128"
)

const mappedPrefix = "::ffff:"

// Address is a classified IP address: either a 32-bit IPv4 value or a
// 128-bit IPv6 value, both in network byte order.
type Address struct {
	v6   bool
	ipv4 uint32
	ipv6 uint128.Uint128
}

// AddressV4 returns the IPv4 address with numeric value v.
func AddressV4(v uint32) Address {
	return Address{ipv4: v}
}

// AddressV6 returns the IPv6 address with numeric value v.
func AddressV6(v uint128.Uint128) Address {
	return Address{v6: true, ipv6: v}
}

// ParseAddress classifies s as IPv4 or IPv6.
//
// IPv6 parsing is attempted first so that the IPv4-mapped form
// "::ffff:a.b.c.d" is recognised and collapsed to plain IPv4.
func ParseAddress(s string) (Address, error) {
	if v6, ok := parseV6(s); ok {
		if len(s) > len(mappedPrefix) && strings.EqualFold(s[:len(mappedPrefix)], mappedPrefix) {
			if v4, ok := parseV4(s[len(mappedPrefix):]); ok {
				return AddressV4(v4), nil
			}
		}
		return AddressV6(v6), nil
	}
	if v4, ok := parseV4(s); ok {
		return AddressV4(v4), nil
	}
	return Address{}, &InvalidAddressError{Addr: s}
}

func parseV6(s string) (uint128.Uint128, bool) {
	if !strings.Contains(s, ":") {
		return uint128.Zero, false
	}
	ip, err := netip.ParseAddr(s)
	if err != nil || !ip.Is6() || ip.Zone() != "" {
		return uint128.Zero, false
	}
	b := ip.As16()
	return uint128.FromBytesBE(b[:]), true
}

func parseV4(s string) (uint32, bool) {
	ip, err := netip.ParseAddr(s)
	if err != nil || !ip.Is4() {
		return 0, false
	}
	b := ip.As4()
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), true
}

// Version returns 4 or 6.
func (a Address) Version() int {
	if a.v6 {
		return 6
	}
	return 4
}

// Is4 reports whether a is an IPv4 address.
func (a Address) Is4() bool { return !a.v6 }

// V4 returns the IPv4 value; it is 0 for IPv6 addresses.
func (a Address) V4() uint32 { return a.ipv4 }

// V6 returns the IPv6 value; it is zero for IPv4 addresses.
func (a Address) V6() uint128.Uint128 { return a.ipv6 }

// Addr converts a to a netip.Addr.
func (a Address) Addr() netip.Addr {
	if !a.v6 {
		v := a.ipv4
		return netip.AddrFrom4([4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
	}
	var b [16]byte
	a.ipv6.PutBytesBE(b[:])
	return netip.AddrFrom16(b)
}

// String returns the canonical text form of a.
func (a Address) String() string {
	return a.Addr().String()
}

// bucket returns the index bucket of a: its top 16 bits.
func (a Address) bucket() uint32 {
	if !a.v6 {
		return a.ipv4 >> 16
	}
	return uint32(a.ipv6.Hi >> 48)
}

// compare orders two addresses of the same family.
func (a Address) compare(b Address) int {
	if !a.v6 {
		switch {
		case a.ipv4 < b.ipv4:
			return -1
		case a.ipv4 > b.ipv4:
			return 1
		}
		return 0
	}
	return a.ipv6.Cmp(b.ipv6)
}
