package ip2loc

import (
	"encoding/binary"
	"math"

	"golang.org/x/text/encoding/charmap"
	"lukechampine.com/uint128"
)

// dbBuffer is a read-only view over the database bytes.
//
// Positions passed to the read methods are 1-based, as stored in the file
// header: the value at position p starts at byte p-1.
type dbBuffer []byte

func (buf dbBuffer) slice(op string, pos, n uint64) ([]byte, error) {
	if pos == 0 || pos-1+n > uint64(len(buf)) {
		return nil, formatErr(op, pos, errOutOfBounds)
	}
	return buf[pos-1 : pos-1+n], nil
}

func (buf dbBuffer) readUint32(op string, pos uint64) (uint32, error) {
	b, err := buf.slice(op, pos, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// readUint128 reads four little-endian words, least significant first.
func (buf dbBuffer) readUint128(op string, pos uint64) (uint128.Uint128, error) {
	b, err := buf.slice(op, pos, 16)
	if err != nil {
		return uint128.Zero, err
	}
	return uint128.FromBytes(b), nil
}

func (buf dbBuffer) readFloat32(op string, pos uint64) (float32, error) {
	v, err := buf.readUint32(op, pos)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// readString reads the string whose length byte sits at 0-based offset ptr.
func (buf dbBuffer) readString(op string, ptr uint64) (string, error) {
	n, err := buf.slice(op, ptr+1, 1)
	if err != nil {
		return "", err
	}
	b, err := buf.slice(op, ptr+2, uint64(n[0]))
	if err != nil {
		return "", err
	}
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", formatErr(op, ptr+2, err)
	}
	return string(s), nil
}
