package dbtest

import (
	"encoding/binary"
	"errors"

	"golang.org/x/text/encoding/charmap"
	"lukechampine.com/uint128"
)

// stream is an append-only byte sink that also knows where it is, so
// callers can record 1-based positions for the header.
type stream struct {
	buf      []byte
	int32Buf []byte
}

func newStream() *stream {
	return &stream{int32Buf: make([]byte, 4)}
}

// pos returns the 1-based position of the next byte written.
func (s *stream) pos() uint32 {
	return uint32(len(s.buf)) + 1
}

func (s *stream) writeBuf(b []byte) {
	s.buf = append(s.buf, b...)
}

func (s *stream) writeByte(b byte) {
	s.buf = append(s.buf, b)
}

func (s *stream) writeUint32(v uint32) {
	binary.LittleEndian.PutUint32(s.int32Buf, v)
	s.writeBuf(s.int32Buf)
}

// writeUint128 writes v as four little-endian words, least significant first.
func (s *stream) writeUint128(v uint128.Uint128) {
	b := make([]byte, 16)
	v.PutBytes(b)
	s.writeBuf(b)
}

// writeString appends a length-prefixed ISO-8859-1 string and returns the
// 0-based offset of its length byte.
func (s *stream) writeString(str string) (uint32, error) {
	b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(str))
	if err != nil {
		return 0, err
	}
	if len(b) > 255 {
		return 0, errors.New("string longer than 255 bytes")
	}
	ptr := uint32(len(s.buf))
	s.writeByte(byte(len(b)))
	s.writeBuf(b)
	return ptr, nil
}

func (s *stream) pad(n int) {
	s.buf = append(s.buf, make([]byte, n)...)
}
