package ip2loc

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// HeaderSize is the length of the fixed database header in bytes.
const HeaderSize = 29

// Header is the parsed database header.
type Header struct {
	Type        uint8 // schema selector, 1..25
	ColumnCount uint8 // 32-bit columns per row, address column included
	Year        uint8 // two-digit build year
	Month       uint8
	Day         uint8

	IPv4Count     uint32 // rows in the IPv4 table, sentinel excluded
	IPv4Base      uint32 // 1-based position of the IPv4 table
	IPv6Count     uint32
	IPv6Base      uint32
	IPv4IndexBase uint32 // 0 when there is no IPv4 index
	IPv6IndexBase uint32
}

func parseHeader(buf []byte) (*Header, error) {
	if len(buf) < HeaderSize {
		return nil, formatErr("header", 0, fmt.Errorf("need %d bytes, got %d", HeaderSize, len(buf)))
	}
	h := &Header{
		Type:          buf[0],
		ColumnCount:   buf[1],
		Year:          buf[2],
		Month:         buf[3],
		Day:           buf[4],
		IPv4Count:     binary.LittleEndian.Uint32(buf[5:9]),
		IPv4Base:      binary.LittleEndian.Uint32(buf[9:13]),
		IPv6Count:     binary.LittleEndian.Uint32(buf[13:17]),
		IPv6Base:      binary.LittleEndian.Uint32(buf[17:21]),
		IPv4IndexBase: binary.LittleEndian.Uint32(buf[21:25]),
		IPv6IndexBase: binary.LittleEndian.Uint32(buf[25:29]),
	}
	if h.Type < minDBType || h.Type > maxDBType {
		return nil, formatErr("header", 1, fmt.Errorf("database type %d out of range [%d,%d]", h.Type, minDBType, maxDBType))
	}
	if h.ColumnCount == 0 {
		return nil, formatErr("header", 2, errors.New("column count is zero"))
	}
	if need := minColumns(h.Type); h.ColumnCount < need {
		return nil, formatErr("header", 2, fmt.Errorf("DB%d needs %d columns, header has %d", h.Type, need, h.ColumnCount))
	}
	return h, nil
}

// Date returns the database build date.
func (h *Header) Date() time.Time {
	return time.Date(2000+int(h.Year), time.Month(h.Month), int(h.Day), 0, 0, 0, 0, time.UTC)
}

// Fields returns the fields present in records of this database.
func (h *Header) Fields() []Field {
	var fields []Field
	for f := Field(0); f < fieldCount; f++ {
		if Column(f, h.Type) != 0 {
			fields = append(fields, f)
		}
	}
	return fields
}

// Has reports whether records of this database carry f.
func (h *Header) Has(f Field) bool {
	return Column(f, h.Type) != 0
}

// minColumns is the highest column any field occupies for dbType.
func minColumns(dbType uint8) uint8 {
	var cols uint8 = 1
	for f := Field(0); f < fieldCount; f++ {
		cols = max(cols, Column(f, dbType))
	}
	return cols
}

func (h *Header) table(v6 bool) (base, count uint32, indexBase uint32, stride, extra uint64) {
	stride = uint64(h.ColumnCount) * 4
	if !v6 {
		return h.IPv4Base, h.IPv4Count, h.IPv4IndexBase, stride, 0
	}
	return h.IPv6Base, h.IPv6Count, h.IPv6IndexBase, stride + 12, 12
}
