package ip2loc

import "math"

// rowStart reads the first address of row in the IPv4 or IPv6 table.
func (db *DB) rowStart(row uint64, v6 bool) (Address, error) {
	base, _, _, stride, _ := db.header.table(v6)
	pos := uint64(base) + row*stride
	if !v6 {
		v, err := db.buf.readUint32("row address", pos)
		if err != nil {
			return Address{}, err
		}
		return AddressV4(v), nil
	}
	v, err := db.buf.readUint128("row address", pos)
	if err != nil {
		return Address{}, err
	}
	return AddressV6(v), nil
}

// decodeRecord decodes every field the database type carries for row.
// ip becomes the record's IP.
func (db *DB) decodeRecord(row uint64, v6 bool, ip string) (*Record, error) {
	base, _, _, stride, extra := db.header.table(v6)
	rowPos := uint64(base) + row*stride + extra

	rec := &Record{IP: ip}
	for f := Field(0); f < fieldCount; f++ {
		col := Column(f, db.header.Type)
		if col == 0 {
			continue
		}
		pos := rowPos + 4*uint64(col-1)
		op := "field " + f.String()

		if slot := rec.coord(f); slot != nil {
			v, err := db.buf.readFloat32(op, pos)
			if err != nil {
				return nil, err
			}
			c := roundCoord(v)
			*slot = &c
			continue
		}

		ptr, err := db.buf.readUint32(op, pos)
		if err != nil {
			return nil, err
		}
		// The country column points at the short code; the long name
		// follows it, its length byte 3 bytes after the pointer.
		if f == CountryLong {
			ptr += 3
		}
		s, err := db.buf.readString(op, uint64(ptr))
		if err != nil {
			return nil, err
		}
		*rec.text(f) = &s
	}
	return rec, nil
}

func roundCoord(v float32) float64 {
	return math.RoundToEven(float64(v)*1e6) / 1e6
}
