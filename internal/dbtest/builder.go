// Package dbtest builds small synthetic databases in the binary layout read
// by package ip2loc, for tests and examples.
package dbtest

import (
	"fmt"
	"math"
	"net/netip"
	"sort"
	"strconv"

	"lukechampine.com/uint128"

	"github.com/proipinfo/ip2loc"
)

const (
	headerLen   = 64
	buckets     = 1 << 16
	placeholder = "-"
)

// Range is one row: the first address of the range and its field values.
// Latitude and Longitude are decimal text. Missing text fields are written
// as "-", missing coordinates as 0.
type Range struct {
	From   string
	Fields map[ip2loc.Field]string
}

// Builder describes a database to build. V4 and V6 must be sorted by From.
type Builder struct {
	Type             uint8
	Year, Month, Day uint8
	Index            bool
	V4               []Range
	V6               []Range
}

type row struct {
	from   uint128.Uint128
	fields map[ip2loc.Field]string
}

// Bytes encodes the database.
func (b *Builder) Bytes() ([]byte, error) {
	if b.Type < 1 || b.Type > 25 {
		return nil, fmt.Errorf("dbtest: database type %d out of range", b.Type)
	}
	v4, err := rows(b.V4, false)
	if err != nil {
		return nil, err
	}
	v6, err := rows(b.V6, true)
	if err != nil {
		return nil, err
	}

	cols := columnCount(b.Type)
	stride4 := uint32(cols) * 4
	stride6 := stride4 + 12

	base4 := uint32(headerLen) + 1
	base6 := base4 + uint32(len(v4))*stride4
	end := base6 + uint32(len(v6))*stride6
	var index4, index6 uint32
	if b.Index {
		index4 = end
		index6 = index4 + buckets*8
		end = index6 + buckets*8
	}

	pool := &pool{base: end - 1, s: newStream(), seen: map[string]uint32{}}
	out := newStream()

	out.writeByte(b.Type)
	out.writeByte(cols)
	out.writeByte(b.Year)
	out.writeByte(b.Month)
	out.writeByte(b.Day)
	out.writeUint32(uint32(len(v4) - 1))
	out.writeUint32(base4)
	out.writeUint32(uint32(len(v6) - 1))
	out.writeUint32(base6)
	out.writeUint32(index4)
	out.writeUint32(index6)
	out.pad(headerLen - len(out.buf))

	for _, r := range v4 {
		out.writeUint32(uint32(r.from.Lo))
		if err := writeColumns(out, pool, b.Type, cols, r.fields); err != nil {
			return nil, err
		}
	}
	for _, r := range v6 {
		out.writeUint128(r.from)
		if err := writeColumns(out, pool, b.Type, cols, r.fields); err != nil {
			return nil, err
		}
	}
	if b.Index {
		writeIndex(out, v4, 16)
		writeIndex(out, v6, 112)
	}
	if out.pos() != end {
		return nil, fmt.Errorf("dbtest: layout mismatch: pool at %d, want %d", out.pos(), end)
	}
	out.writeBuf(pool.s.buf)
	return out.buf, nil
}

// MustBytes is Bytes that panics on error.
func (b *Builder) MustBytes() []byte {
	buf, err := b.Bytes()
	if err != nil {
		panic(err)
	}
	return buf
}

// columnCount is the highest column any field uses for dbType.
func columnCount(dbType uint8) uint8 {
	cols := uint8(1)
	for _, f := range ip2loc.AllFields() {
		if c := ip2loc.Column(f, dbType); c > cols {
			cols = c
		}
	}
	return cols
}

// rows parses the ranges and appends the sentinel row at the top of the
// address space.
func rows(ranges []Range, v6 bool) ([]row, error) {
	out := make([]row, 0, len(ranges)+1)
	for i, r := range ranges {
		ip, err := netip.ParseAddr(r.From)
		if err != nil {
			return nil, fmt.Errorf("dbtest: range %d: %w", i, err)
		}
		var from uint128.Uint128
		switch {
		case !v6 && ip.Is4():
			b := ip.As4()
			from = uint128.From64(uint64(b[0])<<24 | uint64(b[1])<<16 | uint64(b[2])<<8 | uint64(b[3]))
		case v6 && ip.Is6():
			b := ip.As16()
			from = uint128.FromBytesBE(b[:])
		default:
			return nil, fmt.Errorf("dbtest: range %d: %s is in the wrong table", i, r.From)
		}
		if i > 0 && from.Cmp(out[i-1].from) <= 0 {
			return nil, fmt.Errorf("dbtest: range %d: %s is not ascending", i, r.From)
		}
		out = append(out, row{from: from, fields: r.Fields})
	}
	out = append(out, row{from: ceiling(v6)})
	return out, nil
}

func ceiling(v6 bool) uint128.Uint128 {
	if v6 {
		return uint128.Max
	}
	return uint128.From64(math.MaxUint32)
}

func writeColumns(out *stream, p *pool, dbType, cols uint8, fields map[ip2loc.Field]string) error {
	values := make([]uint32, cols-1)
	for _, f := range ip2loc.AllFields() {
		col := ip2loc.Column(f, dbType)
		if col == 0 || f == ip2loc.CountryLong {
			continue
		}
		var (
			v   uint32
			err error
		)
		switch f {
		case ip2loc.Latitude, ip2loc.Longitude:
			v, err = coord(fields[f])
		case ip2loc.CountryShort:
			v, err = p.country(value(fields, ip2loc.CountryShort, "--"), value(fields, ip2loc.CountryLong, placeholder))
		default:
			v, err = p.str(value(fields, f, placeholder))
		}
		if err != nil {
			return fmt.Errorf("dbtest: field %s: %w", f, err)
		}
		values[col-2] = v
	}
	for _, v := range values {
		out.writeUint32(v)
	}
	return nil
}

func value(fields map[ip2loc.Field]string, f ip2loc.Field, def string) string {
	if v, ok := fields[f]; ok {
		return v
	}
	return def
}

func coord(s string) (uint32, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	return math.Float32bits(float32(v)), nil
}

// writeIndex writes, for every bucket of the top 16 address bits, the
// first and last row whose range overlaps the bucket.
func writeIndex(out *stream, rs []row, shift uint) {
	rowFor := func(x uint128.Uint128) uint32 {
		i := sort.Search(len(rs), func(i int) bool { return rs[i].from.Cmp(x) > 0 })
		if i == 0 {
			return 0
		}
		return uint32(i - 1)
	}
	top := ceiling(shift == 112)
	for k := uint64(0); k < buckets; k++ {
		start := uint128.From64(k).Lsh(shift)
		end := top
		if k+1 < buckets {
			end = uint128.From64(k + 1).Lsh(shift).Sub64(1)
		}
		out.writeUint32(rowFor(start))
		out.writeUint32(rowFor(end))
	}
}

// pool is the string pool; pointers are 0-based offsets into the final file.
type pool struct {
	base uint32
	s    *stream
	seen map[string]uint32
}

func (p *pool) str(s string) (uint32, error) {
	if ptr, ok := p.seen[s]; ok {
		return ptr, nil
	}
	ptr, err := p.s.writeString(s)
	if err != nil {
		return 0, err
	}
	p.seen[s] = p.base + ptr
	return p.base + ptr, nil
}

// country writes the short code and long name back to back; the short code
// must be exactly two bytes so the long name's length byte lands at +3.
func (p *pool) country(short, long string) (uint32, error) {
	if len(short) != 2 {
		return 0, fmt.Errorf("country code %q is not two characters", short)
	}
	key := short + "\x00" + long
	if ptr, ok := p.seen[key]; ok {
		return ptr, nil
	}
	ptr, err := p.s.writeString(short)
	if err != nil {
		return 0, err
	}
	if _, err := p.s.writeString(long); err != nil {
		return 0, err
	}
	p.seen[key] = p.base + ptr
	return p.base + ptr, nil
}
