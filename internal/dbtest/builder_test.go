package dbtest

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proipinfo/ip2loc"
)

func country(short, long string) map[ip2loc.Field]string {
	return map[ip2loc.Field]string{ip2loc.CountryShort: short, ip2loc.CountryLong: long}
}

func TestBuilder_Layout(t *testing.T) {
	b := &Builder{
		Type: 1, Year: 24, Month: 10, Day: 1,
		V4: []Range{{From: "1.0.0.0", Fields: country("AU", "Australia")}},
		V6: []Range{{From: "2001::", Fields: country("AU", "Australia")}},
	}
	buf, err := b.Bytes()
	require.NoError(t, err)

	le := binary.LittleEndian
	assert.Equal(t, []byte{1, 2, 24, 10, 1}, buf[:5])
	assert.Equal(t, uint32(1), le.Uint32(buf[5:]), "ipv4 count")
	assert.Equal(t, uint32(65), le.Uint32(buf[9:]), "ipv4 base")
	assert.Equal(t, uint32(1), le.Uint32(buf[13:]), "ipv6 count")
	assert.Equal(t, uint32(81), le.Uint32(buf[17:]), "ipv6 base")
	assert.Zero(t, le.Uint32(buf[21:]), "ipv4 index")
	assert.Zero(t, le.Uint32(buf[25:]), "ipv6 index")

	// rows: 1-based base 65 is buf[64]
	assert.Equal(t, uint32(0x01000000), le.Uint32(buf[64:]))
	assert.Equal(t, uint32(120), le.Uint32(buf[68:]))
	assert.Equal(t, uint32(0xFFFFFFFF), le.Uint32(buf[72:]))
	assert.Equal(t, uint32(133), le.Uint32(buf[76:]))

	// ipv6 addresses are little-endian words, least significant first
	assert.Equal(t, uint32(0x20010000), le.Uint32(buf[80+12:]))
	assert.Zero(t, le.Uint32(buf[80:]))

	// pool: short code then long name, each length prefixed
	assert.Equal(t, byte(2), buf[120])
	assert.Equal(t, "AU", string(buf[121:123]))
	assert.Equal(t, byte(9), buf[123])
	assert.Equal(t, "Australia", string(buf[124:133]))
	assert.Equal(t, byte(2), buf[133])
	assert.Equal(t, "--", string(buf[134:136]))
}

func TestBuilder_Index(t *testing.T) {
	b := &Builder{
		Type:  1,
		Index: true,
		V4: []Range{
			{From: "1.0.0.0", Fields: country("AU", "Australia")},
			{From: "8.8.8.0", Fields: country("US", "United States of America")},
		},
	}
	buf, err := b.Bytes()
	require.NoError(t, err)

	le := binary.LittleEndian
	index4 := le.Uint32(buf[21:])
	index6 := le.Uint32(buf[25:])
	require.NotZero(t, index4)
	assert.Equal(t, index4+buckets*8, index6)

	entry := func(k uint32) (uint32, uint32) {
		off := index4 - 1 + k*8
		return le.Uint32(buf[off:]), le.Uint32(buf[off+4:])
	}
	lo, hi := entry(0)
	assert.Equal(t, [2]uint32{0, 0}, [2]uint32{lo, hi})
	lo, hi = entry(0x0808)
	assert.Equal(t, [2]uint32{0, 1}, [2]uint32{lo, hi})
	lo, hi = entry(0xFFFF)
	assert.Equal(t, [2]uint32{1, 2}, [2]uint32{lo, hi})

	db, err := ip2loc.New(buf)
	require.NoError(t, err)
	rec, err := db.Lookup("8.8.8.8")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "US", *rec.CountryShort)
}

func TestBuilder_Errors(t *testing.T) {
	tests := []struct {
		name string
		b    Builder
		want string
	}{
		{"type zero", Builder{Type: 0}, "out of range"},
		{"type too big", Builder{Type: 26}, "out of range"},
		{"bad address", Builder{Type: 1, V4: []Range{{From: "nope"}}}, "range 0"},
		{"wrong table", Builder{Type: 1, V4: []Range{{From: "2001::"}}}, "wrong table"},
		{"not ascending", Builder{Type: 1, V4: []Range{{From: "8.8.8.0"}, {From: "1.0.0.0"}}}, "not ascending"},
		{"country code", Builder{Type: 1, V4: []Range{{From: "1.0.0.0", Fields: country("AUS", "Australia")}}}, "two characters"},
		{"coordinate", Builder{Type: 5, V4: []Range{{From: "1.0.0.0", Fields: map[ip2loc.Field]string{ip2loc.Latitude: "north"}}}}, "field latitude"},
		{"long string", Builder{Type: 3, V4: []Range{{From: "1.0.0.0", Fields: map[ip2loc.Field]string{ip2loc.City: strings.Repeat("x", 256)}}}}, "longer than 255"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.b.Bytes()
			assert.ErrorContains(t, err, tt.want)
		})
	}

	assert.Panics(t, func() { (&Builder{}).MustBytes() })
}
