package ip2loc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestField_NameRoundTrip(t *testing.T) {
	fields := AllFields()
	assert.Len(t, fields, 20)
	for _, f := range fields {
		got, ok := ParseField(f.String())
		assert.True(t, ok, f.String())
		assert.Equal(t, f, got)
	}

	_, ok := ParseField("continent")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Field(200).String())
}

func TestColumn(t *testing.T) {
	tests := []struct {
		field  Field
		dbType uint8
		want   uint8
	}{
		{CountryShort, 1, 2},
		{CountryLong, 1, 2},
		{Region, 1, 0},
		{ISP, 2, 3},
		{Latitude, 5, 5},
		{Domain, 7, 6},
		{TimeZone, 13, 7},
		{NetSpeed, 13, 8},
		{IDDCode, 15, 9},
		{WeatherStationCode, 17, 9},
		{MobileBrand, 19, 11},
		{Elevation, 21, 11},
		{UsageType, 23, 12},
		{UsageType, 24, 20},
		{UsageType, 25, 20},
		{City, 0, 0},
		{City, 26, 0},
		{Field(99), 24, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Column(tt.field, tt.dbType), "%s in DB%d", tt.field, tt.dbType)
	}
}

// Every column in a type is used by exactly one field, except the shared
// country column.
func TestColumn_Distinct(t *testing.T) {
	for dbType := uint8(minDBType); dbType <= maxDBType; dbType++ {
		seen := map[uint8]Field{}
		for _, f := range AllFields() {
			col := Column(f, dbType)
			if col == 0 || f == CountryLong {
				continue
			}
			prev, dup := seen[col]
			assert.False(t, dup, "DB%d column %d used by %s and %s", dbType, col, prev, f)
			seen[col] = f
		}
		assert.Equal(t, uint8(2), Column(CountryShort, dbType))
	}
}

func TestRecord_Get(t *testing.T) {
	city := "Paris"
	lat := -27.5
	rec := &Record{IP: "1.0.0.0", City: &city, Latitude: &lat}

	v, ok := rec.Get(City)
	assert.True(t, ok)
	assert.Equal(t, "Paris", v)

	v, ok = rec.Get(Latitude)
	assert.True(t, ok)
	assert.Equal(t, "-27.500000", v)

	_, ok = rec.Get(Longitude)
	assert.False(t, ok)
	_, ok = rec.Get(Region)
	assert.False(t, ok)
	_, ok = rec.Get(Field(99))
	assert.False(t, ok)
}
