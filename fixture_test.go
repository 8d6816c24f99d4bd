package ip2loc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/proipinfo/ip2loc"
	"github.com/proipinfo/ip2loc/internal/dbtest"
)

type F = ip2loc.Field

var v4Ranges = []dbtest.Range{
	{From: "1.0.0.0", Fields: map[F]string{
		ip2loc.CountryShort: "AU", ip2loc.CountryLong: "Australia",
		ip2loc.Region: "Queensland", ip2loc.City: "Brisbane",
		ip2loc.Latitude: "-27.5", ip2loc.Longitude: "153.0",
	}},
	{From: "8.8.8.0", Fields: map[F]string{
		ip2loc.CountryShort: "US", ip2loc.CountryLong: "United States of America",
		ip2loc.Region: "California", ip2loc.City: "Mountain View",
		ip2loc.ISP: "Google LLC", ip2loc.Domain: "google.com",
		ip2loc.Latitude: "37.375", ip2loc.Longitude: "-122.0625",
		ip2loc.ZipCode: "94043", ip2loc.TimeZone: "-07:00", ip2loc.NetSpeed: "T1",
		ip2loc.IDDCode: "1", ip2loc.AreaCode: "650",
		ip2loc.WeatherStationCode: "USCA0746", ip2loc.WeatherStationName: "Mountain View",
		ip2loc.MCC: "-", ip2loc.MNC: "-", ip2loc.MobileBrand: "-",
		ip2loc.Elevation: "32", ip2loc.UsageType: "DCH",
	}},
	{From: "8.8.9.0", Fields: map[F]string{
		ip2loc.CountryShort: "US", ip2loc.CountryLong: "United States of America",
		ip2loc.City: "Ashburn",
	}},
	{From: "100.64.0.0", Fields: map[F]string{
		ip2loc.CountryShort: "FR", ip2loc.CountryLong: "France", ip2loc.City: "Paris",
	}},
	{From: "192.0.2.0", Fields: map[F]string{
		ip2loc.CountryShort: "DE", ip2loc.CountryLong: "Germany",
		ip2loc.Region: "Bayern", ip2loc.City: "München",
		ip2loc.Latitude: "48.125", ip2loc.Longitude: "11.5",
	}},
	{From: "192.0.3.0", Fields: map[F]string{
		ip2loc.CountryShort: "CH", ip2loc.CountryLong: "Switzerland", ip2loc.City: "Zürich",
	}},
	{From: "223.255.255.0", Fields: map[F]string{
		ip2loc.CountryShort: "AU", ip2loc.CountryLong: "Australia", ip2loc.City: "Sydney",
	}},
}

var v6Ranges = []dbtest.Range{
	{From: "2001:200::", Fields: map[F]string{
		ip2loc.CountryShort: "JP", ip2loc.CountryLong: "Japan", ip2loc.City: "Tokyo",
	}},
	{From: "2001:4860::", Fields: map[F]string{
		ip2loc.CountryShort: "US", ip2loc.CountryLong: "United States of America",
		ip2loc.City: "Mountain View (v6)",
		ip2loc.Latitude: "37.375", ip2loc.Longitude: "-122.0625",
	}},
	{From: "2001:4861::", Fields: map[F]string{
		ip2loc.CountryShort: "US", ip2loc.CountryLong: "United States of America", ip2loc.City: "Chicago",
	}},
	{From: "2a00:1450::", Fields: map[F]string{
		ip2loc.CountryShort: "IE", ip2loc.CountryLong: "Ireland", ip2loc.City: "Dublin",
	}},
	{From: "2c0f:f000::", Fields: map[F]string{
		ip2loc.CountryShort: "ZA", ip2loc.CountryLong: "South Africa", ip2loc.City: "Cape Town",
	}},
}

func fixtureBuilder(dbType uint8, index bool) *dbtest.Builder {
	return &dbtest.Builder{
		Type:  dbType,
		Year:  24,
		Month: 10,
		Day:   1,
		Index: index,
		V4:    v4Ranges,
		V6:    v6Ranges,
	}
}

func fixtureBytes(t testing.TB, index bool) []byte {
	t.Helper()
	buf, err := fixtureBuilder(24, index).Bytes()
	require.NoError(t, err)
	return buf
}

func openFixture(t testing.TB, index bool, opts ...ip2loc.Option) *ip2loc.DB {
	t.Helper()
	db, err := ip2loc.New(fixtureBytes(t, index), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func deref(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}
