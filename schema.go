package ip2loc

// Field identifies one optional column of a database record.
type Field uint8

// Fields in the order they appear in a Record.
const (
	CountryShort Field = iota
	CountryLong
	Region
	City
	ISP
	Latitude
	Longitude
	Domain
	ZipCode
	TimeZone
	NetSpeed
	IDDCode
	AreaCode
	WeatherStationCode
	WeatherStationName
	MCC
	MNC
	MobileBrand
	Elevation
	UsageType

	fieldCount
)

const (
	minDBType = 1
	maxDBType = 25
)

var fieldNames = [fieldCount]string{
	CountryShort:       "country_short",
	CountryLong:        "country_long",
	Region:             "region",
	City:               "city",
	ISP:                "isp",
	Latitude:           "latitude",
	Longitude:          "longitude",
	Domain:             "domain",
	ZipCode:            "zipcode",
	TimeZone:           "timezone",
	NetSpeed:           "netspeed",
	IDDCode:            "idd_code",
	AreaCode:           "area_code",
	WeatherStationCode: "weather_code",
	WeatherStationName: "weather_name",
	MCC:                "mcc",
	MNC:                "mnc",
	MobileBrand:        "mobile_brand",
	Elevation:          "elevation",
	UsageType:          "usage_type",
}

// schema holds, per field and database type (index 0 is type 1), the
// 1-based column of the field in a row. 0 means the type lacks the field.
var schema = [fieldCount][maxDBType]uint8{
	CountryShort:       {2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2},
	CountryLong:        {2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2},
	Region:             {0, 0, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3},
	City:               {0, 0, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4},
	ISP:                {0, 3, 0, 5, 0, 7, 5, 7, 0, 8, 0, 9, 0, 9, 0, 9, 0, 9, 7, 9, 0, 9, 7, 9, 9},
	Latitude:           {0, 0, 0, 0, 5, 5, 0, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5},
	Longitude:          {0, 0, 0, 0, 6, 6, 0, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6},
	Domain:             {0, 0, 0, 0, 0, 0, 6, 8, 0, 9, 0, 10, 0, 10, 0, 10, 0, 10, 8, 10, 0, 10, 8, 10, 10},
	ZipCode:            {0, 0, 0, 0, 0, 0, 0, 0, 7, 7, 7, 7, 0, 7, 7, 7, 0, 7, 0, 7, 7, 7, 0, 7, 7},
	TimeZone:           {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 8, 8, 7, 8, 8, 8, 7, 8, 0, 8, 8, 8, 0, 8, 8},
	NetSpeed:           {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 8, 11, 0, 11, 8, 11, 0, 11, 0, 11, 0, 11, 11},
	IDDCode:            {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 9, 12, 0, 12, 0, 12, 9, 12, 0, 12, 12},
	AreaCode:           {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 10, 13, 0, 13, 0, 13, 10, 13, 0, 13, 13},
	WeatherStationCode: {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 9, 14, 0, 14, 0, 14, 0, 14, 14},
	WeatherStationName: {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 10, 15, 0, 15, 0, 15, 0, 15, 15},
	MCC:                {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 9, 16, 0, 16, 9, 16, 16},
	MNC:                {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 10, 17, 0, 17, 10, 17, 17},
	MobileBrand:        {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 11, 18, 0, 18, 11, 18, 18},
	Elevation:          {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 11, 19, 0, 19, 19},
	UsageType:          {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 12, 20, 20},
}

// String returns the field's record key, e.g. "country_short".
func (f Field) String() string {
	if f < fieldCount {
		return fieldNames[f]
	}
	return "unknown"
}

// ParseField returns the field named name (as produced by Field.String).
func ParseField(name string) (Field, bool) {
	for f, n := range fieldNames {
		if n == name {
			return Field(f), true
		}
	}
	return 0, false
}

// AllFields returns every field in record order.
func AllFields() []Field {
	fields := make([]Field, fieldCount)
	for i := range fields {
		fields[i] = Field(i)
	}
	return fields
}

// Column returns the 1-based column of f for dbType, or 0 if dbType does not
// carry the field or is out of range.
func Column(f Field, dbType uint8) uint8 {
	if f >= fieldCount || dbType < minDBType || dbType > maxDBType {
		return 0
	}
	return schema[f][dbType-1]
}
