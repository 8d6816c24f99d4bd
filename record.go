package ip2loc

import "strconv"

// Record is the decoded geolocation data for one address range.
//
// A nil field means the database type does not carry that column.
type Record struct {
	IP string `json:"ip" msgpack:"ip"`

	CountryShort       *string  `json:"country_short,omitempty" msgpack:"country_short,omitempty"`
	CountryLong        *string  `json:"country_long,omitempty" msgpack:"country_long,omitempty"`
	Region             *string  `json:"region,omitempty" msgpack:"region,omitempty"`
	City               *string  `json:"city,omitempty" msgpack:"city,omitempty"`
	ISP                *string  `json:"isp,omitempty" msgpack:"isp,omitempty"`
	Latitude           *float64 `json:"latitude,omitempty" msgpack:"latitude,omitempty"`
	Longitude          *float64 `json:"longitude,omitempty" msgpack:"longitude,omitempty"`
	Domain             *string  `json:"domain,omitempty" msgpack:"domain,omitempty"`
	ZipCode            *string  `json:"zipcode,omitempty" msgpack:"zipcode,omitempty"`
	TimeZone           *string  `json:"timezone,omitempty" msgpack:"timezone,omitempty"`
	NetSpeed           *string  `json:"netspeed,omitempty" msgpack:"netspeed,omitempty"`
	IDDCode            *string  `json:"idd_code,omitempty" msgpack:"idd_code,omitempty"`
	AreaCode           *string  `json:"area_code,omitempty" msgpack:"area_code,omitempty"`
	WeatherStationCode *string  `json:"weather_code,omitempty" msgpack:"weather_code,omitempty"`
	WeatherStationName *string  `json:"weather_name,omitempty" msgpack:"weather_name,omitempty"`
	MCC                *string  `json:"mcc,omitempty" msgpack:"mcc,omitempty"`
	MNC                *string  `json:"mnc,omitempty" msgpack:"mnc,omitempty"`
	MobileBrand        *string  `json:"mobile_brand,omitempty" msgpack:"mobile_brand,omitempty"`
	Elevation          *string  `json:"elevation,omitempty" msgpack:"elevation,omitempty"`
	UsageType          *string  `json:"usage_type,omitempty" msgpack:"usage_type,omitempty"`
}

// Get returns field f as text. ok is false when the record lacks f.
// Coordinates are formatted with six decimals.
func (r *Record) Get(f Field) (value string, ok bool) {
	switch f {
	case Latitude:
		return formatCoord(r.Latitude)
	case Longitude:
		return formatCoord(r.Longitude)
	}
	p := r.text(f)
	if p == nil || *p == nil {
		return "", false
	}
	return **p, true
}

// text returns the slot holding text field f, or nil for coordinates.
func (r *Record) text(f Field) **string {
	switch f {
	case CountryShort:
		return &r.CountryShort
	case CountryLong:
		return &r.CountryLong
	case Region:
		return &r.Region
	case City:
		return &r.City
	case ISP:
		return &r.ISP
	case Domain:
		return &r.Domain
	case ZipCode:
		return &r.ZipCode
	case TimeZone:
		return &r.TimeZone
	case NetSpeed:
		return &r.NetSpeed
	case IDDCode:
		return &r.IDDCode
	case AreaCode:
		return &r.AreaCode
	case WeatherStationCode:
		return &r.WeatherStationCode
	case WeatherStationName:
		return &r.WeatherStationName
	case MCC:
		return &r.MCC
	case MNC:
		return &r.MNC
	case MobileBrand:
		return &r.MobileBrand
	case Elevation:
		return &r.Elevation
	case UsageType:
		return &r.UsageType
	}
	return nil
}

func (r *Record) coord(f Field) **float64 {
	switch f {
	case Latitude:
		return &r.Latitude
	case Longitude:
		return &r.Longitude
	}
	return nil
}

func formatCoord(v *float64) (string, bool) {
	if v == nil {
		return "", false
	}
	return strconv.FormatFloat(*v, 'f', 6, 64), true
}
