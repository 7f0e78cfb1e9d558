package location

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// Location is a single resolved geolocation record. Drivers fill whatever
// their data source knows and always set Error; a lookup that failed inside
// a driver is reported here, never as a Go error.
type Location struct {
	IP          string  `json:"ip"`
	CountryCode string  `json:"country_code"`
	Country     string  `json:"country"`
	RegionCode  string  `json:"region_code"`
	Region      string  `json:"region"`
	City        string  `json:"city"`
	Zip         string  `json:"zip"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Timezone    string  `json:"timezone"`
	ISP         string  `json:"isp"`
	Org         string  `json:"org"`
	ASN         string  `json:"asn"`
	Hostname    string  `json:"hostname,omitempty"`

	// Error is true when the driver could not resolve the IP.
	Error bool `json:"error"`
}

// Field returns a single attribute of the record by its json name or Go
// field name, case-insensitively. The Error flag is a status bit, not an
// attribute, and is not addressable here.
func (l *Location) Field(name string) (string, error) {
	v := reflect.ValueOf(l).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Name == "Error" {
			continue
		}
		tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if strings.EqualFold(tag, name) || strings.EqualFold(f.Name, name) {
			return formatValue(v.Field(i)), nil
		}
	}
	return "", FieldNotFoundError{field: name}
}

// Values returns every non-empty attribute value of the record, formatted
// as strings. The Error flag is excluded.
func (l *Location) Values() []string {
	v := reflect.ValueOf(l).Elem()
	t := v.Type()
	values := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Name == "Error" {
			continue
		}
		fv := v.Field(i)
		// a zero coordinate is indistinguishable from an unfilled one,
		// so it is treated as unset here but still reachable via Field
		if fv.Kind() == reflect.Float64 && fv.Float() == 0 {
			continue
		}
		s := formatValue(fv)
		if s == "" {
			continue
		}
		values = append(values, s)
	}
	return values
}

// Is reports whether any attribute value of the record equals the given
// string ignoring case. It is a membership test over values, not keys.
func (l *Location) Is(value string) bool {
	return slices.ContainsFunc(l.Values(), func(s string) bool {
		return strings.EqualFold(s, value)
	})
}

func (l *Location) String() string {
	return fmt.Sprintf("Location(ip=%s, country=%s, city=%s, error=%t)",
		l.IP, l.CountryCode, l.City, l.Error)
}

func formatValue(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	default:
		return fmt.Sprint(v.Interface())
	}
}
