package domain

import "strings"

// DefaultGeo is used when a caller does not name a country.
const DefaultGeo = "KR"

var supportedGeos = []string{
	"KR", "US", "JP", "GB", "DE", "FR", "CA", "AU",
	"IN", "BR", "MX", "ES", "IT", "NL", "SE", "CH",
	"TW", "HK", "SG", "TH", "VN", "ID", "MY", "PH",
}

// SupportedGeos returns the commonly used country codes. Any ISO 3166-1 alpha-2
// code is accepted; this list is what callers are pointed at on a bad code.
func SupportedGeos() []string {
	out := make([]string, len(supportedGeos))
	copy(out, supportedGeos)
	return out
}

// NormalizeGeo upper-cases and trims a country code, falling back to DefaultGeo.
func NormalizeGeo(geo string) string {
	geo = strings.ToUpper(strings.TrimSpace(geo))
	if geo == "" {
		return DefaultGeo
	}
	return geo
}
