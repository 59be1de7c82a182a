package service

import (
	"strings"

	"gls-plugin/config"
)

// Express delivery time options. Eligibility is postcode-dependent:
// the carrier only guarantees morning delivery inside covered zones.
const (
	ExpressT09 = "T09"
	ExpressT10 = "T10"
	ExpressT12 = "T12"
)

// ExpressRuleTable maps (origin country, destination postcode) to the
// set of express time options offered there. Loaded once at startup by
// the reference-data loader and treated as immutable afterwards, so
// concurrent lookups need no locking. Lookups that match nothing mean
// "not offered" -- an unrecognized option value is never an error and
// never substituted with a different time.
type ExpressRuleTable struct {
	offered map[string]map[string]bool
}

func NewExpressRuleTable(rows []config.ExpressRuleConfig) ExpressRuleTable {
	offered := make(map[string]map[string]bool, len(rows))
	for _, row := range rows {
		key := expressRuleKey(row.Country, row.ZipCode)
		if key == "|" {
			continue
		}
		options, ok := offered[key]
		if !ok {
			options = make(map[string]bool, len(row.Offered))
			offered[key] = options
		}
		for _, code := range row.Offered {
			code = strings.ToUpper(strings.TrimSpace(code))
			if code != "" {
				options[code] = true
			}
		}
	}
	return ExpressRuleTable{offered: offered}
}

// Offered reports whether the given express time option is available
// for the destination postcode.
func (t ExpressRuleTable) Offered(originCountry, destinationZip, timeOption string) bool {
	timeOption = strings.ToUpper(strings.TrimSpace(timeOption))
	if timeOption == "" {
		return false
	}
	options, ok := t.offered[expressRuleKey(originCountry, destinationZip)]
	if !ok {
		return false
	}
	return options[timeOption]
}

func expressRuleKey(country, zip string) string {
	country = strings.ToUpper(strings.TrimSpace(country))
	zip = strings.ReplaceAll(strings.TrimSpace(zip), " ", "")
	return country + "|" + zip
}
