package service

import (
	"strings"

	"gls-plugin/config"
)

// InsuranceBand is the inclusive monetary range inside which a
// shipment qualifies for the INS service.
type InsuranceBand struct {
	Min float64
	Max float64
}

func (b InsuranceBand) Contains(value float64) bool {
	return value >= b.Min && value <= b.Max
}

// InsuranceBandTable holds per-country bands, separately for domestic
// and cross-border shipments. Immutable after construction.
type InsuranceBandTable struct {
	domestic map[string]InsuranceBand
	export   map[string]InsuranceBand
}

func NewInsuranceBandTable(rows []config.InsuranceBandConfig) InsuranceBandTable {
	table := InsuranceBandTable{
		domestic: make(map[string]InsuranceBand),
		export:   make(map[string]InsuranceBand),
	}
	for _, row := range rows {
		country := strings.ToUpper(strings.TrimSpace(row.Country))
		if country == "" || row.Max < row.Min {
			continue
		}
		band := InsuranceBand{Min: row.Min, Max: row.Max}
		if row.Export {
			table.export[country] = band
		} else {
			table.domestic[country] = band
		}
	}
	return table
}

// Band returns the configured band for the origin country, if any.
func (t InsuranceBandTable) Band(country string, domestic bool) (InsuranceBand, bool) {
	country = strings.ToUpper(strings.TrimSpace(country))
	if domestic {
		band, ok := t.domestic[country]
		return band, ok
	}
	band, ok := t.export[country]
	return band, ok
}

// Eligible reports whether a shipment of the given value qualifies for
// insurance. Both band bounds are inclusive; a country with no band
// configured never qualifies.
func (t InsuranceBandTable) Eligible(country string, domestic bool, value float64) bool {
	band, ok := t.Band(country, domestic)
	if !ok {
		return false
	}
	return band.Contains(value)
}

// DefaultInsuranceBands carries the carrier's published per-country
// limits, used when configuration supplies no table of its own.
func DefaultInsuranceBands() []config.InsuranceBandConfig {
	return []config.InsuranceBandConfig{
		{Country: "CZ", Min: 20001, Max: 100000},
		{Country: "HR", Min: 165.9, Max: 1659.04},
		{Country: "HU", Min: 50001, Max: 500000},
		{Country: "RO", Min: 2001, Max: 7000},
		{Country: "RS", Min: 40001, Max: 200000},
		{Country: "SI", Min: 201, Max: 2000},
		{Country: "SK", Min: 332, Max: 2655},
		{Country: "CZ", Export: true, Min: 20001, Max: 100000},
		{Country: "HR", Export: true, Min: 165.9, Max: 663.61},
		{Country: "HU", Export: true, Min: 50001, Max: 500000},
		{Country: "RO", Export: true, Min: 2001, Max: 7000},
		{Country: "SI", Export: true, Min: 201, Max: 2000},
		{Country: "SK", Export: true, Min: 332, Max: 2655},
	}
}
