// Package geo serves the province / LGU / barangay reference hierarchy. The
// store enforces parentage; consumers treat codes as opaque.
package geo

// Province is a top-level geographic unit.
type Province struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// LGU is a city or municipality under a province.
type LGU struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	ProvinceCode string `json:"province_code"`
}

// Barangay is the smallest unit, under an LGU.
type Barangay struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	LGUCode string `json:"lgu_code"`
}
