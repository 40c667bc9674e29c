package report

import "cims/internal/citizen"

// StatusCount is one row of the by-status table. Statuses with no matching
// citizens are omitted, not zero-filled; consumers key on presence.
type StatusCount struct {
	Status citizen.Status `json:"status"`
	Count  int            `json:"count"`
}

// SexCount is one row of the by-sex table. Same omission policy as status.
type SexCount struct {
	Sex   citizen.Sex `json:"sex"`
	Count int         `json:"count"`
}

// BucketCount is a labeled count used by the age-tier, birth-month, and
// birth-quarter tables.
type BucketCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// PaymentStat pairs a status bucket with its member count and the cash total
// owed to its members under max-year crediting.
type PaymentStat struct {
	Status citizen.Status `json:"status"`
	Count  int            `json:"count"`
	Amount int64          `json:"amount"`
}

// GeoRef is a code+name pair from the geography reference. The aggregation
// engine takes these instead of the geo package's types so it stays free of
// store concerns.
type GeoRef struct {
	Code string
	Name string
}

// GeoStat is one row of the by-province or by-LGU table. Every reference
// entry appears, zero-filled when nothing matched.
type GeoStat struct {
	Code     string                 `json:"code"`
	Name     string                 `json:"name"`
	ByStatus map[citizen.Status]int `json:"by_status"`
	Total    int                    `json:"total"`
}

// ExactAgeStat is one row of the paid-by-specific-age table.
type ExactAgeStat struct {
	Age           int     `json:"age"`
	Count         int     `json:"count"`
	Male          int     `json:"male"`
	Female        int     `json:"female"`
	MalePercent   float64 `json:"male_percent"`
	FemalePercent float64 `json:"female_percent"`
	PercentOfPaid float64 `json:"percent_of_paid"`
	Amount        int64   `json:"amount"`
}

// AggregateReport bundles every dashboard table. It is recomputed in full on
// each request and never cached or persisted.
type AggregateReport struct {
	TotalCitizens  int            `json:"total_citizens"`
	ByStatus       []StatusCount  `json:"by_status"`
	BySex          []SexCount     `json:"by_sex"`
	ByAgeTier      []BucketCount  `json:"by_age_tier"`
	ByBirthMonth   []BucketCount  `json:"by_birth_month"`
	ByBirthQuarter []BucketCount  `json:"by_birth_quarter"`
	PaymentStats   []PaymentStat  `json:"payment_stats"`
	ByProvince     []GeoStat      `json:"by_province"`
	ByLGU          []GeoStat      `json:"by_lgu,omitempty"`
	PaidByExactAge []ExactAgeStat `json:"paid_by_exact_age"`
}
