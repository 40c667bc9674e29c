// Package benefit implements the Expanded Centenarian Act eligibility rules:
// mapping a birth date to its canonical reporting year, and a birth date plus
// a set of target years to a qualifying age, milestone tier, and cash gift.
// This is pure domain logic - no I/O, no side effects.
package benefit

import "time"

// Cash gift amounts in pesos. The centenarian gift applies at age 100 and
// above; every earlier milestone (80, 85, 90, 95) pays the milestone gift.
const (
	CentenarianGift int64 = 100_000
	MilestoneGift   int64 = 10_000
)

// MilestoneAges are the five qualifying ages, ascending.
var MilestoneAges = [5]int{80, 85, 90, 95, 100}

// DefaultWindow returns the statutory reporting window. The table in
// CalendarYearFor is only valid for this window; extending it is a
// legislative change, not a code slide, so callers get a fresh copy of the
// fixed years rather than anything derived from the clock.
func DefaultWindow() []int {
	return []int{2024, 2025, 2026, 2027, 2028}
}

// Tier labels a milestone bucket. The label is the bucket floor, except the
// open-ended top bucket.
type Tier string

const (
	TierNone Tier = ""
	Tier80   Tier = "80"
	Tier85   Tier = "85"
	Tier90   Tier = "90"
	Tier95   Tier = "95"
	Tier100  Tier = "100+"
)

// Tiers lists the five milestone tiers in ascending order.
var Tiers = [5]Tier{Tier80, Tier85, Tier90, Tier95, Tier100}

// CalendarYearFor assigns a birth date its canonical reporting year, so every
// citizen lands in exactly one (birthYear, calendarYear) bucket within the
// 2024-2028 window.
//
// Births up to 1928 qualify for the centenarian gift at birthYear+100
// regardless of cohort cycle. From 1929 onward, birth years group into
// five-year cohorts by last digit; the table below is the inverse of "which
// target year makes (targetYear - birthYear) a milestone age". It is a closed
// lookup anchored at 2024, not a general age formula.
func CalendarYearFor(birthDate time.Time) int {
	birthYear := birthDate.Year()
	if birthYear <= 1928 {
		return birthYear + 100
	}
	switch birthYear % 10 {
	case 4, 9:
		return 2024
	case 0, 5:
		return 2025
	case 1, 6:
		return 2026
	case 2, 7:
		return 2027
	default: // 3, 8
		return 2028
	}
}

// Result is the outcome of assessing one citizen against a year window.
type Result struct {
	QualifyingAge int
	Tier          Tier
	Amount        int64
}

// Assess computes the qualifying age of a birth date across a set of target
// years. The age reported is the maximum reached in any selected year: a
// citizen selected across a multi-year window is credited at their highest
// milestone, and the gift is paid once, never amount x qualifying-years.
//
// An empty year set is a caller programming error and yields a zero Result;
// callers must pass DefaultWindow() (or the configured override) instead.
func Assess(birthDate time.Time, targetYears []int) Result {
	if len(targetYears) == 0 {
		return Result{}
	}
	birthYear := birthDate.Year()
	maxAge := targetYears[0] - birthYear
	for _, y := range targetYears[1:] {
		if age := y - birthYear; age > maxAge {
			maxAge = age
		}
	}
	return Result{
		QualifyingAge: maxAge,
		Tier:          TierForAge(maxAge),
		Amount:        AmountForAge(maxAge),
	}
}

// AmountForAge returns the gift owed at a qualifying age.
func AmountForAge(age int) int64 {
	switch {
	case age >= 100:
		return CentenarianGift
	case age >= 80:
		return MilestoneGift
	default:
		return 0
	}
}

// TierForAge buckets an age into its milestone tier: 80-84, 85-89, 90-94,
// 95-99, and 100 up. Ages under 80 have no tier.
func TierForAge(age int) Tier {
	switch {
	case age >= 100:
		return Tier100
	case age >= 95:
		return Tier95
	case age >= 90:
		return Tier90
	case age >= 85:
		return Tier85
	case age >= 80:
		return Tier80
	default:
		return TierNone
	}
}

// TurnsExactly reports whether any target year makes the citizen exactly
// exactAge years old. With no years selected the test runs against the single
// reference year for now (see ReferenceYear).
func TurnsExactly(birthDate time.Time, targetYears []int, exactAge int, now time.Time) bool {
	birthYear := birthDate.Year()
	if len(targetYears) == 0 {
		return ReferenceYear(nil, now)-birthYear == exactAge
	}
	for _, y := range targetYears {
		if y-birthYear == exactAge {
			return true
		}
	}
	return false
}

// ReferenceYear resolves the single year used for age-tiering: the first
// selected target year, or the current year when nothing is selected. This is
// deliberately not the max-across-years rule used for gift crediting; the two
// readings coexist in the program rules.
func ReferenceYear(targetYears []int, now time.Time) int {
	if len(targetYears) > 0 {
		return targetYears[0]
	}
	return now.Year()
}

// AgeIn returns the citizen's age in the given calendar year.
func AgeIn(birthDate time.Time, year int) int {
	return year - birthDate.Year()
}
