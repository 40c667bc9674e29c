package benefit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type BenefitSuite struct {
	suite.Suite
}

func TestBenefitSuite(t *testing.T) {
	suite.Run(t, new(BenefitSuite))
}

func birthday(year int) time.Time {
	return time.Date(year, time.June, 15, 0, 0, 0, 0, time.UTC)
}

// TestCalendarYearTable sweeps every birth year from 1900 through 2028 and
// checks the mapping invariants: pre-1929 births land exactly on age 100,
// cohort-table births land on a five-year cohort boundary, and the cohorts
// old enough to qualify inside the window land on a milestone age. The
// mapping must also be stable across calls.
func (s *BenefitSuite) TestCalendarYearTable() {
	milestones := map[int]bool{80: true, 85: true, 90: true, 95: true, 100: true}

	for birthYear := 1900; birthYear <= 2028; birthYear++ {
		cy := CalendarYearFor(birthday(birthYear))
		age := cy - birthYear

		if birthYear <= 1928 {
			s.Equalf(100, age, "birth year %d must land on age 100", birthYear)
		} else {
			s.Zerof(age%5, "birth year %d maps to age %d, off the cohort cycle", birthYear, age)
			if birthYear >= 1929 && birthYear <= 1948 {
				s.Truef(milestones[age], "birth year %d maps to age %d, not a milestone", birthYear, age)
			}
		}
		s.Equal(cy, CalendarYearFor(birthday(birthYear)), "mapping must be stable")
	}
}

func (s *BenefitSuite) TestCalendarYearPre1929() {
	s.Run("centenarian branch wins for old cohorts", func() {
		s.Equal(2028, CalendarYearFor(birthday(1928)))
		s.Equal(2019, CalendarYearFor(birthday(1919)))
		s.Equal(2000, CalendarYearFor(birthday(1900)))
	})

	s.Run("1929 goes through the cohort table", func() {
		// Last digit 9 -> 2024, age 95.
		s.Equal(2024, CalendarYearFor(birthday(1929)))
	})
}

func (s *BenefitSuite) TestCalendarYearCohortTable() {
	cases := map[int]int{
		1944: 2024, 1939: 2024, // digits 4, 9
		1940: 2025, 1945: 2025, // digits 0, 5
		1941: 2026, 1946: 2026, // digits 1, 6
		1942: 2027, 1947: 2027, // digits 2, 7
		1943: 2028, 1948: 2028, // digits 3, 8
	}
	for birthYear, want := range cases {
		s.Equalf(want, CalendarYearFor(birthday(birthYear)), "birth year %d", birthYear)
	}
}

// TestMaxYearCrediting pins the policy that a multi-year window credits the
// highest age reached and pays the gift once.
func (s *BenefitSuite) TestMaxYearCrediting() {
	res := Assess(birthday(1944), []int{2024, 2028})
	s.Equal(84, res.QualifyingAge)
	s.Equal(Tier80, res.Tier)
	s.Equal(MilestoneGift, res.Amount)
}

func (s *BenefitSuite) TestAssess() {
	s.Run("centenarian gift at 100", func() {
		res := Assess(birthday(1924), []int{2024})
		s.Equal(100, res.QualifyingAge)
		s.Equal(Tier100, res.Tier)
		s.Equal(CentenarianGift, res.Amount)
	})

	s.Run("under 80 is not eligible", func() {
		res := Assess(birthday(1950), []int{2024})
		s.Equal(74, res.QualifyingAge)
		s.Equal(TierNone, res.Tier)
		s.Zero(res.Amount)
	})

	s.Run("empty window yields zero result", func() {
		s.Equal(Result{}, Assess(birthday(1944), nil))
	})
}

func (s *BenefitSuite) TestTierBoundaries() {
	s.Equal(Tier80, TierForAge(80))
	s.Equal(Tier80, TierForAge(84))
	s.Equal(Tier85, TierForAge(85))
	s.Equal(Tier95, TierForAge(99))
	s.Equal(Tier100, TierForAge(100))
	s.Equal(Tier100, TierForAge(107))
	s.Equal(TierNone, TierForAge(79))
}

func (s *BenefitSuite) TestTurnsExactly() {
	now := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	s.Run("any selected year may match", func() {
		s.True(TurnsExactly(birthday(1944), []int{2024, 2028}, 80, now))
		s.True(TurnsExactly(birthday(1944), []int{2024, 2028}, 84, now))
		s.False(TurnsExactly(birthday(1944), []int{2024, 2028}, 85, now))
	})

	s.Run("exact means exact, not at-least", func() {
		s.False(TurnsExactly(birthday(1924), []int{2028}, 100, now))
	})

	s.Run("no selection falls back to current year", func() {
		s.True(TurnsExactly(birthday(1945), nil, 80, now))
		s.False(TurnsExactly(birthday(1944), nil, 80, now))
	})
}

func (s *BenefitSuite) TestReferenceYear() {
	now := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)
	s.Equal(2024, ReferenceYear([]int{2024, 2025}, now))
	s.Equal(2026, ReferenceYear(nil, now))
}

func (s *BenefitSuite) TestDefaultWindowIsACopy() {
	w := DefaultWindow()
	w[0] = 1999
	s.Equal([]int{2024, 2025, 2026, 2027, 2028}, DefaultWindow())
}
