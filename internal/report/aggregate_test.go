package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"cims/internal/benefit"
	"cims/internal/citizen"
)

type AggregateSuite struct {
	suite.Suite
	now time.Time
}

func TestAggregateSuite(t *testing.T) {
	suite.Run(t, new(AggregateSuite))
}

func (s *AggregateSuite) SetupTest() {
	s.now = time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
}

func (s *AggregateSuite) senior(birthYear int, month time.Month, sex citizen.Sex, status citizen.Status) citizen.Citizen {
	c := citizen.Citizen{
		BirthDate:    time.Date(birthYear, month, 15, 0, 0, 0, 0, time.UTC),
		Sex:          sex,
		Status:       status,
		ProvinceCode: "0128",
		LGUCode:      "012801",
		BarangayCode: "012801001",
		CreatedAt:    s.now,
	}
	c.Normalize()
	return c
}

func (s *AggregateSuite) TestPercentageZeroGuard() {
	s.Zero(Percentage(0, 0))
	s.Zero(Percentage(5, 0))
	s.InDelta(50.0, Percentage(1, 2), 1e-9)
}

// TestStatusOmitsEmptyBuckets pins the omission policy: absent statuses do
// not appear as zero rows.
func (s *AggregateSuite) TestStatusOmitsEmptyBuckets() {
	records := []citizen.Citizen{
		s.senior(1944, time.June, citizen.SexFemale, citizen.StatusPaid),
		s.senior(1939, time.June, citizen.SexMale, citizen.StatusPaid),
		s.senior(1944, time.June, citizen.SexMale, citizen.StatusEncoded),
	}

	got := ByStatus(records)
	s.Equal([]StatusCount{
		{Status: citizen.StatusEncoded, Count: 1},
		{Status: citizen.StatusPaid, Count: 2},
	}, got)

	for _, row := range got {
		s.NotEqual(citizen.StatusCompliance, row.Status)
	}
}

func (s *AggregateSuite) TestBySexOmission() {
	records := []citizen.Citizen{
		s.senior(1944, time.June, citizen.SexFemale, citizen.StatusPaid),
	}
	s.Equal([]SexCount{{Sex: citizen.SexFemale, Count: 1}}, BySex(records))
}

// TestAgeTierUsesReferenceYear pins that tiering reads the first selected
// year, not the max-crediting year used for amounts.
func (s *AggregateSuite) TestAgeTierUsesReferenceYear() {
	records := []citizen.Citizen{
		s.senior(1944, time.June, citizen.SexFemale, citizen.StatusPaid), // 80 in 2024
		s.senior(1939, time.June, citizen.SexMale, citizen.StatusPaid),   // 85 in 2024
	}

	got := ByAgeTier(records, []int{2024, 2028}, s.now)
	s.Equal([]BucketCount{
		{Label: "80", Count: 1},
		{Label: "85", Count: 1},
		{Label: "90", Count: 0},
		{Label: "95", Count: 0},
		{Label: "100+", Count: 0},
	}, got)
}

func (s *AggregateSuite) TestAgeTierBoundaries() {
	records := []citizen.Citizen{
		s.senior(2024-84, time.June, citizen.SexMale, citizen.StatusPaid),
		s.senior(2024-85, time.June, citizen.SexMale, citizen.StatusPaid),
		s.senior(2024-99, time.June, citizen.SexMale, citizen.StatusPaid),
		s.senior(2024-100, time.June, citizen.SexMale, citizen.StatusPaid),
	}

	got := ByAgeTier(records, []int{2024}, s.now)
	byLabel := map[string]int{}
	for _, b := range got {
		byLabel[b.Label] = b.Count
	}
	s.Equal(1, byLabel["80"], "exactly 84 falls in tier 80")
	s.Equal(1, byLabel["85"], "exactly 85 falls in tier 85")
	s.Equal(1, byLabel["95"], "exactly 99 falls in tier 95")
	s.Equal(1, byLabel["100+"], "exactly 100 falls in tier 100+")
}

// TestBirthMonthZeroFills pins the opposite policy from status/sex: all
// twelve months appear even at zero.
func (s *AggregateSuite) TestBirthMonthZeroFills() {
	records := []citizen.Citizen{
		s.senior(1944, time.January, citizen.SexFemale, citizen.StatusPaid),
	}

	got := ByBirthMonth(records)
	s.Require().Len(got, 12)
	s.Equal(BucketCount{Label: "January", Count: 1}, got[0])
	s.Equal(BucketCount{Label: "March", Count: 0}, got[2])
	s.Equal(BucketCount{Label: "December", Count: 0}, got[11])
}

func (s *AggregateSuite) TestBirthQuarter() {
	records := []citizen.Citizen{
		s.senior(1944, time.March, citizen.SexFemale, citizen.StatusPaid),
		s.senior(1944, time.April, citizen.SexMale, citizen.StatusPaid),
		s.senior(1944, time.December, citizen.SexMale, citizen.StatusPaid),
	}

	got := ByBirthQuarter(records)
	s.Equal([]BucketCount{
		{Label: "Q1", Count: 1},
		{Label: "Q2", Count: 1},
		{Label: "Q3", Count: 0},
		{Label: "Q4", Count: 1},
	}, got)
}

// TestPaymentStatsMaxCrediting pins that a citizen qualifying in several
// selected years is paid once at the highest milestone, never per year.
func (s *AggregateSuite) TestPaymentStatsMaxCrediting() {
	records := []citizen.Citizen{
		s.senior(1944, time.June, citizen.SexFemale, citizen.StatusPaid),
	}

	got := PaymentStats(records, []int{2024, 2028})
	byStatus := map[citizen.Status]PaymentStat{}
	for _, row := range got {
		byStatus[row.Status] = row
	}

	paid := byStatus[citizen.StatusPaid]
	s.Equal(1, paid.Count)
	s.Equal(benefit.MilestoneGift, paid.Amount, "one gift, not one per qualifying year")
	s.Len(got, 8, "payment summary reports the full status vocabulary")
}

// TestGeographyZeroFill pins the left-join semantics: every reference
// province appears even with zero matches.
func (s *AggregateSuite) TestGeographyZeroFill() {
	provinces := []GeoRef{
		{Code: "0128", Name: "Ilocos Norte"},
		{Code: "0129", Name: "Ilocos Sur"},
		{Code: "0133", Name: "La Union"},
		{Code: "0155", Name: "Pangasinan"},
	}

	s.Run("empty record set yields all-zero rows", func() {
		got := ByProvince(nil, provinces)
		s.Require().Len(got, 4)
		for _, row := range got {
			s.Zero(row.Total)
			s.Empty(row.ByStatus)
		}
	})

	s.Run("matches land on the right row", func() {
		records := []citizen.Citizen{
			s.senior(1944, time.June, citizen.SexFemale, citizen.StatusPaid),
		}
		got := ByProvince(records, provinces)
		s.Equal(1, got[0].Total)
		s.Equal(1, got[0].ByStatus[citizen.StatusPaid])
		s.Zero(got[1].Total)
	})
}

// TestEndToEndScenario runs the documented two-citizen scenario: birth years
// 1944 and 1939, both Paid, window {2024}.
func (s *AggregateSuite) TestEndToEndScenario() {
	records := []citizen.Citizen{
		s.senior(1944, time.June, citizen.SexFemale, citizen.StatusPaid),
		s.senior(1939, time.June, citizen.SexMale, citizen.StatusPaid),
	}
	years := []int{2024}

	exact := PaidByExactAge(records, years, s.now)
	byAge := map[int]ExactAgeStat{}
	for _, row := range exact {
		byAge[row.Age] = row
	}
	s.Equal(1, byAge[80].Count)
	s.Equal(1, byAge[85].Count)
	s.Zero(byAge[100].Count)
	s.Equal(benefit.MilestoneGift, byAge[80].Amount)
	s.InDelta(50.0, byAge[80].PercentOfPaid, 1e-9)
	s.InDelta(100.0, byAge[80].FemalePercent, 1e-9)
	s.Zero(byAge[100].PercentOfPaid, "zero bucket percentages stay zero")

	stats := PaymentStats(records, years)
	var paidAmount int64
	for _, row := range stats {
		if row.Status == citizen.StatusPaid {
			paidAmount = row.Amount
		}
	}
	s.Equal(int64(20000), paidAmount)
}

func (s *AggregateSuite) TestPaidByExactAgeIsExact() {
	records := []citizen.Citizen{
		// 101 in 2025: qualifies by amount but turns no exact milestone.
		s.senior(1924, time.June, citizen.SexMale, citizen.StatusPaid),
	}

	got := PaidByExactAge(records, []int{2025}, s.now)
	for _, row := range got {
		s.Zerof(row.Count, "age %d must be empty", row.Age)
	}
}

func (s *AggregateSuite) TestCentenarianGiftAmount() {
	records := []citizen.Citizen{
		s.senior(1924, time.June, citizen.SexFemale, citizen.StatusPaid), // 100 in 2024
	}

	got := PaidByExactAge(records, []int{2024}, s.now)
	byAge := map[int]ExactAgeStat{}
	for _, row := range got {
		byAge[row.Age] = row
	}
	s.Equal(1, byAge[100].Count)
	s.Equal(benefit.CentenarianGift, byAge[100].Amount)
}
