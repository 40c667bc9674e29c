package report

import (
	"time"

	"cims/internal/benefit"
	"cims/internal/citizen"
)

// Percentage computes part/whole x 100, defining division by zero as 0.
// Every percentage in this package goes through here.
func Percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// ByStatus counts records per workflow status, in canonical status order,
// omitting statuses with no matches.
func ByStatus(records []citizen.Citizen) []StatusCount {
	counts := make(map[citizen.Status]int, len(citizen.AllStatuses))
	for _, c := range records {
		counts[c.Status]++
	}
	out := make([]StatusCount, 0, len(counts))
	for _, st := range citizen.AllStatuses {
		if n := counts[st]; n > 0 {
			out = append(out, StatusCount{Status: st, Count: n})
		}
	}
	return out
}

// BySex counts records per sex, omitting zero buckets.
func BySex(records []citizen.Citizen) []SexCount {
	var male, female int
	for _, c := range records {
		switch c.Sex {
		case citizen.SexMale:
			male++
		case citizen.SexFemale:
			female++
		}
	}
	out := make([]SexCount, 0, 2)
	if male > 0 {
		out = append(out, SexCount{Sex: citizen.SexMale, Count: male})
	}
	if female > 0 {
		out = append(out, SexCount{Sex: citizen.SexFemale, Count: female})
	}
	return out
}

// ByAgeTier buckets records into the five milestone tiers by their age in the
// reference year: the first selected target year, not the max-crediting year.
// The five buckets are always present, zero-filled; records under 80 in the
// reference year fall outside every bucket.
func ByAgeTier(records []citizen.Citizen, targetYears []int, now time.Time) []BucketCount {
	refYear := benefit.ReferenceYear(targetYears, now)
	counts := make(map[benefit.Tier]int, len(benefit.Tiers))
	for _, c := range records {
		if tier := benefit.TierForAge(benefit.AgeIn(c.BirthDate, refYear)); tier != benefit.TierNone {
			counts[tier]++
		}
	}
	out := make([]BucketCount, 0, len(benefit.Tiers))
	for _, tier := range benefit.Tiers {
		out = append(out, BucketCount{Label: string(tier), Count: counts[tier]})
	}
	return out
}

// ByBirthMonth counts records per calendar month of birth, independent of
// year. All twelve months are present, zero-filled.
func ByBirthMonth(records []citizen.Citizen) []BucketCount {
	var counts [12]int
	for _, c := range records {
		counts[int(c.BirthDate.Month())-1]++
	}
	out := make([]BucketCount, 0, 12)
	for m := time.January; m <= time.December; m++ {
		out = append(out, BucketCount{Label: m.String(), Count: counts[int(m)-1]})
	}
	return out
}

// ByBirthQuarter counts records per birth quarter. All four quarters are
// present, zero-filled.
func ByBirthQuarter(records []citizen.Citizen) []BucketCount {
	labels := [4]string{"Q1", "Q2", "Q3", "Q4"}
	var counts [4]int
	for _, c := range records {
		counts[(int(c.BirthDate.Month())-1)/3]++
	}
	out := make([]BucketCount, 0, 4)
	for i, label := range labels {
		out = append(out, BucketCount{Label: label, Count: counts[i]})
	}
	return out
}

// PaymentStats computes, for every workflow status, the member count and the
// cash total owed under max-year crediting. Each citizen contributes their
// single highest-milestone amount once, never per qualifying year. All eight
// statuses are reported here (unlike ByStatus) because the payment summary
// feeds reconciliation totals, which must sum over the full vocabulary.
func PaymentStats(records []citizen.Citizen, targetYears []int) []PaymentStat {
	counts := make(map[citizen.Status]int, len(citizen.AllStatuses))
	amounts := make(map[citizen.Status]int64, len(citizen.AllStatuses))
	for _, c := range records {
		counts[c.Status]++
		amounts[c.Status] += benefit.Assess(c.BirthDate, targetYears).Amount
	}
	out := make([]PaymentStat, 0, len(citizen.AllStatuses))
	for _, st := range citizen.AllStatuses {
		out = append(out, PaymentStat{Status: st, Count: counts[st], Amount: amounts[st]})
	}
	return out
}

// ByGeography produces one row per reference entry, zero-filled, with
// per-status counts and a total. keyOf selects which code of the record joins
// against the reference (province or LGU).
func ByGeography(records []citizen.Citizen, refs []GeoRef, keyOf func(citizen.Citizen) string) []GeoStat {
	index := make(map[string]int, len(refs))
	out := make([]GeoStat, len(refs))
	for i, ref := range refs {
		out[i] = GeoStat{Code: ref.Code, Name: ref.Name, ByStatus: make(map[citizen.Status]int)}
		index[ref.Code] = i
	}
	for _, c := range records {
		i, ok := index[keyOf(c)]
		if !ok {
			continue
		}
		out[i].ByStatus[c.Status]++
		out[i].Total++
	}
	return out
}

// ByProvince aggregates against the full province reference list.
func ByProvince(records []citizen.Citizen, provinces []GeoRef) []GeoStat {
	return ByGeography(records, provinces, func(c citizen.Citizen) string { return c.ProvinceCode })
}

// ByLGU aggregates against the LGUs of the selected province.
func ByLGU(records []citizen.Citizen, lgus []GeoRef) []GeoStat {
	return ByGeography(records, lgus, func(c citizen.Citizen) string { return c.LGUCode })
}

// PaidByExactAge breaks down citizens with status Paid across the five exact
// milestone ages. A citizen lands in a bucket if any target year makes them
// exactly that age. Percentages divide by the bucket total (sex split) and by
// the count of all paid citizens (bucket share), both zero-guarded.
func PaidByExactAge(records []citizen.Citizen, targetYears []int, now time.Time) []ExactAgeStat {
	var paid []citizen.Citizen
	for _, c := range records {
		if c.Status == citizen.StatusPaid {
			paid = append(paid, c)
		}
	}

	out := make([]ExactAgeStat, 0, len(benefit.MilestoneAges))
	for _, age := range benefit.MilestoneAges {
		stat := ExactAgeStat{Age: age}
		for _, c := range paid {
			if !benefit.TurnsExactly(c.BirthDate, targetYears, age, now) {
				continue
			}
			stat.Count++
			switch c.Sex {
			case citizen.SexMale:
				stat.Male++
			case citizen.SexFemale:
				stat.Female++
			}
		}
		stat.MalePercent = Percentage(stat.Male, stat.Count)
		stat.FemalePercent = Percentage(stat.Female, stat.Count)
		stat.PercentOfPaid = Percentage(stat.Count, len(paid))
		stat.Amount = benefit.AmountForAge(age) * int64(stat.Count)
		out = append(out, stat)
	}
	return out
}
