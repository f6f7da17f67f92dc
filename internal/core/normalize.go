package core

// Average billing periods per month, used only for cross-frequency cost
// comparison, never for computing payment dates.
const (
	weeksPerMonth    = 4.33 // 52 weeks / 12 months, rounded
	biweeksPerMonth  = 2.17 // 26 charges per year / 12 months
	monthsPerQuarter = 3
	monthsPerYear    = 12
)

// MonthlyEquivalent converts a periodic amount into its monthly-equivalent
// figure in cents. The result is fractional for weekly, biweekly, quarterly
// and yearly frequencies; callers round only at display time.
func MonthlyEquivalent(m Money, freq Frequency) float64 {
	amount := float64(m.Cents)
	switch freq {
	case Weekly:
		return amount * weeksPerMonth
	case Biweekly:
		return amount * biweeksPerMonth
	case Monthly:
		return amount
	case Quarterly:
		return amount / monthsPerQuarter
	case Yearly:
		return amount / monthsPerYear
	default:
		return amount
	}
}

// MonthlyCost sums the monthly-equivalent cost of every subscription, in cents.
func MonthlyCost(subscriptions []Subscription) float64 {
	var total float64
	for _, s := range subscriptions {
		total += MonthlyEquivalent(s.Amount, s.Frequency)
	}
	return total
}
