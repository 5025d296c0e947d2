package billing

import "time"

// AddCycle advances t by one calendar month or year.
// Day-of-month overflow is clamped to the last day of the target month, so
// Jan 31 + 1 month is Feb 28 (Feb 29 in leap years) rather than early March,
// and Feb 29 + 1 year is Feb 28. Clock time and location are preserved.
func AddCycle(t time.Time, cycle BillingCycle) time.Time {
	if cycle == CycleYearly {
		return addMonthsClamped(t, 12)
	}
	return addMonthsClamped(t, 1)
}

func addMonthsClamped(t time.Time, n int) time.Time {
	year, month, day := t.Date()

	// Normalise month arithmetic through the first of the month to avoid
	// time.Date rolling the overflow into the following month.
	first := time.Date(year, month, 1, 0, 0, 0, 0, t.Location()).AddDate(0, n, 0)
	y, m := first.Year(), first.Month()

	day = min(day, daysInMonth(y, m))
	return time.Date(y, m, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	firstOfNext := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)
	return firstOfNext.AddDate(0, 0, -1).Day()
}
