package core

import "time"

const dateLayout = "2006-01-02"

// dateRule selects the default date window a report category gets when the
// caller omits one or both bounds. The rules are business-meaningful and
// reproduced exactly from the legacy endpoints — see resolveDates.
type dateRule int

const (
	// datesNone: the category takes no date parameters at all.
	datesNone dateRule = iota

	// datesToday: both bounds default to today — a single-day window.
	// Used by the whole sales domain.
	datesToday

	// datesMonthToDate: from defaults to the first of the current month,
	// to defaults to today. The common inventory window.
	datesMonthToDate

	// datesMonthBack: from defaults to today's date with the month
	// decremented by one. time.Date normalizes overflow the same
	// non-calendar-safe way the legacy arithmetic did (Jan 15 → Dec 15 of
	// the prior year, Mar 31 → Mar 3), so the window is preserved as-is
	// pending a product decision on a calendar-safe definition.
	datesMonthBack

	// datesEpochFloor: from defaults to 2000-01-01, to defaults to today —
	// an open-ended historical window (due_invoices).
	datesEpochFloor
)

// resolveDates fills missing date bounds for the given rule. Caller-supplied
// values always win; resolution is pure given the current date.
func resolveDates(rule dateRule, from, to string, today time.Time) (string, string) {
	if rule == datesNone {
		return "", ""
	}
	if to == "" {
		to = today.Format(dateLayout)
	}
	if from == "" {
		switch rule {
		case datesToday:
			from = today.Format(dateLayout)
		case datesMonthToDate:
			from = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location()).Format(dateLayout)
		case datesMonthBack:
			from = time.Date(today.Year(), today.Month()-1, today.Day(), 0, 0, 0, 0, today.Location()).Format(dateLayout)
		case datesEpochFloor:
			from = "2000-01-01"
		}
	}
	return from, to
}

// Default numeric parameters. Thresholds bound stock-quantity filters, limits
// cap ranked result sets.
const (
	defaultLowStockThreshold  = 10
	defaultOverstockThreshold = 100
	defaultRankingLimit       = 5
)

func orDefault(v *int, def int) int {
	if v != nil {
		return *v
	}
	return def
}
