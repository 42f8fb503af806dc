package estimate

// FilterRange returns the days whose date falls inside the inclusive
// [start, end] window. A nil bound is unbounded on that side. The input is
// never mutated; a day dated exactly start or exactly end is included.
func FilterRange(days []DayResult, start, end *Date) []DayResult {
	filtered := make([]DayResult, 0, len(days))
	for _, day := range days {
		if start != nil && day.Date.Before(start.Time) {
			continue
		}
		if end != nil && day.Date.After(end.Time) {
			continue
		}
		filtered = append(filtered, day)
	}
	return filtered
}

// Summarize reduces a day sequence to its cumulative totals. An empty
// sequence yields zero-valued totals, not an error.
func Summarize(days []DayResult) RangeSummary {
	var summary RangeSummary
	for _, day := range days {
		summary.add(day.Totals)
	}
	return summary
}
