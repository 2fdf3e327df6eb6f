package chart

import "time"

// US equity session boundaries, minutes since midnight Eastern.
const (
	preMarketOpenMin   = 4 * 60
	regularOpenMin     = 9*60 + 30
	regularCloseMin    = 16 * 60
	afterHoursCloseMin = 20 * 60

	// fullSessionMinutes is the fixed trading-day length the intraday
	// strategy normalizes against: pre-market open through after-hours
	// close.
	fullSessionMinutes = afterHoursCloseMin - preMarketOpenMin
)

// easternOffset returns the UTC offset, in seconds, of US Eastern Time at t.
// It applies the statutory DST rule (second Sunday of March 02:00 local
// through first Sunday of November 02:00 local) with plain arithmetic, so
// classification never depends on the host's tz database.
func easternOffset(t time.Time) int {
	u := t.UTC()
	year := u.Year()
	// 02:00 EST == 07:00 UTC; 02:00 EDT == 06:00 UTC.
	dstStart := nthSundayUTC(year, time.March, 2, 7)
	dstEnd := nthSundayUTC(year, time.November, 1, 6)
	if !u.Before(dstStart) && u.Before(dstEnd) {
		return -4 * 3600
	}
	return -5 * 3600
}

// nthSundayUTC returns the nth Sunday of the month at the given UTC hour.
func nthSundayUTC(year int, month time.Month, n int, hourUTC int) time.Time {
	d := time.Date(year, month, 1, hourUTC, 0, 0, 0, time.UTC)
	daysToSunday := (7 - int(d.Weekday())) % 7
	return d.AddDate(0, 0, daysToSunday+(n-1)*7)
}

// easternWall returns t's Eastern wall-clock fields carried in a UTC-labeled
// time, suitable for Hour/Minute/Weekday/Format reads only.
func easternWall(t time.Time) time.Time {
	return t.UTC().Add(time.Duration(easternOffset(t)) * time.Second)
}

// EasternWall exposes the Eastern wall-clock conversion for hosts that
// format axis labels in market time.
func EasternWall(t time.Time) time.Time { return easternWall(t) }

// Calendar is the set of full-day market closures, keyed by Eastern date.
type Calendar struct {
	holidays map[string]bool
}

// NewCalendar builds a calendar from explicit closure dates. The dates are
// read as Eastern calendar days.
func NewCalendar(days ...time.Time) Calendar {
	m := make(map[string]bool, len(days))
	for _, d := range days {
		m[easternWall(d).Format("2006-01-02")] = true
	}
	return Calendar{holidays: m}
}

// DefaultCalendar covers the published NYSE full-day closures for 2025-2026.
func DefaultCalendar() Calendar {
	dates := []string{
		"2025-01-01", "2025-01-20", "2025-02-17", "2025-04-18",
		"2025-05-26", "2025-06-19", "2025-07-04", "2025-09-01",
		"2025-11-27", "2025-12-25",
		"2026-01-01", "2026-01-19", "2026-02-16", "2026-04-03",
		"2026-05-25", "2026-06-19", "2026-07-03", "2026-09-07",
		"2026-11-26", "2026-12-25",
	}
	m := make(map[string]bool, len(dates))
	for _, d := range dates {
		m[d] = true
	}
	return Calendar{holidays: m}
}

// IsHoliday reports whether t falls on a full-day closure, judged by its
// Eastern calendar date.
func (c Calendar) IsHoliday(t time.Time) bool {
	if c.holidays == nil {
		return false
	}
	return c.holidays[easternWall(t).Format("2006-01-02")]
}

// ClassifySession is a pure function of the timestamp and the calendar.
// A timestamp exactly on a boundary belongs to the session that boundary
// opens: 09:30:00 ET is regular, 16:00:00 ET is after-hours. Weekends and
// holidays are closed regardless of time of day.
func ClassifySession(t time.Time, cal Calendar) Session {
	et := easternWall(t)
	switch et.Weekday() {
	case time.Saturday, time.Sunday:
		return SessionClosed
	}
	if cal.IsHoliday(t) {
		return SessionClosed
	}
	m := et.Hour()*60 + et.Minute()
	switch {
	case m >= preMarketOpenMin && m < regularOpenMin:
		return SessionPreMarket
	case m >= regularOpenMin && m < regularCloseMin:
		return SessionRegular
	case m >= regularCloseMin && m < afterHoursCloseMin:
		return SessionAfterHours
	default:
		return SessionClosed
	}
}
