package utils

import (
	"time"
)

// ET is the US Eastern Time location used for NYSE/Nasdaq sessions.
var ET *time.Location

func init() {
	var err error
	ET, err = time.LoadLocation("America/New_York")
	if err != nil {
		// Fallback: create fixed zone if tz database is not available
		ET = time.FixedZone("EST", -5*60*60)
	}
}

// NowET returns the current time in US Eastern Time.
func NowET() time.Time {
	return time.Now().In(ET)
}

// ToET converts a time.Time to US Eastern Time.
func ToET(t time.Time) time.Time {
	return t.In(ET)
}

// MarketOpenTime returns the NYSE market opening time (9:30 AM ET) for a given date.
func MarketOpenTime(date time.Time) time.Time {
	d := date.In(ET)
	return time.Date(d.Year(), d.Month(), d.Day(), 9, 30, 0, 0, ET)
}

// MarketCloseTime returns the NYSE market closing time (4:00 PM ET) for a given date.
func MarketCloseTime(date time.Time) time.Time {
	d := date.In(ET)
	return time.Date(d.Year(), d.Month(), d.Day(), 16, 0, 0, 0, ET)
}

// PreMarketStart returns the pre-market session start time (4:00 AM ET).
func PreMarketStart(date time.Time) time.Time {
	d := date.In(ET)
	return time.Date(d.Year(), d.Month(), d.Day(), 4, 0, 0, 0, ET)
}

// IsMarketOpen checks if the US equity market is currently open.
func IsMarketOpen() bool {
	return IsMarketOpenAt(NowET())
}

// IsMarketOpenAt checks if the US equity market would be open at the given time.
func IsMarketOpenAt(t time.Time) bool {
	t = t.In(ET)

	// Check if it's a weekend
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}

	// Check if it's a trading holiday
	if IsTradingHoliday(t) {
		return false
	}

	// Check if within regular market hours (9:30 AM - 4:00 PM ET)
	open := MarketOpenTime(t)
	close := MarketCloseTime(t)

	return !t.Before(open) && !t.After(close)
}

// NextTradingDay returns the next trading day from the given date.
// If the given date is a trading day, it returns the next one.
func NextTradingDay(from time.Time) time.Time {
	next := from.In(ET).AddDate(0, 0, 1)
	for !IsTradingDay(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// PrevTradingDay returns the previous trading day from the given date.
func PrevTradingDay(from time.Time) time.Time {
	prev := from.In(ET).AddDate(0, 0, -1)
	for !IsTradingDay(prev) {
		prev = prev.AddDate(0, 0, -1)
	}
	return prev
}

// IsTradingDay checks if the given date is a trading day (not weekend, not holiday).
func IsTradingDay(t time.Time) bool {
	t = t.In(ET)
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !IsTradingHoliday(t)
}

// TradingDaysBetween returns the number of trading days between two dates (exclusive of end).
func TradingDaysBetween(start, end time.Time) int {
	start = start.In(ET)
	end = end.In(ET)
	count := 0
	current := start
	for current.Before(end) {
		if IsTradingDay(current) {
			count++
		}
		current = current.AddDate(0, 0, 1)
	}
	return count
}

// IsTradingHoliday checks if the given date is a US market holiday.
// This list should be updated annually.
func IsTradingHoliday(t time.Time) bool {
	t = t.In(ET)
	dateStr := t.Format("2006-01-02")

	_, isHoliday := usMarketHolidays2026[dateStr]
	return isHoliday
}

// US market holidays for 2026 (update annually).
// Source: NYSE holiday calendar.
var usMarketHolidays2026 = map[string]string{
	"2026-01-01": "New Year's Day",
	"2026-01-19": "Martin Luther King Jr. Day",
	"2026-02-16": "Washington's Birthday",
	"2026-04-03": "Good Friday",
	"2026-05-25": "Memorial Day",
	"2026-06-19": "Juneteenth",
	"2026-07-03": "Independence Day (observed)",
	"2026-09-07": "Labor Day",
	"2026-11-26": "Thanksgiving Day",
	"2026-12-25": "Christmas Day",
}

// GetTradingHolidays returns all trading holidays for the current year.
func GetTradingHolidays() map[string]string {
	return usMarketHolidays2026
}

// ParseDateET parses a date string in "2006-01-02" format and returns it in ET.
func ParseDateET(dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, ET)
}

// FormatDateET formats a time.Time to "2006-01-02" in ET.
func FormatDateET(t time.Time) string {
	return t.In(ET).Format("2006-01-02")
}

// FormatDateTimeET formats a time.Time to "2006-01-02 15:04:05 ET".
func FormatDateTimeET(t time.Time) string {
	return t.In(ET).Format("2006-01-02 15:04:05 ET")
}

// MarketStatus returns the current market status string.
func MarketStatus() string {
	now := NowET()

	if now.Weekday() == time.Saturday || now.Weekday() == time.Sunday {
		return "CLOSED (Weekend)"
	}

	if IsTradingHoliday(now) {
		holiday := usMarketHolidays2026[now.Format("2006-01-02")]
		return "CLOSED (" + holiday + ")"
	}

	open := MarketOpenTime(now)
	close := MarketCloseTime(now)
	preMarket := PreMarketStart(now)

	switch {
	case now.Before(preMarket):
		return "CLOSED"
	case now.Before(open):
		return "PRE-MARKET"
	case !now.After(close):
		return "OPEN"
	default:
		return "AFTER-HOURS"
	}
}
