package entity

import "time"

// yearSpan is larger than any month*100+day position and is used to unroll
// positions that fall after the new year.
const yearSpan = 1300

// BirthdayPosition maps a date to its month/day ordinal, month*100+day.
// February 29 is 229 and only matches windows that contain that ordinal.
func BirthdayPosition(t time.Time) int {
	return int(t.Month())*100 + t.Day()
}

// BirthdayWindow is an inclusive month/day range that ignores years.
// When End is below Start the range wraps over the new year.
type BirthdayWindow struct {
	Start int
	End   int
	Full  bool // The window spans a year or more and matches every date.
}

// NewBirthdayWindow builds the window [today, today+days] in UTC calendar dates.
func NewBirthdayWindow(today time.Time, days int) BirthdayWindow {
	y, m, d := today.UTC().Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, days)

	return BirthdayWindow{
		Start: BirthdayPosition(start),
		End:   BirthdayPosition(end),
		Full:  !end.Before(start.AddDate(1, 0, 0)),
	}
}

// Wraps reports whether the window crosses the year boundary.
func (w BirthdayWindow) Wraps() bool {
	return !w.Full && w.End < w.Start
}

// Contains reports whether the birth date falls inside the window.
func (w BirthdayWindow) Contains(birthDate time.Time) bool {
	if w.Full {
		return true
	}
	pos := BirthdayPosition(birthDate)
	if w.Wraps() {
		return pos >= w.Start || pos <= w.End
	}

	return pos >= w.Start && pos <= w.End
}

// DaysUntil orders birth dates by how soon they come up after the window
// start. It is a position distance, not a calendar day count.
func (w BirthdayWindow) DaysUntil(birthDate time.Time) int {
	pos := BirthdayPosition(birthDate)
	if pos >= w.Start {
		return pos - w.Start
	}

	return pos + yearSpan - w.Start
}
