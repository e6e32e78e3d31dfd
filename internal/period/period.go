package period

import (
	"time"

	"salestrack/internal/domain"
)

// Descriptor identifies a calendar period by explicit fields rather than a
// free-form date range. Only the field group matching Kind is read.
type Descriptor struct {
	Kind       domain.PeriodKind
	Year       int
	Month      int
	WeekYear   int
	WeekNumber int
	DayYear    int
	DayMonth   int
	DayDate    int
}

func FromObjective(o domain.Objective) Descriptor {
	return Descriptor{
		Kind:       o.Period,
		Year:       o.Year,
		Month:      o.Month,
		WeekYear:   o.WeekYear,
		WeekNumber: o.WeekNumber,
		DayYear:    o.DayYear,
		DayMonth:   o.DayMonth,
		DayDate:    o.DayDate,
	}
}

// Range is an inclusive calendar range. End sits on the last nanosecond of
// its day so that timestamp comparisons with <= cover the whole day.
type Range struct {
	Start time.Time
	End   time.Time
}

func (r Range) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Empty reports a clamped-away range (start past end).
func (r Range) Empty() bool {
	return r.IsZero() || r.Start.After(r.End)
}

// Resolve converts a descriptor into its concrete date range. Field
// validation happens upstream; a descriptor with missing fields resolves to
// the zero Range, never an error.
func Resolve(d Descriptor, loc *time.Location) Range {
	switch d.Kind {
	case domain.PeriodMonth:
		if d.Year == 0 || d.Month == 0 {
			return Range{}
		}
		start := time.Date(d.Year, time.Month(d.Month), 1, 0, 0, 0, 0, loc)
		// day 0 of the next month is the last day of this one
		end := time.Date(d.Year, time.Month(d.Month)+1, 0, 0, 0, 0, 0, loc)
		return Range{Start: start, End: dayEnd(end)}
	case domain.PeriodWeek:
		if d.WeekYear == 0 || d.WeekNumber == 0 {
			return Range{}
		}
		start := isoWeekStart(d.WeekYear, d.WeekNumber, loc)
		return Range{Start: start, End: dayEnd(start.AddDate(0, 0, 6))}
	case domain.PeriodDay:
		if d.DayYear == 0 || d.DayMonth == 0 || d.DayDate == 0 {
			return Range{}
		}
		start := time.Date(d.DayYear, time.Month(d.DayMonth), d.DayDate, 0, 0, 0, 0, loc)
		return Range{Start: start, End: dayEnd(start)}
	default:
		return Range{}
	}
}

// isoWeekStart returns the Monday opening ISO week number of weekYear.
// January 4th always falls in ISO week 1, so week 1's Monday is the Monday
// of the week containing it.
func isoWeekStart(weekYear, number int, loc *time.Location) time.Time {
	jan4 := time.Date(weekYear, time.January, 4, 0, 0, 0, 0, loc)
	offset := int(jan4.Weekday()) - 1
	if jan4.Weekday() == time.Sunday {
		offset = 6
	}
	firstMonday := jan4.AddDate(0, 0, -offset)
	return firstMonday.AddDate(0, 0, (number-1)*7)
}

// WeekNumberOf computes the ISO week a date belongs to by shifting it to the
// Thursday of its week and counting weeks from that year's January 1st.
func WeekNumberOf(date time.Time) (year, week int) {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayNum := int(d.Weekday())
	if dayNum == 0 {
		dayNum = 7
	}
	thursday := d.AddDate(0, 0, 4-dayNum)
	yearStart := time.Date(thursday.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	days := int(thursday.Sub(yearStart).Hours() / 24)
	return thursday.Year(), days/7 + 1
}

// ClampToMonth intersects a range with a month's boundaries. Week objectives
// displayed inside a month view bleed only within it; the result may be
// empty when the week lies entirely outside the month.
func ClampToMonth(r Range, year, month int, loc *time.Location) Range {
	if r.IsZero() {
		return r
	}
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	monthEnd := dayEnd(time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, loc))
	clamped := r
	if clamped.Start.Before(monthStart) {
		clamped.Start = monthStart
	}
	if clamped.End.After(monthEnd) {
		clamped.End = monthEnd
	}
	return clamped
}

type Week struct {
	Year   int
	Number int
}

// WeeksInMonth lists the ISO weeks touching a month, in week order.
func WeeksInMonth(year, month int) []Week {
	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	seen := make(map[Week]bool)
	weeks := make([]Week, 0, 6)
	for day := 1; day <= lastDay; day++ {
		wy, wn := WeekNumberOf(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC))
		w := Week{Year: wy, Number: wn}
		if !seen[w] {
			seen[w] = true
			weeks = append(weeks, w)
		}
	}
	return weeks
}

// WorkingDaysBetween counts weekdays after today up to and including end.
// Today itself never counts, weekends never count.
func WorkingDaysBetween(today, end time.Time) int {
	current := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location()).AddDate(0, 0, 1)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())
	count := 0
	for !current.After(last) {
		switch current.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
		current = current.AddDate(0, 0, 1)
	}
	return count
}

func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
