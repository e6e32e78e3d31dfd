package period

import (
	"testing"
	"time"

	"salestrack/internal/domain"
)

func TestResolveWeekRoundTrip(t *testing.T) {
	for year := 2020; year <= 2030; year++ {
		for week := 1; week <= 52; week++ {
			r := Resolve(Descriptor{Kind: domain.PeriodWeek, WeekYear: year, WeekNumber: week}, time.UTC)
			gotYear, gotWeek := WeekNumberOf(r.Start)
			if gotYear != year || gotWeek != week {
				t.Fatalf("week %d/%d: round trip gave %d/%d (start %s)", week, year, gotWeek, gotYear, r.Start)
			}
			if r.Start.Weekday() != time.Monday {
				t.Fatalf("week %d/%d: start %s is not a Monday", week, year, r.Start)
			}
			if r.End.Weekday() != time.Sunday {
				t.Fatalf("week %d/%d: end %s is not a Sunday", week, year, r.End)
			}
		}
	}
}

func TestResolveWeek53LongYear(t *testing.T) {
	// 2020 and 2026 both have 53 ISO weeks.
	for _, year := range []int{2020, 2026} {
		r := Resolve(Descriptor{Kind: domain.PeriodWeek, WeekYear: year, WeekNumber: 53}, time.UTC)
		gotYear, gotWeek := WeekNumberOf(r.Start)
		if gotYear != year || gotWeek != 53 {
			t.Fatalf("week 53/%d: round trip gave %d/%d", year, gotWeek, gotYear)
		}
	}
}

func TestResolveWeekYearBoundary(t *testing.T) {
	// Jan 1-3 2021 belong to week 53 of 2020; week 1 of 2021 starts Jan 4.
	r := Resolve(Descriptor{Kind: domain.PeriodWeek, WeekYear: 2021, WeekNumber: 1}, time.UTC)
	want := time.Date(2021, time.January, 4, 0, 0, 0, 0, time.UTC)
	if !r.Start.Equal(want) {
		t.Fatalf("expected week 1/2021 to start %s, got %s", want, r.Start)
	}
	year, week := WeekNumberOf(time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC))
	if year != 2020 || week != 53 {
		t.Fatalf("expected 2021-01-01 in week 53/2020, got %d/%d", week, year)
	}
}

func TestResolveMonth(t *testing.T) {
	cases := []struct {
		name    string
		year    int
		month   int
		wantEnd time.Time
	}{
		{name: "leap february", year: 2024, month: 2, wantEnd: time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)},
		{name: "plain february", year: 2023, month: 2, wantEnd: time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC)},
		{name: "december", year: 2025, month: 12, wantEnd: time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		r := Resolve(Descriptor{Kind: domain.PeriodMonth, Year: tc.year, Month: tc.month}, time.UTC)
		if r.Start.Day() != 1 {
			t.Fatalf("%s: expected start on day 1, got %s", tc.name, r.Start)
		}
		if r.End.Year() != tc.wantEnd.Year() || r.End.Month() != tc.wantEnd.Month() || r.End.Day() != tc.wantEnd.Day() {
			t.Fatalf("%s: expected end on %s, got %s", tc.name, tc.wantEnd, r.End)
		}
		if r.End.Hour() != 23 || r.End.Minute() != 59 || r.End.Second() != 59 {
			t.Fatalf("%s: end not normalized to day end: %s", tc.name, r.End)
		}
	}
}

func TestResolveDay(t *testing.T) {
	r := Resolve(Descriptor{Kind: domain.PeriodDay, DayYear: 2025, DayMonth: 7, DayDate: 14}, time.UTC)
	if r.Start.Day() != 14 || r.End.Day() != 14 {
		t.Fatalf("expected single-day range, got %s .. %s", r.Start, r.End)
	}
	if !r.Start.Before(r.End) {
		t.Fatalf("expected start before day end")
	}
}

func TestResolveMissingFields(t *testing.T) {
	cases := []Descriptor{
		{Kind: domain.PeriodMonth, Year: 2025},
		{Kind: domain.PeriodWeek, WeekNumber: 10},
		{Kind: domain.PeriodDay, DayYear: 2025, DayMonth: 3},
		{},
	}
	for _, d := range cases {
		if r := Resolve(d, time.UTC); !r.IsZero() {
			t.Fatalf("descriptor %+v: expected zero range, got %s .. %s", d, r.Start, r.End)
		}
	}
}

func TestClampToMonth(t *testing.T) {
	// Week 14/2025 runs Mar 31 .. Apr 6; clamped to April it starts Apr 1.
	r := Resolve(Descriptor{Kind: domain.PeriodWeek, WeekYear: 2025, WeekNumber: 14}, time.UTC)
	clamped := ClampToMonth(r, 2025, 4, time.UTC)
	if clamped.Start.Month() != time.April || clamped.Start.Day() != 1 {
		t.Fatalf("expected clamp to Apr 1, got %s", clamped.Start)
	}
	if !clamped.End.Equal(r.End) {
		t.Fatalf("expected end unchanged, got %s", clamped.End)
	}

	// Clamping to a month the week never touches yields an empty range.
	empty := ClampToMonth(r, 2025, 6, time.UTC)
	if !empty.Empty() {
		t.Fatalf("expected empty range, got %s .. %s", empty.Start, empty.End)
	}
}

func TestWeeksInMonth(t *testing.T) {
	// February 2021 starts on a Monday and has exactly 4 weeks, 5 through 8.
	weeks := WeeksInMonth(2021, 2)
	if len(weeks) != 4 {
		t.Fatalf("expected 4 weeks, got %d: %v", len(weeks), weeks)
	}
	for i, w := range weeks {
		if w.Year != 2021 || w.Number != 5+i {
			t.Fatalf("expected week %d/2021 at index %d, got %d/%d", 5+i, i, w.Number, w.Year)
		}
	}

	// January 2021 opens in week 53 of 2020.
	weeks = WeeksInMonth(2021, 1)
	if weeks[0].Year != 2020 || weeks[0].Number != 53 {
		t.Fatalf("expected first week 53/2020, got %d/%d", weeks[0].Number, weeks[0].Year)
	}
}

func TestWorkingDaysBetween(t *testing.T) {
	cases := []struct {
		name   string
		today  time.Time
		end    time.Time
		expect int
	}{
		{
			name:   "midweek to sunday",
			today:  time.Date(2024, time.January, 3, 10, 0, 0, 0, time.UTC),
			end:    time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC),
			expect: 2, // Thu + Fri, weekend excluded, today excluded
		},
		{
			name:   "same day",
			today:  time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC),
			end:    time.Date(2024, time.January, 3, 23, 59, 59, 0, time.UTC),
			expect: 0,
		},
		{
			name:   "full week",
			today:  time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC),
			end:    time.Date(2024, time.January, 14, 0, 0, 0, 0, time.UTC),
			expect: 5,
		},
	}
	for _, tc := range cases {
		if got := WorkingDaysBetween(tc.today, tc.end); got != tc.expect {
			t.Fatalf("%s: expected %d got %d", tc.name, tc.expect, got)
		}
	}
}
