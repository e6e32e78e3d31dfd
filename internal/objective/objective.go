package objective

import (
	"fmt"
	"math"
	"time"

	"salestrack/internal/domain"
	"salestrack/internal/period"
)

// ProgressPercentage maps a raw record count onto objective completion,
// rounded to one decimal and capped at 100. A non-positive target reads as
// 0% rather than dividing by zero.
func ProgressPercentage(target, count int) float64 {
	if target <= 0 {
		return 0
	}
	percentage := float64(count) / float64(target) * 100
	rounded := math.Round(percentage*10) / 10
	return math.Min(rounded, 100)
}

// RemainingWorkingDays counts the Mon-Fri days left in the objective's
// period: today excluded, period end included, weekends excluded. A period
// already over, or an objective with missing period fields, reads as 0.
func RemainingWorkingDays(o domain.Objective, today time.Time) int {
	r := period.Resolve(period.FromObjective(o), today.Location())
	if r.IsZero() {
		return 0
	}
	if r.End.Before(today) {
		return 0
	}
	return period.WorkingDaysBetween(today, r.End)
}

const (
	minYear = 2020
	maxYear = 2030
)

// Validate checks an objective draft and accumulates every violation so the
// caller can surface them all at once.
func Validate(o domain.Objective) []string {
	var errs []string

	if len([]rune(o.Label)) < 2 {
		errs = append(errs, "label must be at least 2 characters")
	}

	switch o.Type {
	case domain.ObjectiveSales, domain.ObjectiveContactsArgued, domain.ObjectiveOther:
	default:
		errs = append(errs, fmt.Sprintf("type must be %q, %q or %q", domain.ObjectiveSales, domain.ObjectiveContactsArgued, domain.ObjectiveOther))
	}

	switch o.Period {
	case domain.PeriodMonth:
		if o.Year < minYear || o.Year > maxYear {
			errs = append(errs, fmt.Sprintf("year must be between %d and %d", minYear, maxYear))
		}
		if o.Month < 1 || o.Month > 12 {
			errs = append(errs, "month must be between 1 and 12")
		}
	case domain.PeriodWeek:
		if o.WeekYear < minYear || o.WeekYear > maxYear {
			errs = append(errs, fmt.Sprintf("week year must be between %d and %d", minYear, maxYear))
		}
		if o.WeekNumber < 1 || o.WeekNumber > 53 {
			errs = append(errs, "week number must be between 1 and 53")
		}
	case domain.PeriodDay:
		if o.DayYear < minYear || o.DayYear > maxYear {
			errs = append(errs, fmt.Sprintf("day year must be between %d and %d", minYear, maxYear))
		}
		if o.DayMonth < 1 || o.DayMonth > 12 {
			errs = append(errs, "day month must be between 1 and 12")
		}
		if o.DayDate < 1 || o.DayDate > 31 {
			errs = append(errs, "day date must be between 1 and 31")
		}
	default:
		errs = append(errs, fmt.Sprintf("period must be %q, %q or %q", domain.PeriodMonth, domain.PeriodWeek, domain.PeriodDay))
	}

	if o.Target <= 0 {
		errs = append(errs, "target must be positive")
	}

	switch o.Scope {
	case domain.ScopeTeam:
	case domain.ScopePersonal:
		if o.AssignedTo == "" && o.UserID == "" {
			errs = append(errs, "personal objectives need an assignee")
		}
	default:
		errs = append(errs, fmt.Sprintf("scope must be %q or %q", domain.ScopeTeam, domain.ScopePersonal))
	}

	return errs
}

// FormatPeriod renders the period for lists and recap mails.
func FormatPeriod(o domain.Objective) string {
	switch o.Period {
	case domain.PeriodMonth:
		return fmt.Sprintf("%s %d", monthName(o.Month), o.Year)
	case domain.PeriodWeek:
		return fmt.Sprintf("Semaine %d (%d)", o.WeekNumber, o.WeekYear)
	case domain.PeriodDay:
		return fmt.Sprintf("%d %s %d", o.DayDate, monthName(o.DayMonth), o.DayYear)
	default:
		return ""
	}
}

var monthNames = []string{
	"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
	"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
}

func monthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}
