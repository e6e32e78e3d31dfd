package service

import (
	"context"
	"log/slog"
	"time"

	"salestrack/internal/domain"
	"salestrack/internal/objective"
	"salestrack/internal/period"
)

// Progress is the computed completion state of one objective.
type Progress struct {
	Objective            domain.Objective `json:"objective"`
	PeriodLabel          string           `json:"periodLabel"`
	Count                int              `json:"count"`
	Percentage           float64          `json:"percentage"`
	RemainingWorkingDays int              `json:"remainingWorkingDays"`
	Degraded             bool             `json:"degraded,omitempty"`
}

// MonthFilter restricts a progress computation to one month. Week objectives
// straddling month boundaries only count the days inside it.
type MonthFilter struct {
	Year  int
	Month int
}

// countResult lets a count failure degrade to zero instead of failing the
// whole progress response. The dashboard shows 0 with a degraded marker
// rather than an error page.
type countResult struct {
	Count int
	Err   error
}

func (r countResult) OrZero() int {
	if r.Err != nil {
		return 0
	}
	return r.Count
}

// ObjectiveProgress computes the progress of one objective at the given
// instant. Count failures degrade to zero and are logged; only a missing
// objective is an error.
func (s *Service) ObjectiveProgress(ctx context.Context, id int64, now time.Time, filter *MonthFilter) (Progress, error) {
	o, err := s.store.GetObjective(ctx, id)
	if err != nil {
		return Progress{}, err
	}
	return s.computeProgress(ctx, o, now, filter), nil
}

// ActiveProgress computes progress for every active objective in a scope, in
// store order.
func (s *Service) ActiveProgress(ctx context.Context, scope domain.Scope, now time.Time, filter *MonthFilter) ([]Progress, error) {
	objectives, err := s.ListObjectives(ctx, scope)
	if err != nil {
		return nil, err
	}
	results := make([]Progress, 0, len(objectives))
	for _, o := range objectives {
		if !o.IsActive {
			continue
		}
		results = append(results, s.computeProgress(ctx, o, now, filter))
	}
	return results, nil
}

func (s *Service) computeProgress(ctx context.Context, o domain.Objective, now time.Time, filter *MonthFilter) Progress {
	p := Progress{
		Objective:            o,
		PeriodLabel:          objective.FormatPeriod(o),
		RemainingWorkingDays: objective.RemainingWorkingDays(o, now.In(s.zone)),
	}

	r := period.Resolve(period.FromObjective(o), s.zone)
	if filter != nil {
		r = period.ClampToMonth(r, filter.Year, filter.Month, s.zone)
	}
	if r.Empty() {
		return p
	}

	result := s.countRecords(ctx, o, r)
	if result.Err != nil {
		s.logger.Error("progress count failed",
			slog.Int64("objective_id", o.ID),
			slog.String("type", string(o.Type)),
			slog.String("error", result.Err.Error()))
		p.Degraded = true
	}
	p.Count = result.OrZero()
	p.Percentage = objective.ProgressPercentage(o.Target, p.Count)
	return p
}

func (s *Service) countRecords(ctx context.Context, o domain.Objective, r period.Range) countResult {
	switch o.Type {
	case domain.ObjectiveSales:
		userID := ""
		if o.Scope == domain.ScopePersonal {
			userID = o.AssignedTo
			if userID == "" {
				userID = o.UserID
			}
		}
		count, err := s.store.CountValidSalesInRange(ctx, r.Start, r.End, userID)
		return countResult{Count: count, Err: err}
	case domain.ObjectiveContactsArgued:
		total, err := s.store.SumContactsArgued(ctx, r.Start.Format(dateLayout), r.End.Format(dateLayout))
		return countResult{Count: total, Err: err}
	default:
		// "other" objectives have no backing records; progress stays manual.
		return countResult{}
	}
}

// WeeksOfMonth lists the ISO weeks touching a month so the dashboard can
// offer them as week-objective choices.
func (s *Service) WeeksOfMonth(year, month int) []period.Week {
	return period.WeeksInMonth(year, month)
}
