package store

import (
	"context"
	"fmt"

	"salestrack/internal/domain"
)

const objectiveColumns = `id, type, label, target, period,
	year, month, week_year, week_number, day_year, day_month, day_date,
	scope, user_id, assigned_to, assigned_to_name,
	is_active, created_by, created_at, updated_at`

func scanObjective(row interface{ Scan(...any) error }) (domain.Objective, error) {
	var o domain.Objective
	err := row.Scan(&o.ID, &o.Type, &o.Label, &o.Target, &o.Period,
		&o.Year, &o.Month, &o.WeekYear, &o.WeekNumber, &o.DayYear, &o.DayMonth, &o.DayDate,
		&o.Scope, &o.UserID, &o.AssignedTo, &o.AssignedToName,
		&o.IsActive, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func (s *Store) ListObjectives(ctx context.Context) ([]domain.Objective, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT `+objectiveColumns+`
		FROM objectives
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	objectives := make([]domain.Objective, 0)
	for rows.Next() {
		o, err := scanObjective(rows)
		if err != nil {
			return nil, err
		}
		objectives = append(objectives, o)
	}
	return objectives, rows.Err()
}

func (s *Store) ListObjectivesByScope(ctx context.Context, scope domain.Scope) ([]domain.Objective, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT `+objectiveColumns+`
		FROM objectives
		WHERE scope=$1
		ORDER BY created_at DESC, id DESC`, scope)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	objectives := make([]domain.Objective, 0)
	for rows.Next() {
		o, err := scanObjective(rows)
		if err != nil {
			return nil, err
		}
		objectives = append(objectives, o)
	}
	return objectives, rows.Err()
}

func (s *Store) GetObjective(ctx context.Context, id int64) (domain.Objective, error) {
	row := s.DB.QueryRow(ctx, `
		SELECT `+objectiveColumns+`
		FROM objectives
		WHERE id=$1`, id)
	return scanObjective(row)
}

func (s *Store) CreateObjective(ctx context.Context, input ObjectiveInput) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
		INSERT INTO objectives (type, label, target, period,
			year, month, week_year, week_number, day_year, day_month, day_date,
			scope, user_id, assigned_to, assigned_to_name, is_active, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		RETURNING id`,
		input.Type, input.Label, input.Target, input.Period,
		input.Year, input.Month, input.WeekYear, input.WeekNumber, input.DayYear, input.DayMonth, input.DayDate,
		input.Scope, input.UserID, input.AssignedTo, input.AssignedToName, input.IsActive, input.CreatedBy,
	).Scan(&id)
	return id, err
}

func (s *Store) UpdateObjective(ctx context.Context, id int64, input ObjectiveInput) error {
	_, err := s.DB.Exec(ctx, `
		UPDATE objectives
		SET type=$1, label=$2, target=$3, period=$4,
			year=$5, month=$6, week_year=$7, week_number=$8,
			day_year=$9, day_month=$10, day_date=$11,
			scope=$12, user_id=$13, assigned_to=$14, assigned_to_name=$15,
			is_active=$16, updated_at=now()
		WHERE id=$17`,
		input.Type, input.Label, input.Target, input.Period,
		input.Year, input.Month, input.WeekYear, input.WeekNumber,
		input.DayYear, input.DayMonth, input.DayDate,
		input.Scope, input.UserID, input.AssignedTo, input.AssignedToName,
		input.IsActive, id)
	return err
}

func (s *Store) SetObjectiveActive(ctx context.Context, id int64, active bool) error {
	_, err := s.DB.Exec(ctx, `UPDATE objectives SET is_active=$1, updated_at=now() WHERE id=$2`, active, id)
	return err
}

func (s *Store) DeleteObjective(ctx context.Context, id int64) error {
	_, err := s.DB.Exec(ctx, `DELETE FROM objectives WHERE id=$1`, id)
	return err
}

// CountConflicting counts objectives sharing the draft's type, period
// identity and scope (and assignee for personal scope), excluding the draft
// itself when editing. More than zero blocks creation.
func (s *Store) CountConflicting(ctx context.Context, o domain.Objective, excludeID int64) (int, error) {
	query := `SELECT COUNT(*) FROM objectives WHERE type=$1 AND period=$2 AND scope=$3 AND id<>$4`
	args := []any{o.Type, o.Period, o.Scope, excludeID}

	switch o.Period {
	case domain.PeriodMonth:
		query += fmt.Sprintf(" AND year=$%d AND month=$%d", len(args)+1, len(args)+2)
		args = append(args, o.Year, o.Month)
	case domain.PeriodWeek:
		query += fmt.Sprintf(" AND week_year=$%d AND week_number=$%d", len(args)+1, len(args)+2)
		args = append(args, o.WeekYear, o.WeekNumber)
	case domain.PeriodDay:
		query += fmt.Sprintf(" AND day_year=$%d AND day_month=$%d AND day_date=$%d", len(args)+1, len(args)+2, len(args)+3)
		args = append(args, o.DayYear, o.DayMonth, o.DayDate)
	default:
		return 0, nil
	}

	if o.Scope == domain.ScopePersonal {
		if o.AssignedTo != "" {
			query += fmt.Sprintf(" AND assigned_to=$%d", len(args)+1)
			args = append(args, o.AssignedTo)
		} else if o.UserID != "" {
			query += fmt.Sprintf(" AND user_id=$%d", len(args)+1)
			args = append(args, o.UserID)
		}
	}

	var count int
	if err := s.DB.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
