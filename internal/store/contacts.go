package store

import (
	"context"
	"time"

	"salestrack/internal/domain"
)

const dateLayout = "2006-01-02"

// UpsertContactsArgued records the argued-contacts count for one day. One
// row per date: a second write for the same date replaces the count.
func (s *Store) UpsertContactsArgued(ctx context.Context, date string, count int, updatedBy string) error {
	_, err := s.DB.Exec(ctx, `
		INSERT INTO contacts_argued (date, count, updated_by)
		VALUES ($1, $2, $3)
		ON CONFLICT (date) DO UPDATE
		SET count=EXCLUDED.count, updated_by=EXCLUDED.updated_by, updated_at=now()`,
		date, count, updatedBy)
	return err
}

func (s *Store) GetContactsArgued(ctx context.Context, date string) (domain.ContactsArgued, error) {
	row := s.DB.QueryRow(ctx, `
		SELECT id, date, count, updated_by, updated_at
		FROM contacts_argued
		WHERE date=$1`, date)
	return scanContactsArgued(row)
}

func (s *Store) ListContactsArgued(ctx context.Context, from, to string, limit int) ([]domain.ContactsArgued, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := s.DB.Query(ctx, `
		SELECT id, date, count, updated_by, updated_at
		FROM contacts_argued
		WHERE ($1 = '' OR date >= $1::date) AND ($2 = '' OR date <= $2::date)
		ORDER BY date DESC
		LIMIT $3`, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.ContactsArgued, 0)
	for rows.Next() {
		entry, err := scanContactsArgued(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// SumContactsArgued totals argued contacts over an inclusive date range,
// feeding contacts-argued objective progress.
func (s *Store) SumContactsArgued(ctx context.Context, from, to string) (int, error) {
	var total int
	err := s.DB.QueryRow(ctx, `
		SELECT COALESCE(SUM(count), 0)
		FROM contacts_argued
		WHERE date >= $1::date AND date <= $2::date`, from, to).Scan(&total)
	return total, err
}

func scanContactsArgued(row interface{ Scan(...any) error }) (domain.ContactsArgued, error) {
	var entry domain.ContactsArgued
	var date time.Time
	if err := row.Scan(&entry.ID, &date, &entry.Count, &entry.UpdatedBy, &entry.UpdatedAt); err != nil {
		return domain.ContactsArgued{}, err
	}
	entry.Date = date.Format(dateLayout)
	return entry, nil
}
