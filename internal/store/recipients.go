package store

import (
	"context"

	"salestrack/internal/domain"
)

func (s *Store) ListRecipients(ctx context.Context) ([]domain.Recipient, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT id, email, created_at
		FROM recap_recipients
		ORDER BY email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipients := make([]domain.Recipient, 0)
	for rows.Next() {
		var r domain.Recipient
		if err := rows.Scan(&r.ID, &r.Email, &r.CreatedAt); err != nil {
			return nil, err
		}
		recipients = append(recipients, r)
	}
	return recipients, rows.Err()
}

func (s *Store) AddRecipient(ctx context.Context, email string) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
		INSERT INTO recap_recipients (email)
		VALUES ($1)
		ON CONFLICT (email) DO UPDATE SET email=EXCLUDED.email
		RETURNING id`, email).Scan(&id)
	return id, err
}

func (s *Store) DeleteRecipient(ctx context.Context, id int64) error {
	_, err := s.DB.Exec(ctx, `DELETE FROM recap_recipients WHERE id=$1`, id)
	return err
}
