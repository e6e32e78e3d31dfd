package store

import (
	"context"
	"time"

	"salestrack/internal/domain"
)

type LeadsSaleInput struct {
	Date      time.Time
	Provider  domain.LeadsProvider
	OfferType string
	UserID    string
}

type LeadsOrderInput struct {
	Date     time.Time
	Provider domain.LeadsProvider
	Quantity int
}

func (s *Store) CreateLeadsSale(ctx context.Context, input LeadsSaleInput) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
		INSERT INTO leads_sales (date, provider, offer_type, user_id)
		VALUES ($1,$2,$3,$4)
		RETURNING id`,
		input.Date, input.Provider, input.OfferType, input.UserID,
	).Scan(&id)
	return id, err
}

func (s *Store) ListLeadsSales(ctx context.Context, from, to time.Time) ([]domain.LeadsSale, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT id, date, provider, offer_type, user_id, created_at
		FROM leads_sales
		WHERE date >= $1 AND date <= $2
		ORDER BY date DESC, id DESC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := make([]domain.LeadsSale, 0)
	for rows.Next() {
		var sale domain.LeadsSale
		if err := rows.Scan(&sale.ID, &sale.Date, &sale.Provider, &sale.OfferType, &sale.UserID, &sale.CreatedAt); err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

func (s *Store) CreateLeadsOrder(ctx context.Context, input LeadsOrderInput) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
		INSERT INTO leads_orders (date, provider, quantity)
		VALUES ($1,$2,$3)
		RETURNING id`,
		input.Date, input.Provider, input.Quantity,
	).Scan(&id)
	return id, err
}

func (s *Store) ListLeadsOrders(ctx context.Context, from, to time.Time) ([]domain.LeadsOrder, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT id, date, provider, quantity, created_at
		FROM leads_orders
		WHERE date >= $1 AND date <= $2
		ORDER BY date DESC, id DESC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.LeadsOrder, 0)
	for rows.Next() {
		var order domain.LeadsOrder
		if err := rows.Scan(&order.ID, &order.Date, &order.Provider, &order.Quantity, &order.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}
