package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"salestrack/internal/domain"
)

const saleColumns = `id, date, offer, name, order_number, order_status,
	user_id, client_first_name, client_last_name, client_phone, import_batch_id,
	created_at, updated_at`

func scanSale(row interface{ Scan(...any) error }) (domain.Sale, error) {
	var sale domain.Sale
	err := row.Scan(&sale.ID, &sale.Date, &sale.Offer, &sale.Name, &sale.OrderNumber, &sale.OrderStatus,
		&sale.UserID, &sale.ClientFirstName, &sale.ClientLastName, &sale.ClientPhone, &sale.ImportBatchID,
		&sale.CreatedAt, &sale.UpdatedAt)
	return sale, err
}

func (s *Store) ListSales(ctx context.Context, filter SalesFilter) ([]domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales`
	var conds []string
	var args []any

	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if len(filter.Offers) > 0 {
		add("offer = ANY($%d)", filter.Offers)
	}
	if len(filter.Sellers) > 0 {
		add("name = ANY($%d)", filter.Sellers)
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, st := range filter.Statuses {
			statuses[i] = string(st)
		}
		add("order_status = ANY($%d)", statuses)
	}
	if !filter.From.IsZero() {
		add("date >= $%d", filter.From)
	}
	if !filter.To.IsZero() {
		add("date <= $%d", filter.To)
	}
	if filter.UserID != "" {
		add("user_id = $%d", filter.UserID)
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date DESC, id DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := make([]domain.Sale, 0)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

func (s *Store) GetSale(ctx context.Context, id int64) (domain.Sale, error) {
	row := s.DB.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id=$1`, id)
	return scanSale(row)
}

func (s *Store) CreateSale(ctx context.Context, input SaleInput) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
		INSERT INTO sales (date, offer, name, order_number, order_status,
			user_id, client_first_name, client_last_name, client_phone, import_batch_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id`,
		input.Date, input.Offer, input.Name, input.OrderNumber, input.OrderStatus,
		input.UserID, input.ClientFirstName, input.ClientLastName, input.ClientPhone, input.ImportBatchID,
	).Scan(&id)
	return id, err
}

func (s *Store) UpdateSale(ctx context.Context, id int64, input SaleInput) error {
	_, err := s.DB.Exec(ctx, `
		UPDATE sales
		SET date=$1, offer=$2, name=$3, order_number=$4, order_status=$5,
			user_id=$6, client_first_name=$7, client_last_name=$8, client_phone=$9,
			updated_at=now()
		WHERE id=$10`,
		input.Date, input.Offer, input.Name, input.OrderNumber, input.OrderStatus,
		input.UserID, input.ClientFirstName, input.ClientLastName, input.ClientPhone, id)
	return err
}

func (s *Store) DeleteSale(ctx context.Context, id int64) error {
	_, err := s.DB.Exec(ctx, `DELETE FROM sales WHERE id=$1`, id)
	return err
}

// CountValidSalesInRange counts validated sales inside an inclusive range,
// optionally narrowed to one user's records. Only the canonical "valide"
// status counts toward objective progress.
func (s *Store) CountValidSalesInRange(ctx context.Context, start, end time.Time, userID string) (int, error) {
	var count int
	var err error
	if userID == "" {
		err = s.DB.QueryRow(ctx, `
			SELECT COUNT(*) FROM sales
			WHERE order_status=$1 AND date >= $2 AND date <= $3`,
			domain.StatusValid, start, end).Scan(&count)
	} else {
		err = s.DB.QueryRow(ctx, `
			SELECT COUNT(*) FROM sales
			WHERE order_status=$1 AND date >= $2 AND date <= $3 AND user_id=$4`,
			domain.StatusValid, start, end, userID).Scan(&count)
	}
	return count, err
}

func (s *Store) ListSellers(ctx context.Context) ([]string, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT DISTINCT name FROM sales
		WHERE name <> ''
		ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sellers := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		sellers = append(sellers, name)
	}
	return sellers, rows.Err()
}

func (s *Store) TopSellers(ctx context.Context, start, end time.Time, limit int) ([]SellerCount, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := s.DB.Query(ctx, `
		SELECT name, COUNT(*) AS sales_count
		FROM sales
		WHERE order_status=$1 AND date >= $2 AND date <= $3 AND name <> ''
		GROUP BY name
		ORDER BY sales_count DESC, name
		LIMIT $4`,
		domain.StatusValid, start, end, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	top := make([]SellerCount, 0, limit)
	for rows.Next() {
		var sc SellerCount
		if err := rows.Scan(&sc.Name, &sc.Count); err != nil {
			return nil, err
		}
		top = append(top, sc)
	}
	return top, rows.Err()
}

// CountSalesByStatus aggregates a date range by status for recap reporting.
func (s *Store) CountSalesByStatus(ctx context.Context, start, end time.Time) (map[domain.OrderStatus]int, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT order_status, COUNT(*)
		FROM sales
		WHERE date >= $1 AND date <= $2
		GROUP BY order_status`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.OrderStatus]int)
	for rows.Next() {
		var status domain.OrderStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// BulkUpdateStatus rewrites the status of every sale in the range whose
// current status is in from. Used for mass corrections after import.
func (s *Store) BulkUpdateStatus(ctx context.Context, start, end time.Time, from []domain.OrderStatus, to domain.OrderStatus) (int64, error) {
	statuses := make([]string, len(from))
	for i, st := range from {
		statuses[i] = string(st)
	}
	tag, err := s.DB.Exec(ctx, `
		UPDATE sales
		SET order_status=$1, updated_at=now()
		WHERE date >= $2 AND date <= $3 AND order_status = ANY($4)`,
		to, start, end, statuses)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// InsertSalesBatch inserts imported rows in one transaction so a failed
// import leaves nothing behind.
func (s *Store) InsertSalesBatch(ctx context.Context, inputs []SaleInput) (int, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	inserted := 0
	for _, input := range inputs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO sales (date, offer, name, order_number, order_status,
				user_id, client_first_name, client_last_name, client_phone, import_batch_id)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			input.Date, input.Offer, input.Name, input.OrderNumber, input.OrderStatus,
			input.UserID, input.ClientFirstName, input.ClientLastName, input.ClientPhone, input.ImportBatchID,
		); err != nil {
			return 0, err
		}
		inserted++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return inserted, nil
}
