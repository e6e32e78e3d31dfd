package store

import (
	"time"

	"salestrack/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

type ObjectiveInput struct {
	Type           domain.ObjectiveType
	Label          string
	Target         int
	Period         domain.PeriodKind
	Year           int
	Month          int
	WeekYear       int
	WeekNumber     int
	DayYear        int
	DayMonth       int
	DayDate        int
	Scope          domain.Scope
	UserID         string
	AssignedTo     string
	AssignedToName string
	IsActive       bool
	CreatedBy      string
}

type SaleInput struct {
	Date            time.Time
	Offer           string
	Name            string
	OrderNumber     string
	OrderStatus     domain.OrderStatus
	UserID          string
	ClientFirstName string
	ClientLastName  string
	ClientPhone     string
	ImportBatchID   string
}

// SalesFilter narrows ListSales. Zero values mean "no constraint".
type SalesFilter struct {
	Offers   []string
	Sellers  []string
	Statuses []domain.OrderStatus
	From     time.Time
	To       time.Time
	UserID   string
	Limit    int
}

type SellerCount struct {
	Name  string
	Count int
}
