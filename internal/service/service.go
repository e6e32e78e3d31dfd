package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"salestrack/internal/domain"
	"salestrack/internal/export"
	"salestrack/internal/normalize"
	"salestrack/internal/objective"
	"salestrack/internal/store"

	"github.com/google/uuid"
)

type Store interface {
	ListObjectives(ctx context.Context) ([]domain.Objective, error)
	ListObjectivesByScope(ctx context.Context, scope domain.Scope) ([]domain.Objective, error)
	GetObjective(ctx context.Context, id int64) (domain.Objective, error)
	CreateObjective(ctx context.Context, input store.ObjectiveInput) (int64, error)
	UpdateObjective(ctx context.Context, id int64, input store.ObjectiveInput) error
	SetObjectiveActive(ctx context.Context, id int64, active bool) error
	DeleteObjective(ctx context.Context, id int64) error
	CountConflicting(ctx context.Context, o domain.Objective, excludeID int64) (int, error)

	ListSales(ctx context.Context, filter store.SalesFilter) ([]domain.Sale, error)
	GetSale(ctx context.Context, id int64) (domain.Sale, error)
	CreateSale(ctx context.Context, input store.SaleInput) (int64, error)
	UpdateSale(ctx context.Context, id int64, input store.SaleInput) error
	DeleteSale(ctx context.Context, id int64) error
	CountValidSalesInRange(ctx context.Context, start, end time.Time, userID string) (int, error)
	ListSellers(ctx context.Context) ([]string, error)
	TopSellers(ctx context.Context, start, end time.Time, limit int) ([]store.SellerCount, error)
	CountSalesByStatus(ctx context.Context, start, end time.Time) (map[domain.OrderStatus]int, error)
	BulkUpdateStatus(ctx context.Context, start, end time.Time, from []domain.OrderStatus, to domain.OrderStatus) (int64, error)
	InsertSalesBatch(ctx context.Context, inputs []store.SaleInput) (int, error)

	CreateLeadsSale(ctx context.Context, input store.LeadsSaleInput) (int64, error)
	ListLeadsSales(ctx context.Context, from, to time.Time) ([]domain.LeadsSale, error)
	CreateLeadsOrder(ctx context.Context, input store.LeadsOrderInput) (int64, error)
	ListLeadsOrders(ctx context.Context, from, to time.Time) ([]domain.LeadsOrder, error)

	UpsertContactsArgued(ctx context.Context, date string, count int, updatedBy string) error
	GetContactsArgued(ctx context.Context, date string) (domain.ContactsArgued, error)
	ListContactsArgued(ctx context.Context, from, to string, limit int) ([]domain.ContactsArgued, error)
	SumContactsArgued(ctx context.Context, from, to string) (int, error)

	ListRecipients(ctx context.Context) ([]domain.Recipient, error)
	AddRecipient(ctx context.Context, email string) (int64, error)
	DeleteRecipient(ctx context.Context, id int64) error
}

// Mailer delivers recap mails. The SMTP implementation lives in the mail
// package; tests plug in a recorder.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, htmlBody string) error
}

type Service struct {
	store   Store
	mailer  Mailer
	logger  *slog.Logger
	zone    *time.Location
	aliases []normalize.AliasRule
}

func New(st Store, mailer Mailer, logger *slog.Logger, zone *time.Location) *Service {
	if zone == nil {
		zone = time.UTC
	}
	return &Service{
		store:   st,
		mailer:  mailer,
		logger:  logger,
		zone:    zone,
		aliases: normalize.DefaultAliases,
	}
}

// ErrDuplicate rejects an objective that would shadow an existing one on the
// same type, period, scope and assignee.
var ErrDuplicate = errors.New("an equivalent objective already exists")

// ValidationError carries every field violation found in one pass.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

func (s *Service) ListObjectives(ctx context.Context, scope domain.Scope) ([]domain.Objective, error) {
	if scope == "" {
		return s.store.ListObjectives(ctx)
	}
	return s.store.ListObjectivesByScope(ctx, scope)
}

func (s *Service) GetObjective(ctx context.Context, id int64) (domain.Objective, error) {
	return s.store.GetObjective(ctx, id)
}

func (s *Service) CreateObjective(ctx context.Context, input store.ObjectiveInput) (int64, error) {
	if err := s.checkObjective(ctx, input, 0); err != nil {
		return 0, err
	}
	return s.store.CreateObjective(ctx, input)
}

func (s *Service) UpdateObjective(ctx context.Context, id int64, input store.ObjectiveInput) error {
	if _, err := s.store.GetObjective(ctx, id); err != nil {
		return err
	}
	if err := s.checkObjective(ctx, input, id); err != nil {
		return err
	}
	return s.store.UpdateObjective(ctx, id, input)
}

func (s *Service) SetObjectiveActive(ctx context.Context, id int64, active bool) error {
	if _, err := s.store.GetObjective(ctx, id); err != nil {
		return err
	}
	return s.store.SetObjectiveActive(ctx, id, active)
}

func (s *Service) DeleteObjective(ctx context.Context, id int64) error {
	return s.store.DeleteObjective(ctx, id)
}

func (s *Service) checkObjective(ctx context.Context, input store.ObjectiveInput, excludeID int64) error {
	draft := objectiveFromInput(input)
	if errs := objective.Validate(draft); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	count, err := s.store.CountConflicting(ctx, draft, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicate
	}
	return nil
}

func objectiveFromInput(input store.ObjectiveInput) domain.Objective {
	return domain.Objective{
		Type:           input.Type,
		Label:          input.Label,
		Target:         input.Target,
		Period:         input.Period,
		Year:           input.Year,
		Month:          input.Month,
		WeekYear:       input.WeekYear,
		WeekNumber:     input.WeekNumber,
		DayYear:        input.DayYear,
		DayMonth:       input.DayMonth,
		DayDate:        input.DayDate,
		Scope:          input.Scope,
		UserID:         input.UserID,
		AssignedTo:     input.AssignedTo,
		AssignedToName: input.AssignedToName,
		IsActive:       input.IsActive,
		CreatedBy:      input.CreatedBy,
	}
}

func (s *Service) ListSales(ctx context.Context, filter store.SalesFilter) ([]domain.Sale, error) {
	return s.store.ListSales(ctx, filter)
}

func (s *Service) GetSale(ctx context.Context, id int64) (domain.Sale, error) {
	return s.store.GetSale(ctx, id)
}

func (s *Service) CreateSale(ctx context.Context, input store.SaleInput) (int64, error) {
	cleaned, err := s.cleanSale(input)
	if err != nil {
		return 0, err
	}
	return s.store.CreateSale(ctx, cleaned)
}

func (s *Service) UpdateSale(ctx context.Context, id int64, input store.SaleInput) error {
	existing, err := s.store.GetSale(ctx, id)
	if err != nil {
		return err
	}
	cleaned, err := s.cleanSale(input)
	if err != nil {
		return err
	}
	// Edits never reassign ownership: the seller on record keeps the sale
	// even when an admin corrects it.
	cleaned.UserID = existing.UserID
	return s.store.UpdateSale(ctx, id, cleaned)
}

func (s *Service) DeleteSale(ctx context.Context, id int64) error {
	return s.store.DeleteSale(ctx, id)
}

// cleanSale applies the write-side normalizations: seller aliases collapse to
// their canonical name and the status collapses to a canonical value.
func (s *Service) cleanSale(input store.SaleInput) (store.SaleInput, error) {
	var errs []string
	if input.Date.IsZero() {
		errs = append(errs, "date is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, "seller name is required")
	}
	if strings.TrimSpace(input.OrderNumber) == "" {
		errs = append(errs, "order number is required")
	}
	if len(errs) > 0 {
		return store.SaleInput{}, &ValidationError{Fields: errs}
	}
	input.Name = normalize.SellerName(input.Name, s.aliases)
	input.OrderStatus = normalize.Status(string(input.OrderStatus))
	input.OrderNumber = strings.TrimSpace(input.OrderNumber)
	return input, nil
}

func (s *Service) ListSellers(ctx context.Context) ([]string, error) {
	return s.store.ListSellers(ctx)
}

func (s *Service) TopSellers(ctx context.Context, start, end time.Time, limit int) ([]store.SellerCount, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.store.TopSellers(ctx, start, end, limit)
}

func (s *Service) BulkUpdateStatus(ctx context.Context, start, end time.Time, from []domain.OrderStatus, to domain.OrderStatus) (int64, error) {
	to = normalize.Status(string(to))
	for i := range from {
		from[i] = normalize.Status(string(from[i]))
	}
	return s.store.BulkUpdateStatus(ctx, start, end, from, to)
}

// ExportSales renders the filtered sales as the back-office CSV.
func (s *Service) ExportSales(ctx context.Context, filter store.SalesFilter) (string, error) {
	sales, err := s.store.ListSales(ctx, filter)
	if err != nil {
		return "", err
	}
	return export.Sales(sales), nil
}

// ImportReport summarizes one CSV import run.
type ImportReport struct {
	BatchID  string   `json:"batchId"`
	Imported int      `json:"imported"`
	Rejected int      `json:"rejected"`
	Errors   []string `json:"errors,omitempty"`
}

// ImportSales parses a CSV stream and inserts the valid rows in one batch.
// Rows that fail to parse are reported, not fatal; a parse failure of the
// stream itself aborts the import.
func (s *Service) ImportSales(ctx context.Context, r io.Reader, userID string) (ImportReport, error) {
	rows, rowErrs, err := export.ParseSales(r, s.zone)
	if err != nil {
		return ImportReport{}, err
	}

	batchID := uuid.NewString()
	inputs := make([]store.SaleInput, 0, len(rows))
	for _, row := range rows {
		inputs = append(inputs, store.SaleInput{
			Date:            row.Date,
			Offer:           row.Offer,
			Name:            normalize.SellerName(row.Name, s.aliases),
			OrderNumber:     row.OrderNumber,
			OrderStatus:     normalize.Status(row.RawStatus),
			UserID:          userID,
			ClientFirstName: row.ClientFirstName,
			ClientLastName:  row.ClientLastName,
			ClientPhone:     row.ClientPhone,
			ImportBatchID:   batchID,
		})
	}

	report := ImportReport{BatchID: batchID, Rejected: len(rowErrs)}
	for _, rowErr := range rowErrs {
		report.Errors = append(report.Errors, rowErr.Error())
	}
	if len(inputs) == 0 {
		return report, nil
	}

	inserted, err := s.store.InsertSalesBatch(ctx, inputs)
	if err != nil {
		return ImportReport{}, err
	}
	report.Imported = inserted
	s.logger.Info("sales import",
		slog.String("batch_id", batchID),
		slog.Int("imported", inserted),
		slog.Int("rejected", report.Rejected))
	return report, nil
}

const dateLayout = "2006-01-02"

func (s *Service) RecordContactsArgued(ctx context.Context, date string, count int, updatedBy string) error {
	var errs []string
	if _, err := time.Parse(dateLayout, date); err != nil {
		errs = append(errs, "date must be formatted YYYY-MM-DD")
	}
	if count < 0 {
		errs = append(errs, "count must not be negative")
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return s.store.UpsertContactsArgued(ctx, date, count, updatedBy)
}

func (s *Service) GetContactsArgued(ctx context.Context, date string) (domain.ContactsArgued, error) {
	return s.store.GetContactsArgued(ctx, date)
}

func (s *Service) ListContactsArgued(ctx context.Context, from, to string, limit int) ([]domain.ContactsArgued, error) {
	return s.store.ListContactsArgued(ctx, from, to, limit)
}

func (s *Service) ListRecipients(ctx context.Context) ([]domain.Recipient, error) {
	return s.store.ListRecipients(ctx)
}

func (s *Service) AddRecipient(ctx context.Context, email string) (int64, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return 0, &ValidationError{Fields: []string{fmt.Sprintf("invalid email address %q", email)}}
	}
	return s.store.AddRecipient(ctx, email)
}

func (s *Service) DeleteRecipient(ctx context.Context, id int64) error {
	return s.store.DeleteRecipient(ctx, id)
}
