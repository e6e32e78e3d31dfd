package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"salestrack/internal/domain"
	"salestrack/internal/store"
)

type fakeStore struct {
	objectives    map[int64]domain.Objective
	nextID        int64
	conflicts     int
	lastExcludeID int64

	sales        []store.SaleInput
	validCount   int
	countErr     error
	lastFrom     time.Time
	lastTo       time.Time
	lastUserID   string
	byStatus     map[domain.OrderStatus]int
	topSellers   []store.SellerCount
	contactsSum  int
	contacts     map[string]domain.ContactsArgued
	recipients   []domain.Recipient
	batchInserts []store.SaleInput
	leadsSales   []store.LeadsSaleInput
	leadsOrders  []store.LeadsOrderInput
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		objectives: make(map[int64]domain.Objective),
		byStatus:   make(map[domain.OrderStatus]int),
		contacts:   make(map[string]domain.ContactsArgued),
	}
}

func (f *fakeStore) ListObjectives(context.Context) ([]domain.Objective, error) {
	out := make([]domain.Objective, 0, len(f.objectives))
	for _, o := range f.objectives {
		out = append(out, o)
	}
	return out, nil
}
func (f *fakeStore) ListObjectivesByScope(ctx context.Context, scope domain.Scope) ([]domain.Objective, error) {
	all, _ := f.ListObjectives(ctx)
	out := all[:0]
	for _, o := range all {
		if o.Scope == scope {
			out = append(out, o)
		}
	}
	return out, nil
}
func (f *fakeStore) GetObjective(_ context.Context, id int64) (domain.Objective, error) {
	o, ok := f.objectives[id]
	if !ok {
		return domain.Objective{}, errors.New("no rows")
	}
	return o, nil
}
func (f *fakeStore) CreateObjective(_ context.Context, input store.ObjectiveInput) (int64, error) {
	f.nextID++
	o := objectiveFromInput(input)
	o.ID = f.nextID
	f.objectives[o.ID] = o
	return o.ID, nil
}
func (f *fakeStore) UpdateObjective(_ context.Context, id int64, input store.ObjectiveInput) error {
	o := objectiveFromInput(input)
	o.ID = id
	f.objectives[id] = o
	return nil
}
func (f *fakeStore) SetObjectiveActive(_ context.Context, id int64, active bool) error {
	o := f.objectives[id]
	o.IsActive = active
	f.objectives[id] = o
	return nil
}
func (f *fakeStore) DeleteObjective(_ context.Context, id int64) error {
	delete(f.objectives, id)
	return nil
}
func (f *fakeStore) CountConflicting(_ context.Context, _ domain.Objective, excludeID int64) (int, error) {
	f.lastExcludeID = excludeID
	return f.conflicts, nil
}

func (f *fakeStore) ListSales(context.Context, store.SalesFilter) ([]domain.Sale, error) {
	return nil, nil
}
func (f *fakeStore) GetSale(_ context.Context, id int64) (domain.Sale, error) {
	if int(id) <= len(f.sales) {
		stored := f.sales[id-1]
		return domain.Sale{ID: id, UserID: stored.UserID}, nil
	}
	return domain.Sale{}, errors.New("no rows")
}
func (f *fakeStore) CreateSale(_ context.Context, input store.SaleInput) (int64, error) {
	f.sales = append(f.sales, input)
	return int64(len(f.sales)), nil
}
func (f *fakeStore) UpdateSale(_ context.Context, id int64, input store.SaleInput) error {
	f.sales[id-1] = input
	return nil
}
func (f *fakeStore) DeleteSale(context.Context, int64) error { return nil }
func (f *fakeStore) CountValidSalesInRange(_ context.Context, start, end time.Time, userID string) (int, error) {
	f.lastFrom, f.lastTo, f.lastUserID = start, end, userID
	return f.validCount, f.countErr
}
func (f *fakeStore) ListSellers(context.Context) ([]string, error) { return nil, nil }
func (f *fakeStore) TopSellers(context.Context, time.Time, time.Time, int) ([]store.SellerCount, error) {
	return f.topSellers, nil
}
func (f *fakeStore) CountSalesByStatus(context.Context, time.Time, time.Time) (map[domain.OrderStatus]int, error) {
	return f.byStatus, nil
}
func (f *fakeStore) BulkUpdateStatus(context.Context, time.Time, time.Time, []domain.OrderStatus, domain.OrderStatus) (int64, error) {
	return 0, nil
}
func (f *fakeStore) InsertSalesBatch(_ context.Context, inputs []store.SaleInput) (int, error) {
	f.batchInserts = append(f.batchInserts, inputs...)
	return len(inputs), nil
}

func (f *fakeStore) CreateLeadsSale(_ context.Context, input store.LeadsSaleInput) (int64, error) {
	f.leadsSales = append(f.leadsSales, input)
	return int64(len(f.leadsSales)), nil
}
func (f *fakeStore) ListLeadsSales(_ context.Context, from, to time.Time) ([]domain.LeadsSale, error) {
	out := make([]domain.LeadsSale, 0, len(f.leadsSales))
	for i, input := range f.leadsSales {
		if input.Date.Before(from) || input.Date.After(to) {
			continue
		}
		out = append(out, domain.LeadsSale{
			ID: int64(i + 1), Date: input.Date,
			Provider: input.Provider, OfferType: input.OfferType, UserID: input.UserID,
		})
	}
	return out, nil
}
func (f *fakeStore) CreateLeadsOrder(_ context.Context, input store.LeadsOrderInput) (int64, error) {
	f.leadsOrders = append(f.leadsOrders, input)
	return int64(len(f.leadsOrders)), nil
}
func (f *fakeStore) ListLeadsOrders(_ context.Context, from, to time.Time) ([]domain.LeadsOrder, error) {
	out := make([]domain.LeadsOrder, 0, len(f.leadsOrders))
	for i, input := range f.leadsOrders {
		if input.Date.Before(from) || input.Date.After(to) {
			continue
		}
		out = append(out, domain.LeadsOrder{
			ID: int64(i + 1), Date: input.Date,
			Provider: input.Provider, Quantity: input.Quantity,
		})
	}
	return out, nil
}

func (f *fakeStore) UpsertContactsArgued(_ context.Context, date string, count int, updatedBy string) error {
	f.contacts[date] = domain.ContactsArgued{Date: date, Count: count, UpdatedBy: updatedBy}
	return nil
}
func (f *fakeStore) GetContactsArgued(_ context.Context, date string) (domain.ContactsArgued, error) {
	return f.contacts[date], nil
}
func (f *fakeStore) ListContactsArgued(context.Context, string, string, int) ([]domain.ContactsArgued, error) {
	return nil, nil
}
func (f *fakeStore) SumContactsArgued(context.Context, string, string) (int, error) {
	return f.contactsSum, nil
}

func (f *fakeStore) ListRecipients(context.Context) ([]domain.Recipient, error) {
	return f.recipients, nil
}
func (f *fakeStore) AddRecipient(_ context.Context, email string) (int64, error) {
	f.recipients = append(f.recipients, domain.Recipient{ID: int64(len(f.recipients) + 1), Email: email})
	return int64(len(f.recipients)), nil
}
func (f *fakeStore) DeleteRecipient(context.Context, int64) error { return nil }

type fakeMailer struct {
	to      []string
	subject string
	body    string
	sends   int
}

func (f *fakeMailer) Send(_ context.Context, to []string, subject, body string) error {
	f.to, f.subject, f.body = to, subject, body
	f.sends++
	return nil
}

func newTestService(f *fakeStore, m Mailer) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(f, m, logger, time.UTC)
}

func monthObjectiveInput() store.ObjectiveInput {
	return store.ObjectiveInput{
		Type:     domain.ObjectiveSales,
		Label:    "Ventes juillet",
		Target:   100,
		Period:   domain.PeriodMonth,
		Year:     2025,
		Month:    7,
		Scope:    domain.ScopeTeam,
		IsActive: true,
	}
}

func TestCreateObjectiveValidation(t *testing.T) {
	svc := newTestService(newFakeStore(), nil)

	input := monthObjectiveInput()
	input.Label = "V"
	input.Target = 0

	_, err := svc.CreateObjective(context.Background(), input)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(vErr.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %v", vErr.Fields)
	}
}

func TestCreateObjectiveDuplicate(t *testing.T) {
	fs := newFakeStore()
	fs.conflicts = 1
	svc := newTestService(fs, nil)

	_, err := svc.CreateObjective(context.Background(), monthObjectiveInput())
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestUpdateObjectiveExcludesSelf(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs, nil)

	id, err := svc.CreateObjective(context.Background(), monthObjectiveInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	input := monthObjectiveInput()
	input.Target = 120
	if err := svc.UpdateObjective(context.Background(), id, input); err != nil {
		t.Fatalf("update: %v", err)
	}
	if fs.lastExcludeID != id {
		t.Fatalf("expected conflict check to exclude id %d, got %d", id, fs.lastExcludeID)
	}
	if fs.objectives[id].Target != 120 {
		t.Fatalf("expected target updated, got %d", fs.objectives[id].Target)
	}
}

func TestCreateSaleNormalizes(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs, nil)

	_, err := svc.CreateSale(context.Background(), store.SaleInput{
		Date:        time.Date(2025, 7, 14, 9, 0, 0, 0, time.UTC),
		Offer:       "canal",
		Name:        "Guy Laroche KOUADIO",
		OrderNumber: " CMD-001 ",
		OrderStatus: "Validée",
	})
	if err != nil {
		t.Fatalf("create sale: %v", err)
	}
	got := fs.sales[0]
	if got.Name != "Guy la roche" {
		t.Fatalf("expected aliased seller name, got %q", got.Name)
	}
	if got.OrderStatus != domain.StatusValid {
		t.Fatalf("expected normalized status, got %q", got.OrderStatus)
	}
	if got.OrderNumber != "CMD-001" {
		t.Fatalf("expected trimmed order number, got %q", got.OrderNumber)
	}
}

func TestUpdateSalePreservesOwner(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs, nil)

	id, err := svc.CreateSale(context.Background(), store.SaleInput{
		Date:        time.Date(2025, 7, 14, 9, 0, 0, 0, time.UTC),
		Offer:       "canal",
		Name:        "Marie Dupont",
		OrderNumber: "CMD-010",
		OrderStatus: "en_attente",
		UserID:      "seller-1",
	})
	if err != nil {
		t.Fatalf("create sale: %v", err)
	}

	err = svc.UpdateSale(context.Background(), id, store.SaleInput{
		Date:        time.Date(2025, 7, 14, 9, 0, 0, 0, time.UTC),
		Offer:       "canal",
		Name:        "Marie Dupont",
		OrderNumber: "CMD-010",
		OrderStatus: "valide",
		UserID:      "admin-1",
	})
	if err != nil {
		t.Fatalf("update sale: %v", err)
	}
	got := fs.sales[id-1]
	if got.UserID != "seller-1" {
		t.Fatalf("expected sale to keep owner seller-1, got %q", got.UserID)
	}
	if got.OrderStatus != domain.StatusValid {
		t.Fatalf("expected status updated to valide, got %q", got.OrderStatus)
	}
}

func TestCreateSaleRequiredFields(t *testing.T) {
	svc := newTestService(newFakeStore(), nil)

	_, err := svc.CreateSale(context.Background(), store.SaleInput{})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(vErr.Fields) != 3 {
		t.Fatalf("expected 3 field errors, got %v", vErr.Fields)
	}
}

func TestObjectiveProgressSales(t *testing.T) {
	fs := newFakeStore()
	fs.validCount = 33
	svc := newTestService(fs, nil)

	id, err := svc.CreateObjective(context.Background(), monthObjectiveInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	now := time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC)
	p, err := svc.ObjectiveProgress(context.Background(), id, now, nil)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if p.Count != 33 || p.Percentage != 33.0 {
		t.Fatalf("expected 33 / 33.0%%, got %d / %v", p.Count, p.Percentage)
	}
	if p.Degraded {
		t.Fatalf("unexpected degraded progress")
	}
	if fs.lastFrom.Day() != 1 || fs.lastTo.Day() != 31 {
		t.Fatalf("expected July boundaries, got %v .. %v", fs.lastFrom, fs.lastTo)
	}
	if p.PeriodLabel != "Juillet 2025" {
		t.Fatalf("unexpected period label %q", p.PeriodLabel)
	}
}

func TestObjectiveProgressPersonalFiltersUser(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs, nil)

	input := monthObjectiveInput()
	input.Scope = domain.ScopePersonal
	input.AssignedTo = "u1"
	id, err := svc.CreateObjective(context.Background(), input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	now := time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC)
	if _, err := svc.ObjectiveProgress(context.Background(), id, now, nil); err != nil {
		t.Fatalf("progress: %v", err)
	}
	if fs.lastUserID != "u1" {
		t.Fatalf("expected count scoped to u1, got %q", fs.lastUserID)
	}
}

func TestObjectiveProgressDegradesOnCountFailure(t *testing.T) {
	fs := newFakeStore()
	fs.countErr = errors.New("connection reset")
	svc := newTestService(fs, nil)

	id, err := svc.CreateObjective(context.Background(), monthObjectiveInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	now := time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC)
	p, err := svc.ObjectiveProgress(context.Background(), id, now, nil)
	if err != nil {
		t.Fatalf("progress should not fail: %v", err)
	}
	if !p.Degraded || p.Count != 0 || p.Percentage != 0 {
		t.Fatalf("expected degraded zero progress, got %+v", p)
	}
}

func TestObjectiveProgressWeekClampedToMonth(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs, nil)

	// ISO week 14/2025 runs March 31 .. April 6.
	input := monthObjectiveInput()
	input.Period = domain.PeriodWeek
	input.Year, input.Month = 0, 0
	input.WeekYear, input.WeekNumber = 2025, 14
	id, err := svc.CreateObjective(context.Background(), input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	now := time.Date(2025, 4, 2, 12, 0, 0, 0, time.UTC)
	_, err = svc.ObjectiveProgress(context.Background(), id, now, &MonthFilter{Year: 2025, Month: 4})
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if fs.lastFrom.Month() != time.April || fs.lastFrom.Day() != 1 {
		t.Fatalf("expected count to start April 1, got %v", fs.lastFrom)
	}
	if fs.lastTo.Month() != time.April || fs.lastTo.Day() != 6 {
		t.Fatalf("expected count to end April 6, got %v", fs.lastTo)
	}
}

func TestObjectiveProgressContactsArgued(t *testing.T) {
	fs := newFakeStore()
	fs.contactsSum = 250
	svc := newTestService(fs, nil)

	input := monthObjectiveInput()
	input.Type = domain.ObjectiveContactsArgued
	input.Target = 500
	id, err := svc.CreateObjective(context.Background(), input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	now := time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC)
	p, err := svc.ObjectiveProgress(context.Background(), id, now, nil)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if p.Count != 250 || p.Percentage != 50.0 {
		t.Fatalf("expected 250 / 50%%, got %d / %v", p.Count, p.Percentage)
	}
}

func TestImportSales(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs, nil)

	csv := strings.Join([]string{
		"Date;Heure;Vendeur;N° Commande;Offre;Statut commande;Client_Nom;Client_Prenom;Client_Telephone",
		"14/07/2025;09:30:05;Guy Laroche;CMD-001;CANAL+ Sport;Validée;Martin;Jean;0601020304",
		"15/07/2025;10:00:00;Awa Diallo;CMD-002;canal;en attente;;;",
		"pas une date;;X;CMD-003;canal;ok;;;",
	}, "\r\n")

	report, err := svc.ImportSales(context.Background(), strings.NewReader(csv), "admin-1")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Imported != 2 || report.Rejected != 1 {
		t.Fatalf("expected 2 imported 1 rejected, got %+v", report)
	}
	if report.BatchID == "" {
		t.Fatalf("expected a batch id")
	}
	if len(fs.batchInserts) != 2 {
		t.Fatalf("expected 2 batch inserts, got %d", len(fs.batchInserts))
	}
	first := fs.batchInserts[0]
	if first.Name != "Guy la roche" {
		t.Fatalf("expected aliased name, got %q", first.Name)
	}
	if first.Offer != "canal-sport" {
		t.Fatalf("expected offer id resolved, got %q", first.Offer)
	}
	if first.OrderStatus != domain.StatusValid {
		t.Fatalf("expected normalized status, got %q", first.OrderStatus)
	}
	if first.ImportBatchID != report.BatchID {
		t.Fatalf("expected batch id on rows")
	}
	if fs.batchInserts[1].OrderStatus != domain.StatusPending {
		t.Fatalf("expected pending status, got %q", fs.batchInserts[1].OrderStatus)
	}
}

func TestRecordContactsArguedValidation(t *testing.T) {
	svc := newTestService(newFakeStore(), nil)

	err := svc.RecordContactsArgued(context.Background(), "14/07/2025", -1, "u1")
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(vErr.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %v", vErr.Fields)
	}
}

func TestAddRecipientValidation(t *testing.T) {
	svc := newTestService(newFakeStore(), nil)

	if _, err := svc.AddRecipient(context.Background(), "not-an-email"); err == nil {
		t.Fatalf("expected error for invalid email")
	}
	id, err := svc.AddRecipient(context.Background(), "reporting@example.com")
	if err != nil {
		t.Fatalf("add recipient: %v", err)
	}
	if id != 1 {
		t.Fatalf("expected id 1, got %d", id)
	}
}

func TestSendDailyRecap(t *testing.T) {
	fs := newFakeStore()
	fs.recipients = []domain.Recipient{{ID: 1, Email: "boss@example.com"}}
	fs.byStatus = map[domain.OrderStatus]int{
		domain.StatusValid:   12,
		domain.StatusPending: 3,
	}
	fs.topSellers = []store.SellerCount{{Name: "Marie Dupont", Count: 7}}
	fs.contactsSum = 80
	mailer := &fakeMailer{}
	svc := newTestService(fs, mailer)

	day := time.Date(2025, 7, 14, 18, 0, 0, 0, time.UTC)
	if err := svc.SendDailyRecap(context.Background(), day); err != nil {
		t.Fatalf("send recap: %v", err)
	}
	if mailer.sends != 1 {
		t.Fatalf("expected 1 mail, got %d", mailer.sends)
	}
	if mailer.subject != "Récap ventes du 14/07/2025" {
		t.Fatalf("unexpected subject %q", mailer.subject)
	}
	if len(mailer.to) != 1 || mailer.to[0] != "boss@example.com" {
		t.Fatalf("unexpected recipients %v", mailer.to)
	}
	for _, want := range []string{"Validé", "12", "Marie Dupont", "80"} {
		if !strings.Contains(mailer.body, want) {
			t.Fatalf("expected body to contain %q", want)
		}
	}
}

func TestSendDailyRecapNoRecipients(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newTestService(newFakeStore(), mailer)

	if err := svc.SendDailyRecap(context.Background(), time.Now()); err != nil {
		t.Fatalf("send recap: %v", err)
	}
	if mailer.sends != 0 {
		t.Fatalf("expected no mail without recipients")
	}
}
