package store

import (
	"context"
	"fmt"
	"time"

	"salestrack/internal/domain"
)

// SeedDemo creates a demo month of data: a handful of sales across the
// offer catalog, daily contacts-argued counts, and a team plus a personal
// objective for the current month.
func (s *Store) SeedDemo(ctx context.Context, now time.Time) error {
	year := now.Year()
	month := int(now.Month())

	sellers := []string{"Marie Dupont", "Guy la roche", "Awa Diallo"}
	statuses := []domain.OrderStatus{
		domain.StatusValid, domain.StatusValid, domain.StatusValid,
		domain.StatusPending, domain.StatusIBANProblem,
	}

	for i := 0; i < 15; i++ {
		offer := domain.Offers[i%len(domain.Offers)]
		day := i%20 + 1
		_, err := s.CreateSale(ctx, SaleInput{
			Date:        time.Date(year, now.Month(), day, 10+i%8, 15, 0, 0, now.Location()),
			Offer:       offer.ID,
			Name:        sellers[i%len(sellers)],
			OrderNumber: fmt.Sprintf("CMD-%04d", 1000+i),
			OrderStatus: statuses[i%len(statuses)],
			UserID:      fmt.Sprintf("u%d", i%len(sellers)+1),
		})
		if err != nil {
			return err
		}
	}

	for day := 1; day <= 10; day++ {
		date := time.Date(year, now.Month(), day, 0, 0, 0, 0, now.Location()).Format(dateLayout)
		if err := s.UpsertContactsArgued(ctx, date, 20+day, "seed"); err != nil {
			return err
		}
	}

	if _, err := s.CreateObjective(ctx, ObjectiveInput{
		Type:      domain.ObjectiveSales,
		Label:     "Ventes",
		Target:    100,
		Period:    domain.PeriodMonth,
		Year:      year,
		Month:     month,
		Scope:     domain.ScopeTeam,
		IsActive:  true,
		CreatedBy: "seed",
	}); err != nil {
		return err
	}
	if _, err := s.CreateObjective(ctx, ObjectiveInput{
		Type:           domain.ObjectiveSales,
		Label:          "Ventes perso",
		Target:         20,
		Period:         domain.PeriodMonth,
		Year:           year,
		Month:          month,
		Scope:          domain.ScopePersonal,
		AssignedTo:     "u1",
		AssignedToName: "Marie Dupont",
		IsActive:       true,
		CreatedBy:      "seed",
	}); err != nil {
		return err
	}

	_, err := s.AddRecipient(ctx, "reporting@example.com")
	return err
}
