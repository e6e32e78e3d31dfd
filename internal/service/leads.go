package service

import (
	"context"
	"strings"
	"time"

	"salestrack/internal/domain"
	"salestrack/internal/normalize"
	"salestrack/internal/store"
)

// ProviderBreakdown is one provider's row in the daily Leads table.
type ProviderBreakdown struct {
	Provider domain.LeadsProvider       `json:"provider"`
	Label    string                     `json:"label"`
	Counts   domain.LeadsCategoryCounts `json:"counts"`
	Total    int                        `json:"total"`
}

// LeadsDay is the per-provider split of one day's Leads sales, in the fixed
// dashboard order, with an overall total line.
type LeadsDay struct {
	Date      string                     `json:"date"`
	Providers []ProviderBreakdown        `json:"providers"`
	Total     domain.LeadsCategoryCounts `json:"total"`
	Count     int                        `json:"count"`
}

// RecordLeadsSale stores one Leads-mission sale. The provider is folded to
// its canonical spelling; unknown providers are rejected rather than stored
// raw, so breakdowns stay complete.
func (s *Service) RecordLeadsSale(ctx context.Context, date time.Time, provider, offerType, userID string) (int64, error) {
	var errs []string
	if date.IsZero() {
		errs = append(errs, "date is required")
	}
	canonical, ok := normalize.Provider(provider)
	if !ok {
		errs = append(errs, "provider must be hipto, dolead or mars marketing")
	}
	if len(errs) > 0 {
		return 0, &ValidationError{Fields: errs}
	}

	return s.store.CreateLeadsSale(ctx, store.LeadsSaleInput{
		Date:      date,
		Provider:  canonical,
		OfferType: strings.TrimSpace(offerType),
		UserID:    userID,
	})
}

func (s *Service) ListLeadsSales(ctx context.Context, from, to time.Time) ([]domain.LeadsSale, error) {
	return s.store.ListLeadsSales(ctx, from, to)
}

// LeadsBreakdownForDay aggregates one day's Leads sales per provider.
// Providers with no sales still appear with zero counts so the dashboard
// table keeps its shape.
func (s *Service) LeadsBreakdownForDay(ctx context.Context, day time.Time) (LeadsDay, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.zone)
	to := from.Add(24*time.Hour - time.Nanosecond)

	sales, err := s.store.ListLeadsSales(ctx, from, to)
	if err != nil {
		return LeadsDay{}, err
	}

	byProvider := make(map[domain.LeadsProvider]domain.LeadsCategoryCounts)
	for _, sale := range sales {
		counts := byProvider[sale.Provider]
		counts.Add(normalize.LeadsCategories(sale.OfferType))
		byProvider[sale.Provider] = counts
	}

	result := LeadsDay{Date: from.Format(dateLayout)}
	for _, provider := range domain.LeadsProviders {
		counts := byProvider[provider]
		result.Providers = append(result.Providers, ProviderBreakdown{
			Provider: provider,
			Label:    domain.ProviderLabel(provider),
			Counts:   counts,
			Total:    counts.Total(),
		})
		result.Total.Add(counts)
	}
	result.Count = result.Total.Total()
	return result, nil
}

// RecordLeadsOrder stores a lead purchase. Orders only exist for Hipto and
// Dolead.
func (s *Service) RecordLeadsOrder(ctx context.Context, date time.Time, provider string, quantity int) (int64, error) {
	var errs []string
	if date.IsZero() {
		errs = append(errs, "date is required")
	}
	canonical, ok := normalize.Provider(provider)
	if !ok || (canonical != domain.ProviderHipto && canonical != domain.ProviderDolead) {
		errs = append(errs, "provider must be hipto or dolead")
	}
	if quantity <= 0 {
		errs = append(errs, "quantity must be positive")
	}
	if len(errs) > 0 {
		return 0, &ValidationError{Fields: errs}
	}

	return s.store.CreateLeadsOrder(ctx, store.LeadsOrderInput{
		Date:     date,
		Provider: canonical,
		Quantity: quantity,
	})
}

func (s *Service) ListLeadsOrders(ctx context.Context, from, to time.Time) ([]domain.LeadsOrder, error) {
	return s.store.ListLeadsOrders(ctx, from, to)
}
