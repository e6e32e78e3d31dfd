package service

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"salestrack/internal/domain"
	"salestrack/internal/store"
)

// StatusCount pairs a display label with its count for the recap table.
type StatusCount struct {
	Status domain.OrderStatus `json:"status"`
	Label  string             `json:"label"`
	Count  int                `json:"count"`
}

// Recap aggregates one date range for the reporting mail.
type Recap struct {
	From           time.Time           `json:"from"`
	To             time.Time           `json:"to"`
	TotalSales     int                 `json:"totalSales"`
	ValidSales     int                 `json:"validSales"`
	ByStatus       []StatusCount       `json:"byStatus"`
	TopSellers     []store.SellerCount `json:"topSellers"`
	ContactsArgued int                 `json:"contactsArgued"`
	Objectives     []Progress          `json:"objectives"`
}

// recapStatusOrder fixes the status rows of the mail; maps iterate randomly.
var recapStatusOrder = []domain.OrderStatus{
	domain.StatusValid,
	domain.StatusPending,
	domain.StatusSoftValid,
	domain.StatusIBANProblem,
	domain.StatusROAC,
}

// BuildRecap computes the recap figures for [from, to]. Unlike progress
// counting, a failed aggregate fails the recap: a mail with silently wrong
// numbers is worse than no mail.
func (s *Service) BuildRecap(ctx context.Context, from, to time.Time) (Recap, error) {
	byStatus, err := s.store.CountSalesByStatus(ctx, from, to)
	if err != nil {
		return Recap{}, err
	}
	top, err := s.store.TopSellers(ctx, from, to, 5)
	if err != nil {
		return Recap{}, err
	}
	contacts, err := s.store.SumContactsArgued(ctx, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return Recap{}, err
	}
	teamProgress, err := s.ActiveProgress(ctx, domain.ScopeTeam, to, nil)
	if err != nil {
		return Recap{}, err
	}

	recap := Recap{
		From:           from,
		To:             to,
		TopSellers:     top,
		ContactsArgued: contacts,
		Objectives:     teamProgress,
	}
	for _, status := range recapStatusOrder {
		count := byStatus[status]
		recap.TotalSales += count
		recap.ByStatus = append(recap.ByStatus, StatusCount{
			Status: status,
			Label:  domain.StatusLabel(status),
			Count:  count,
		})
	}
	recap.ValidSales = byStatus[domain.StatusValid]
	return recap, nil
}

// SendDailyRecap mails the recap for the given day to every registered
// recipient. With no recipients the run is a logged no-op.
func (s *Service) SendDailyRecap(ctx context.Context, day time.Time) error {
	recipients, err := s.store.ListRecipients(ctx)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		s.logger.Info("recap skipped, no recipients")
		return nil
	}

	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.zone)
	to := from.Add(24*time.Hour - time.Nanosecond)
	recap, err := s.BuildRecap(ctx, from, to)
	if err != nil {
		return err
	}
	body, err := RenderRecapHTML(recap)
	if err != nil {
		return err
	}

	addresses := make([]string, 0, len(recipients))
	for _, r := range recipients {
		addresses = append(addresses, r.Email)
	}
	subject := fmt.Sprintf("Récap ventes du %s", from.Format("02/01/2006"))
	if err := s.mailer.Send(ctx, addresses, subject, body); err != nil {
		return err
	}
	s.logger.Info("recap sent",
		slog.String("day", from.Format(dateLayout)),
		slog.Int("recipients", len(addresses)))
	return nil
}

var recapTemplate = template.Must(template.New("recap").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Récap ventes du {{.From.Format "02/01/2006"}}</h2>
  <p><strong>{{.ValidSales}}</strong> vente(s) validée(s) sur {{.TotalSales}} commande(s), {{.ContactsArgued}} contact(s) argumenté(s).</p>
  <h3>Commandes par statut</h3>
  <table border="1" cellpadding="6" cellspacing="0">
    <tr><th>Statut</th><th>Nombre</th></tr>
    {{- range .ByStatus}}
    <tr><td>{{.Label}}</td><td>{{.Count}}</td></tr>
    {{- end}}
  </table>
  {{- if .TopSellers}}
  <h3>Meilleurs vendeurs</h3>
  <table border="1" cellpadding="6" cellspacing="0">
    <tr><th>Vendeur</th><th>Ventes validées</th></tr>
    {{- range .TopSellers}}
    <tr><td>{{.Name}}</td><td>{{.Count}}</td></tr>
    {{- end}}
  </table>
  {{- end}}
  {{- if .Objectives}}
  <h3>Objectifs équipe</h3>
  <table border="1" cellpadding="6" cellspacing="0">
    <tr><th>Objectif</th><th>Période</th><th>Avancement</th></tr>
    {{- range .Objectives}}
    <tr><td>{{.Objective.Label}}</td><td>{{.PeriodLabel}}</td><td>{{.Count}} / {{.Objective.Target}} ({{printf "%.1f" .Percentage}}%)</td></tr>
    {{- end}}
  </table>
  {{- end}}
</body>
</html>`))

// RenderRecapHTML renders the recap mail body.
func RenderRecapHTML(recap Recap) (string, error) {
	var b strings.Builder
	if err := recapTemplate.Execute(&b, recap); err != nil {
		return "", err
	}
	return b.String(), nil
}
